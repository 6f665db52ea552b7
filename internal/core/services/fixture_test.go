package services

import (
	"bytes"
	"os"
	"testing"

	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/storage/memory"
	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/storage/sheetstore"
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

var (
	siteHeader       = []string{"site_id", "site_url", "trechos_ids"}
	trechoHeader     = []string{"trecho_id", "trecho_hash", "conteudo", "site_id", "interprete_id", "snapshot_name", "video_url"}
	interpreteHeader = []string{"interprete_id", "trechos_ids"}
)

// sheets holds the three worksheets and repositories over them.
type sheets struct {
	siteWS       *memory.Worksheet
	trechoWS     *memory.Worksheet
	interpreteWS *memory.Worksheet

	sites       *sheetstore.Repository[domain.Site]
	trechos     *sheetstore.Repository[domain.Trecho]
	interpretes *sheetstore.Repository[domain.Interprete]
}

func newSheets(site, trecho, interprete *memory.Worksheet) *sheets {
	return &sheets{
		siteWS:       site,
		trechoWS:     trecho,
		interpreteWS: interprete,
		sites:        sheetstore.NewSiteStore(site),
		trechos:      sheetstore.NewTrechoStore(trecho),
		interpretes:  sheetstore.NewInterpreteStore(interprete),
	}
}

// scenarioSheets holds fragments 1 (free, site 10), 2 (taken, site 10) and
// 3 (free, site 20).
func scenarioSheets() *sheets {
	return newSheets(
		memory.NewWorksheet("sites", siteHeader,
			[]string{"10", "https://gov.br/a", "[1, 2]"},
			[]string{"20", "https://gov.br/b", "[3]"},
		),
		memory.NewWorksheet("trechos", trechoHeader,
			[]string{"1", "h1", "primeiro", "10", "", "site10_highlighted_fragment_1.png", ""},
			[]string{"2", "h2", "segundo", "10", "6", "", "http://x/2.mp4"},
			[]string{"3", "h3", "terceiro", "20", "", "", ""},
		),
		memory.NewWorksheet("interpretes", interpreteHeader,
			[]string{"5", ""},
			[]string{"6", "[2]"},
		),
	)
}

// quietLogs captures log output for the test.
func quietLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}
