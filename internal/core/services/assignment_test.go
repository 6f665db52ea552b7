package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/storage/memory"
	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

func candidateIDs(cs []domain.TranslationCandidate) []int {
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = c.TrechoID
	}
	return ids
}

func TestAssignmentService_SiteScopedFirst(t *testing.T) {
	quietLogs(t)
	sh := scenarioSheets()
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{SiteID: domain.IntPtr(10)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].TrechoID)
	assert.Equal(t, 10, *got[0].SiteID)
	assert.Equal(t, "primeiro", got[0].Conteudo)
	assert.Equal(t, "https://gov.br/a", got[0].SiteURL)
	assert.Equal(t, "site10_highlighted_fragment_1.png", *got[0].SnapshotName)
	assert.Empty(t, got[0].SnapshotURL)
}

func TestAssignmentService_AllSites_ReturnAll(t *testing.T) {
	quietLogs(t)
	sh := scenarioSheets()
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{ReturnAll: true})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, candidateIDs(got))
	assert.Equal(t, "https://gov.br/b", got[1].SiteURL)
}

func TestAssignmentService_FirstOnly(t *testing.T) {
	quietLogs(t)
	sh := scenarioSheets()
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, candidateIDs(got))
}

func TestAssignmentService_NothingQualifies(t *testing.T) {
	quietLogs(t)
	sh := scenarioSheets()
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	for _, opts := range []domain.SelectionOptions{
		{SiteID: domain.IntPtr(99)},
		{SiteID: domain.IntPtr(99), ReturnAll: true},
	} {
		got, err := svc.SelectForTranslation(context.Background(), opts)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestAssignmentService_SkipsRowMissingConteudo(t *testing.T) {
	quietLogs(t)
	sh := scenarioSheets()
	sh.trechoWS = memory.NewWorksheet("trechos", trechoHeader,
		[]string{"7", "", "", "10", "", "", ""},
		[]string{"1", "h1", "primeiro", "10", "", "", ""},
		[]string{"8", "", "   ", "10", "", "", ""},
		[]string{"3", "h3", "terceiro", "20", "", "", ""},
	)
	sh = newSheets(sh.siteWS, sh.trechoWS, sh.interpreteWS)
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	first, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, candidateIDs(first))

	all, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{ReturnAll: true})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, candidateIDs(all))
}

func TestAssignmentService_SkipsFragmentWithoutID(t *testing.T) {
	logs := quietLogs(t)
	sh := newSheets(
		memory.NewWorksheet("sites", siteHeader),
		memory.NewWorksheet("trechos", trechoHeader,
			[]string{"", "", "sem id", "", "", "", ""},
			[]string{"4", "", "com id", "", "", "", ""},
		),
		memory.NewWorksheet("interpretes", interpreteHeader),
	)
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, candidateIDs(got))
	assert.Nil(t, got[0].SiteID)
	assert.Empty(t, got[0].SiteURL)
	assert.True(t, strings.Contains(logs.String(), "without trecho_id"))
}

func TestAssignmentService_MissingSite(t *testing.T) {
	logs := quietLogs(t)
	sh := scenarioSheets()
	sh = newSheets(memory.NewWorksheet("sites", siteHeader), sh.trechoWS, sh.interpreteWS)
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{ReturnAll: true})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, candidateIDs(got))
	assert.Empty(t, got[0].SiteURL)
	assert.Contains(t, logs.String(), "[WARN]")
}

func TestAssignmentService_ResolvesEachSiteOnce(t *testing.T) {
	quietLogs(t)
	sh := newSheets(
		memory.NewWorksheet("sites", siteHeader, []string{"10", "https://gov.br/a", ""}),
		memory.NewWorksheet("trechos", trechoHeader,
			[]string{"1", "", "um", "10", "", "", ""},
			[]string{"2", "", "dois", "10", "", "", ""},
			[]string{"3", "", "tres", "10", "", "", ""},
		),
		memory.NewWorksheet("interpretes", interpreteHeader),
	)
	svc := NewAssignmentService(sh.trechos, sh.sites, nil)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{ReturnAll: true})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, sh.siteWS.Calls(memory.OpReadAll))
}

func TestAssignmentService_StoreFailures(t *testing.T) {
	quietLogs(t)

	sh := scenarioSheets()
	sh.trechoWS.FailOn(memory.OpReadAll, 0, domain.ErrStoreUnavailable)
	_, err := NewAssignmentService(sh.trechos, sh.sites, nil).
		SelectForTranslation(context.Background(), domain.SelectionOptions{})
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))

	sh = scenarioSheets()
	sh.siteWS.FailOn(memory.OpReadAll, 0, domain.ErrStoreUnavailable)
	_, err = NewAssignmentService(sh.trechos, sh.sites, nil).
		SelectForTranslation(context.Background(), domain.SelectionOptions{})
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestAssignmentService_SnapshotURL(t *testing.T) {
	quietLogs(t)
	sh := scenarioSheets()
	snaps := memory.NewSnapshotStore()
	require.NoError(t, snaps.Put(context.Background(), "site10_highlighted_fragment_1.png", strings.NewReader("img"), 3, "image/png"))
	svc := NewAssignmentService(sh.trechos, sh.sites, snaps)

	got, err := svc.SelectForTranslation(context.Background(), domain.SelectionOptions{ReturnAll: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://snapshots.test/site10_highlighted_fragment_1.png", got[0].SnapshotURL)
	assert.Empty(t, got[1].SnapshotURL)
}

func TestAssignmentService_NotImplemented(t *testing.T) {
	_, err := NewAssignmentService(nil, nil, nil).SelectForTranslation(context.Background(), domain.SelectionOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
