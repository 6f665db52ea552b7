package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

const page = `<!doctype html>
<html><head><title>Gov</title><style>p { color: red }</style></head>
<body>
<nav><p>Menu</p></nav>
<main>
  <p>Primeiro   parágrafo
     com quebra.</p>
  <p>Texto com <b>negrito</b>e nota<sup>1</sup>.</p>
  <p>   </p>
  <!-- comentário -->
  <p>Último <a href="#">link</a></p>
</main>
<footer><p>Rodapé</p></footer>
<script>document.write("<p>script</p>")</script>
</body></html>`

func TestParse(t *testing.T) {
	fragments, err := Parse(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, []domain.PageFragment{
		{Ordinal: 2, Text: "Primeiro parágrafo com quebra."},
		{Ordinal: 3, Text: "Texto com negrito e nota ."},
		{Ordinal: 5, Text: "Último link"},
	}, fragments)
}

func TestParse_NoParagraphs(t *testing.T) {
	fragments, err := Parse(strings.NewReader("<html><body><div>nada</div></body></html>"))
	require.NoError(t, err)
	assert.NotNil(t, fragments)
	assert.Empty(t, fragments)
}

func TestHTMLExtractor_Extract(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	fragments, err := New(srv.Client()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, fragments, 3)
	assert.Equal(t, userAgent, gotUA)
}

func TestHTMLExtractor_Extract_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(nil).Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTMLExtractor_Extract_InvalidURL(t *testing.T) {
	_, err := New(nil).Extract(context.Background(), "://bad")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
