// Package extractor splits web pages into paragraph fragments.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure HTMLExtractor implements the interface.
var _ driven.FragmentExtractor = (*HTMLExtractor)(nil)

const (
	// userAgent is sent because some government portals reject Go's default.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// hiddenSelector matches containers whose paragraphs are not content.
	hiddenSelector = "script, style, footer, nav, form, aside"

	// maxPageBytes bounds the page size read.
	maxPageBytes = 10 << 20
)

// HTMLExtractor fetches a page and returns the text of its <p> elements.
type HTMLExtractor struct {
	client *http.Client
}

// New creates an extractor. A nil client gets a 10 second timeout.
func New(client *http.Client) *HTMLExtractor {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTMLExtractor{client: client}
}

// Extract fetches pageURL and returns its paragraphs in document order.
func (e *HTMLExtractor) Extract(ctx context.Context, pageURL string) ([]domain.PageFragment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", pageURL, resp.Status)
	}

	fragments, err := Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	logger.Debug("page %s: %d paragraphs with text", pageURL, len(fragments))
	return fragments, nil
}

// Parse reads an HTML document and returns its paragraphs.
//
// Ordinals count every <p> in the document, hidden ones included, so they
// line up with screenshots taken of the rendered page. Paragraphs inside
// navigation, footers, forms, asides or scripts are dropped, as are <sup>
// footnote markers and paragraphs without text.
func Parse(r io.Reader) ([]domain.PageFragment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	type paragraph struct {
		ordinal int
		sel     *goquery.Selection
	}
	var kept []paragraph
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		if s.ParentsFiltered(hiddenSelector).Length() > 0 {
			return
		}
		kept = append(kept, paragraph{ordinal: i + 1, sel: s})
	})

	doc.Find(hiddenSelector + ", sup").Remove()

	fragments := make([]domain.PageFragment, 0, len(kept))
	for _, p := range kept {
		text := textOf(p.sel)
		if text == "" {
			continue
		}
		fragments = append(fragments, domain.PageFragment{Ordinal: p.ordinal, Text: text})
	}
	return fragments, nil
}

// textOf joins the element's text nodes with single spaces.
func textOf(s *goquery.Selection) string {
	var parts []string
	collectText(s, &parts)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
		case "#comment":
		default:
			collectText(c, parts)
		}
	})
}
