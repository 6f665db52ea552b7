package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SpreadsheetID extracts the document id from a spreadsheet URL.
func SpreadsheetID(rawURL string) (string, error) {
	m := spreadsheetIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not a spreadsheet URL", domain.ErrConfiguration, rawURL)
	}
	return m[1], nil
}

// ColumnLetters converts a 1-based column number to A1 letters (1 → A, 27 → AA).
func ColumnLetters(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// CellRef returns the A1 reference of a 1-based cell.
func CellRef(row, col int) string {
	return ColumnLetters(col) + strconv.Itoa(row)
}

// quoteTab quotes a tab title for use in a range.
func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// tabRange returns a range inside a tab, or the whole tab when ref is "".
func tabRange(tab, ref string) string {
	if ref == "" {
		return quoteTab(tab)
	}
	return quoteTab(tab) + "!" + ref
}
