// Package pdftext pulls plain text out of PDF documents.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF yields no extractable text, as with scanned images.
var ErrNoText = errors.New("no text extracted")

// MaxStoredChars bounds the full text kept on a paper record.
const MaxStoredChars = 10000

var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Extract returns the text of the first maxPages pages of the PDF in data.
// maxPages <= 0 reads every page.
func Extract(data []byte, maxPages int) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	pages := reader.NumPage()
	if maxPages > 0 && maxPages < pages {
		pages = maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	out := Clean(sb.String())
	if out == "" {
		return "", ErrNoText
	}
	return out, nil
}

// Clean drops control characters and collapses runs of blank space.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// FindDOI returns the first DOI in text, or "".
func FindDOI(text string) string {
	doi := doiPattern.FindString(text)
	return strings.TrimRight(doi, ".,;)")
}
