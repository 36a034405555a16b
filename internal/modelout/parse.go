// Package modelout recovers JSON objects from free-form language model replies.
package modelout

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"research-portfolio/internal/textnorm"
)

// ErrMalformedOutput is matched by every parse failure.
var ErrMalformedOutput = errors.New("malformed model output")

const maxRawInError = 500

// MalformedOutputError describes a reply that no repair step could decode.
type MalformedOutputError struct {
	Raw      string
	Attempts int
	Err      error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output after %d attempts: %v", e.Attempts, e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedOutput }

var (
	fenceJSON = regexp.MustCompile("```json\\n?")
	fence     = regexp.MustCompile("```\\n?")

	// Unescaped quotes inside a string value, e.g. `: "the "lean" startup",`.
	innerQuotesComma = regexp.MustCompile(`: "([^"]*)"([^",}]*)"([^"]*)",`)
	innerQuotes      = regexp.MustCompile(`: "([^"]*)"([^",}]*)"([^"]*)"`)

	spaces = regexp.MustCompile(`\s+`)
)

// Parse decodes the JSON object embedded in raw into v. It strips code
// fences, isolates the outermost braces and then tries a fixed sequence of
// repairs, returning the first successful decode.
func Parse(raw string, v any) error {
	candidate := Extract(raw)

	steps := []func(string) string{
		func(s string) string { return s },
		func(s string) string { return innerQuotesComma.ReplaceAllString(s, `: "${1}\"${2}\"${3}",`) },
		func(s string) string { return innerQuotes.ReplaceAllString(s, `: "${1}\"${2}\"${3}"`) },
		stripControl,
		func(s string) string {
			return innerQuotesComma.ReplaceAllString(stripControl(s), `: "${1}\"${2}\"${3}",`)
		},
	}

	var lastErr error
	for _, step := range steps {
		err := json.Unmarshal([]byte(step(candidate)), v)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return &MalformedOutputError{
		Raw:      textnorm.Truncate(raw, maxRawInError),
		Attempts: len(steps),
		Err:      lastErr,
	}
}

// Extract removes markdown fences and slices from the first '{' to the last '}'.
func Extract(raw string) string {
	s := fenceJSON.ReplaceAllString(raw, "")
	s = fence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

// stripControl drops control characters and collapses whitespace.
func stripControl(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return spaces.ReplaceAllString(s, " ")
}
