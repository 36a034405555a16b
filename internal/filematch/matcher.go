// Package filematch links PDF files in storage to paper records by scoring
// filenames against bibliographic metadata.
package filematch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"research-portfolio/internal/textnorm"
)

// Minimum scores a candidate must exceed to be accepted.
const (
	LinkMinScore    = 2
	SuggestMinScore = 3
)

// Meta is the paper metadata used for matching.
type Meta struct {
	Title   string
	Year    int
	Authors []string
}

// File is a candidate file.
type File struct {
	ID   string
	Name string
	Path string
}

// Match is a scored candidate.
type Match struct {
	File  File
	Score int
}

// FirstAuthorSurname returns the first author's name before any comma.
func (m Meta) FirstAuthorSurname() string {
	if len(m.Authors) == 0 {
		return ""
	}
	surname, _, _ := strings.Cut(m.Authors[0], ",")
	return strings.TrimSpace(surname)
}

func (m Meta) yearString() string {
	if m.Year <= 0 {
		return ""
	}
	return strconv.Itoa(m.Year)
}

// Score rates how likely filename belongs to the paper described by meta.
// The length penalty applies only when no title word matched, so adding a
// matching title word to filename never lowers the score.
func Score(filename string, meta Meta) int {
	name := textnorm.Fold(strings.TrimSuffix(strings.TrimSuffix(filename, ".pdf"), ".PDF"))
	author := textnorm.Fold(meta.FirstAuthorSurname())
	year := meta.yearString()

	hasAuthor := author != "" && strings.Contains(name, author)
	hasYear := year != "" && strings.Contains(name, year)

	score := 0
	if hasAuthor && hasYear {
		score += 15
	}
	if year != "" && strings.HasPrefix(name, year) {
		score += 10
	}
	if hasYear {
		score += 8
	}
	if hasAuthor {
		score += 5
	}

	matches := 0
	for _, word := range textnorm.SignificantWords(meta.Title, 3, textnorm.TitleStopWords) {
		if strings.Contains(name, word) {
			matches++
		}
	}
	score += matches * 2
	if matches >= 2 {
		score += matches * 2
	}

	if matches == 0 {
		titleLen := utf8.RuneCountInString(meta.Title)
		diff := utf8.RuneCountInString(name) - titleLen
		if diff < 0 {
			diff = -diff
		}
		if diff > 2*titleLen {
			score -= 3
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// Best returns the highest scoring file whose score exceeds minScore.
// Ties keep the earliest file.
func Best(files []File, meta Meta, minScore int) (Match, bool) {
	var best Match
	found := false
	for _, f := range files {
		s := Score(f.Name, meta)
		if s > minScore && (!found || s > best.Score) {
			best = Match{File: f, Score: s}
			found = true
		}
	}
	return best, found
}

// SuggestMatch finds the file most likely to belong to a paper when building
// rename suggestions. It uses a coarser score: +5 for the year, +3 for the
// first author and +1 per title word longer than three characters.
func SuggestMatch(files []File, meta Meta) (Match, bool) {
	year := meta.yearString()
	author := textnorm.Fold(meta.FirstAuthorSurname())
	words := strings.Fields(textnorm.Fold(meta.Title))

	var best Match
	for _, f := range files {
		name := textnorm.Fold(f.Name)
		score := 0
		if year != "" && strings.Contains(name, year) {
			score += 5
		}
		if author != "" && strings.Contains(name, author) {
			score += 3
		}
		for _, w := range words {
			if utf8.RuneCountInString(w) > 3 && strings.Contains(name, w) {
				score++
			}
		}
		if score > best.Score {
			best = Match{File: f, Score: score}
		}
	}
	if best.Score > SuggestMinScore {
		return best, true
	}
	return Match{}, false
}

// Convention is a filename naming scheme offered to the operator.
type Convention struct {
	Name        string `json:"name"`
	Example     string `json:"example"`
	Description string `json:"description"`
}

// Conventions lists the supported naming schemes in the order SuggestNames returns them.
var Conventions = []Convention{
	{Name: "Author-Year-Title", Example: "Dimov-2020-Opportunity-Recognition.pdf", Description: "Most common academic convention"},
	{Name: "Year-Author-Title", Example: "2020-Dimov-Opportunity-Recognition.pdf", Description: "Good for chronological sorting"},
	{Name: "Year-Title", Example: "2020-Opportunity-Recognition-Entrepreneurship.pdf", Description: "Simple, focuses on content and date"},
}

// SuggestNames returns one filename per convention for the paper.
func SuggestNames(meta Meta) []string {
	author := meta.FirstAuthorSurname()
	if author == "" {
		author = "Unknown"
	}
	title := titlePart(meta.Title)
	return []string{
		fmt.Sprintf("%s-%d-%s.pdf", author, meta.Year, title),
		fmt.Sprintf("%d-%s-%s.pdf", meta.Year, author, title),
		fmt.Sprintf("%d-%s.pdf", meta.Year, title),
	}
}

// titlePart takes the first three meaningful title words in Title-Case.
func titlePart(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, title)

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, stop := textnorm.SuggestStopWords[strings.ToLower(w)]; stop {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words = append(words, string(r))
		if len(words) == 3 {
			break
		}
	}
	return strings.Join(words, "-")
}

// EnsurePDF appends the .pdf extension when it is missing.
func EnsurePDF(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}

// IsPDF reports whether name has a PDF extension.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
