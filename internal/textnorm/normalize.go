// Package textnorm turns titles, keywords, filenames and questions into
// comparable lowercase tokens.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxQuestionKeywords caps the number of keywords pulled from a question.
const MaxQuestionKeywords = 10

// QuestionStopWords are dropped from natural-language questions before paper search.
var QuestionStopWords = set(
	"what", "how", "why", "when", "where", "who", "which", "that", "this",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"do", "does", "did", "will", "would", "could", "should", "may", "might",
	"can", "the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "with", "by", "about", "your", "my", "me", "you", "i",
)

// TitleStopWords are ignored when comparing title words against filenames.
var TitleStopWords = set(
	"the", "and", "of", "in", "on", "at", "to", "for", "with", "by", "from", "that", "this",
)

// SuggestStopWords are ignored when building suggested filenames from titles.
var SuggestStopWords = set(
	"the", "and", "of", "in", "on", "at", "to", "for", "with", "by",
)

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Fold lowercases s, folds compatibility forms and strips diacritics,
// so "Schumpéter" and "schumpeter" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Contains reports whether needle occurs in haystack after folding both.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return false
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Tokenize splits s into lowercase runs of letters and digits.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SignificantWords returns the tokens of s longer than minLen runes that are not stop words.
// Order of first appearance is kept; duplicates are preserved.
func SignificantWords(s string, minLen int, stop map[string]struct{}) []string {
	tokens := Tokenize(s)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= minLen {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// QuestionKeywords extracts up to MaxQuestionKeywords search keywords from a question.
// Words of two characters or fewer and question stop words are dropped.
func QuestionKeywords(question string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, Fold(question))

	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, skip := QuestionStopWords[word]; skip {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == MaxQuestionKeywords {
			break
		}
	}
	return keywords
}

// SplitList splits a delimited string, trims each element and drops empties.
func SplitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
