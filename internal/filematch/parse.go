package filematch

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var yearPattern = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)

// UnknownAuthor is used when no author can be derived.
const UnknownAuthor = "Unknown Author"

// ParseFilename derives heuristic metadata from a PDF filename named after one
// of the Conventions. A leading or second segment that is a year becomes the
// year; in Author-Year-Title and Year-Author-Title names the capitalized
// segment next to the year becomes the author. The rest forms the title.
// Year is zero when the name carries none.
func ParseFilename(filename string) Meta {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	segments := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})

	meta := Meta{}
	if m := yearPattern.FindStringSubmatch(base); m != nil {
		meta.Year, _ = strconv.Atoi(m[1])
	}

	yearAt := -1
	for i, s := range segments {
		if meta.Year != 0 && s == strconv.Itoa(meta.Year) {
			yearAt = i
			break
		}
	}

	authorAt := -1
	switch {
	case yearAt == 1 && isNameLike(segments[0]):
		authorAt = 0
	case yearAt == 0 && len(segments) > 2 && isNameLike(segments[1]):
		authorAt = 1
	}

	var title []string
	for i, s := range segments {
		if i == yearAt || i == authorAt {
			continue
		}
		title = append(title, s)
	}
	if authorAt >= 0 {
		meta.Authors = []string{segments[authorAt]}
	}
	meta.Title = strings.Join(title, " ")
	if meta.Title == "" {
		meta.Title = base
	}
	return meta
}

func isNameLike(s string) bool {
	r := []rune(s)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	for _, c := range r {
		if !unicode.IsLetter(c) && c != '\'' {
			return false
		}
	}
	return true
}
