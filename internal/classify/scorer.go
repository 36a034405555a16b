package classify

import "research-portfolio/internal/textnorm"

// Theme is the classifier's view of a stored theme.
type Theme struct {
	ID          int64
	Name        string
	Description string
}

// MatchMode selects how strong a theme score must be before it is accepted.
type MatchMode int

const (
	// Lenient accepts any theme scoring above LenientThreshold.
	Lenient MatchMode = iota
	// Strict accepts only themes scoring above StrictThreshold.
	Strict
)

// Acceptance thresholds. A score must be strictly greater than the threshold.
const (
	LenientThreshold = 2.0
	StrictThreshold  = 4.0
)

// Score weights.
const (
	exactNameWeight        = 5.0
	nameContainsAreaWeight = 3.0
	descContainsAreaWeight = 2.0
	keywordInNameWeight    = 1.0
	keywordInDescWeight    = 0.5
)

// Threshold returns the acceptance threshold for the mode.
func (m MatchMode) Threshold() float64 {
	if m == Strict {
		return StrictThreshold
	}
	return LenientThreshold
}

// Accepts reports whether score clears the mode's threshold.
func (m MatchMode) Accepts(score float64) bool {
	return score > m.Threshold()
}

func (m MatchMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// Score rates how well theme fits a research area and keyword set.
func Score(theme Theme, area string, keywords []string) float64 {
	var score float64
	if area != "" {
		if textnorm.Fold(theme.Name) == textnorm.Fold(area) {
			score += exactNameWeight
		}
		if textnorm.Contains(theme.Name, area) {
			score += nameContainsAreaWeight
		}
		if textnorm.Contains(theme.Description, area) {
			score += descContainsAreaWeight
		}
	}
	for _, kw := range keywords {
		if textnorm.Contains(theme.Name, kw) {
			score += keywordInNameWeight
		}
		if textnorm.Contains(theme.Description, kw) {
			score += keywordInDescWeight
		}
	}
	return score
}

// Best returns the highest scoring theme. Ties keep the earliest theme in input order.
// ok is false when themes is empty or every score is zero.
func Best(themes []Theme, area string, keywords []string) (best Theme, score float64, ok bool) {
	for _, theme := range themes {
		s := Score(theme, area, keywords)
		if s > score {
			best, score, ok = theme, s, true
		}
	}
	return best, score, ok
}
