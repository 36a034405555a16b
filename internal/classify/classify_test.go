package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleThemes() []Theme {
	return []Theme{
		{ID: 1, Name: "Entrepreneurship and Innovation", Description: "General entrepreneurship and innovation research"},
		{ID: 2, Name: "Venture Capital & Funding", Description: "Research on venture capital, funding and investment decisions"},
		{ID: 3, Name: "Entrepreneurial Cognition", Description: "Research on entrepreneurial thinking and psychology"},
	}
}

func TestDefaultTaxonomy(t *testing.T) {
	tax := Default()
	assert.Len(t, tax.Palette, 6)
	assert.Len(t, tax.Buckets, 12)
	assert.Len(t, tax.BroadThemes, 10)
	assert.Len(t, tax.Consolidated, 8)
	assert.Equal(t, "Entrepreneurship and Innovation", tax.CatchAll.Name)
	assert.Equal(t, "Venture Capital & Funding", tax.KeywordThemes[0].Theme)
}

func TestParseTaxonomy_Invalid(t *testing.T) {
	_, err := ParseTaxonomy([]byte("palette: []\n"))
	assert.Error(t, err)

	_, err = ParseTaxonomy([]byte("palette: [a]\n"))
	assert.Error(t, err)
}

func TestMatchMode(t *testing.T) {
	tests := []struct {
		mode  MatchMode
		score float64
		want  bool
	}{
		{Lenient, 2, false},
		{Lenient, 2.5, true},
		{Strict, 4, false},
		{Strict, 4.5, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.Accepts(tt.score), "%s.Accepts(%v)", tt.mode, tt.score)
	}
}

func TestScore(t *testing.T) {
	vc := Theme{ID: 2, Name: "Venture Capital", Description: "Research on venture capital and funding"}

	tests := []struct {
		name     string
		area     string
		keywords []string
		want     float64
	}{
		{"exact name", "Venture Capital", nil, 5 + 3 + 2},
		{"name contains area", "capital", nil, 3 + 2},
		{"keywords only", "", []string{"funding", "venture"}, 0.5 + 1 + 0.5},
		{"no match", "Biology", []string{"cells"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(vc, tt.area, tt.keywords))
		})
	}
}

func TestBest_Deterministic(t *testing.T) {
	themes := []Theme{
		{ID: 4, Name: "Design A", Description: ""},
		{ID: 5, Name: "Design B", Description: ""},
	}
	for i := 0; i < 20; i++ {
		best, score, ok := Best(themes, "design", nil)
		require.True(t, ok)
		assert.Equal(t, int64(4), best.ID)
		assert.Equal(t, 3.0, score)
	}

	_, _, ok := Best(nil, "design", nil)
	assert.False(t, ok)
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name       string
		req        ResolveRequest
		themes     []Theme
		wantID     int64
		wantCreate string
		wantReason Reason
	}{
		{
			name:       "strict accepts exact match",
			req:        ResolveRequest{Area: "Venture Capital & Funding", Mode: Strict, Fallback: FallbackBroadThemes},
			themes:     sampleThemes(),
			wantID:     2,
			wantReason: ReasonScored,
		},
		{
			name: "generic area refined from author keywords",
			req: ResolveRequest{
				Area:              "Entrepreneurship and Innovation",
				Keywords:          []string{"startups", "cognitive bias"},
				AuthorKeywords:    []string{"Cognitive bias"},
				Mode:              Strict,
				RefineGenericArea: true,
				Fallback:          FallbackBroadThemes,
			},
			themes:     sampleThemes(),
			wantID:     3,
			wantReason: ReasonScored,
		},
		{
			name:       "broad theme created when missing",
			req:        ResolveRequest{Area: "Family firms", Keywords: []string{"family business"}, Mode: Strict, Fallback: FallbackBroadThemes},
			themes:     sampleThemes(),
			wantCreate: "Family Business",
			wantReason: ReasonBroad,
		},
		{
			name:       "catch-all existing theme",
			req:        ResolveRequest{Area: "Astronomy", Keywords: []string{"stars"}, Mode: Strict, Fallback: FallbackBroadThemes},
			themes:     sampleThemes(),
			wantID:     1,
			wantReason: ReasonCatchAll,
		},
		{
			name:       "lenient create from area",
			req:        ResolveRequest{Area: "Machine Learning", Keywords: []string{"neural"}, Mode: Lenient, Fallback: FallbackCreateArea},
			themes:     sampleThemes(),
			wantCreate: "Machine Learning",
			wantReason: ReasonArea,
		},
		{
			name:       "first theme fallback",
			req:        ResolveRequest{Area: "Astronomy", Mode: Lenient, Fallback: FallbackFirstTheme},
			themes:     []Theme{{ID: 9, Name: "Z"}, {ID: 7, Name: "Y"}},
			wantID:     7,
			wantReason: ReasonFirst,
		},
		{
			name:       "no themes creates catch-all",
			req:        ResolveRequest{Area: "Astronomy", Mode: Lenient, Fallback: FallbackFirstTheme},
			wantCreate: "Entrepreneurship and Innovation",
			wantReason: ReasonCatchAll,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.req, tt.themes)
			assert.Equal(t, tt.wantReason, got.Reason)
			if tt.wantCreate != "" {
				require.NotNil(t, got.Create)
				assert.Equal(t, tt.wantCreate, got.Create.Name)
				assert.Zero(t, got.ThemeID)
				return
			}
			assert.Nil(t, got.Create)
			assert.Equal(t, tt.wantID, got.ThemeID)
		})
	}
}

func TestResolver_NewThemeColorAndDescription(t *testing.T) {
	r := NewResolver(nil)
	got := r.Resolve(ResolveRequest{
		Area:     "Machine Learning",
		Keywords: []string{"neural", "deep", "models", "data"},
		Fallback: FallbackCreateArea,
	}, sampleThemes())

	require.NotNil(t, got.Create)
	assert.Equal(t, "bg-orange-100 text-orange-800", got.Create.Color)
	assert.Equal(t, "Research focusing on machine learning with emphasis on neural, deep, models", got.Create.Description)
}

func TestResolver_ResolveByName(t *testing.T) {
	r := NewResolver(nil)

	got, ok := r.ResolveByName("Entrepreneurial Cognition and Behaviour", sampleThemes())
	require.True(t, ok)
	assert.Equal(t, int64(3), got.ThemeID)

	got, ok = r.ResolveByName("Quantum Physics", sampleThemes())
	require.True(t, ok)
	assert.Equal(t, int64(1), got.ThemeID)
	assert.Equal(t, ReasonFirst, got.Reason)

	_, ok = r.ResolveByName("anything", nil)
	assert.False(t, ok)
}

func TestMatchBuckets(t *testing.T) {
	buckets := Default().Buckets

	assert.Empty(t, MatchBuckets(nil, buckets))

	got := MatchBuckets([]string{"Venture capital syndication", "Design thinking"}, buckets)
	names := make([]string, 0, len(got))
	for _, b := range got {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"venture capital", "entrepreneurial cognition", "design", "finance"}, names)
}

func TestResolver_AssignThemes(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name     string
		area     string
		keywords []string
		themes   []Theme
		want     []int64
	}{
		{
			name:   "zero keywords resolves to exactly one theme",
			themes: sampleThemes(),
			want:   []int64{1},
		},
		{
			name:     "bucket and area matches deduplicated in order",
			area:     "Venture Capital",
			keywords: []string{"venture capital funding", "cognitive biases"},
			themes:   sampleThemes(),
			want:     []int64{2, 3},
		},
		{
			name:     "no themes",
			keywords: []string{"funding"},
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.AssignThemes(tt.area, tt.keywords, tt.themes))
		})
	}
}

func TestResolver_ConsolidatedThemeFor(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name     string
		title    string
		keywords []string
		summary  string
		want     string
	}{
		{"venture capital", "How venture capital firms decide", nil, "", "Venture Capital"},
		{"opportunity wins over design", "Opportunity Recognition as Act and Artifact", nil, "", "Entrepreneurial Opportunities"},
		{"keywords considered", "A study", []string{"Pedagogy"}, "", "Entrepreneurship Education"},
		{"default", "Nascent founders", nil, "A longitudinal study", "Entrepreneurial Process"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ConsolidatedThemeFor(tt.title, tt.keywords, tt.summary))
		})
	}

	themes := r.ConsolidatedThemes()
	require.Len(t, themes, 8)
	assert.Equal(t, "Research focusing on venture capital", themes[1].Description)
}
