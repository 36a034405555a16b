// Package analysis turns paper text into structured metadata and answers
// portfolio questions using a language model.
package analysis

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analyzer.go -package=mocks research-portfolio/internal/analysis Analyzer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks research-portfolio/internal/analysis Completer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"research-portfolio/internal/llm"
	"research-portfolio/internal/modelout"
)

// ErrUpstream wraps failures of the model call itself.
var ErrUpstream = errors.New("model request failed")

// MaxInputChars bounds the paper text sent to the model.
const MaxInputChars = 8000

// Analyzer extracts metadata and answers questions. Failures are returned as
// errors; implementations never substitute placeholder data.
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, text, filename string) (DocumentAnalysis, error)
	AnalyzeAbstract(ctx context.Context, in AbstractInput) (AbstractAnalysis, error)
	Reanalyze(ctx context.Context, text string) (Reanalysis, error)
	Answer(ctx context.Context, in AnswerInput) (string, error)
}

// Completer is the model call used by ClaudeAnalyzer.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// DocumentAnalysis is the metadata extracted from a full PDF text.
type DocumentAnalysis struct {
	Title        string
	Authors      []string
	Year         int
	Venue        string
	Summary      string
	Keywords     []string
	ResearchArea string
}

// AbstractInput is a CSV row offered for enrichment.
type AbstractInput struct {
	Title    string
	Authors  string
	Year     int
	Venue    string
	Abstract string
	Keywords string
}

// AbstractAnalysis is the enrichment produced from an abstract.
type AbstractAnalysis struct {
	Summary      string
	Keywords     []string
	ResearchArea string
}

// Reanalysis is a fresh summary and research area for an existing paper.
type Reanalysis struct {
	Summary      string
	ResearchArea string
}

// PaperContext is one paper quoted in a Q&A prompt.
type PaperContext struct {
	Title    string
	Year     int
	Authors  []string
	Summary  string
	Keywords []string
}

// AnswerInput carries the question and retrieved papers.
type AnswerInput struct {
	Question   string
	Papers     []PaperContext
	PaperCount int
	ThemeNames []string
}

// ClaudeAnalyzer implements Analyzer on top of the Messages API.
type ClaudeAnalyzer struct {
	completer Completer
	profile   *Profile
	now       func() time.Time
}

// NewClaudeAnalyzer creates an analyzer. A nil profile uses the embedded default.
func NewClaudeAnalyzer(c Completer, p *Profile) (*ClaudeAnalyzer, error) {
	if p == nil {
		var err error
		if p, err = LoadProfile(""); err != nil {
			return nil, err
		}
	}
	return &ClaudeAnalyzer{completer: c, profile: p, now: time.Now}, nil
}

// AnalyzeDocument extracts bibliographic metadata from PDF text.
func (a *ClaudeAnalyzer) AnalyzeDocument(ctx context.Context, text, filename string) (DocumentAnalysis, error) {
	var out struct {
		Title        string     `json:"title"`
		Authors      stringList `json:"authors"`
		Year         flexInt    `json:"year"`
		Venue        string     `json:"venue"`
		Summary      string     `json:"summary"`
		Keywords     stringList `json:"keywords"`
		ResearchArea string     `json:"researchArea"`
	}
	if err := a.ask(ctx, documentPrompt(a.profile, text, filename), 1000, &out); err != nil {
		return DocumentAnalysis{}, err
	}

	res := DocumentAnalysis{
		Title:        strings.TrimSpace(out.Title),
		Authors:      []string(out.Authors),
		Year:         int(out.Year),
		Venue:        strings.TrimSpace(out.Venue),
		Summary:      strings.TrimSpace(out.Summary),
		Keywords:     []string(out.Keywords),
		ResearchArea: strings.TrimSpace(out.ResearchArea),
	}
	if res.Year <= 0 {
		res.Year = a.now().Year()
	}
	if len(res.Authors) == 0 {
		res.Authors = []string{"Unknown Author"}
	}
	if res.Title == "" {
		return DocumentAnalysis{}, &modelout.MalformedOutputError{Attempts: 1, Err: errors.New("title missing")}
	}
	return res, nil
}

// AnalyzeAbstract produces a summary, keywords and a specific research area from an abstract.
func (a *ClaudeAnalyzer) AnalyzeAbstract(ctx context.Context, in AbstractInput) (AbstractAnalysis, error) {
	var out struct {
		Summary      string     `json:"summary"`
		Keywords     stringList `json:"keywords"`
		ResearchArea string     `json:"researchArea"`
	}
	if err := a.ask(ctx, abstractPrompt(a.profile, in), 800, &out); err != nil {
		return AbstractAnalysis{}, err
	}
	return AbstractAnalysis{
		Summary:      strings.TrimSpace(out.Summary),
		Keywords:     []string(out.Keywords),
		ResearchArea: strings.TrimSpace(out.ResearchArea),
	}, nil
}

// Reanalyze produces a new summary and research area from stored text.
func (a *ClaudeAnalyzer) Reanalyze(ctx context.Context, text string) (Reanalysis, error) {
	var out struct {
		Summary      string `json:"summary"`
		ResearchArea string `json:"researchArea"`
	}
	if err := a.ask(ctx, reanalysisPrompt(a.profile, text), 500, &out); err != nil {
		return Reanalysis{}, err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return Reanalysis{}, &modelout.MalformedOutputError{Attempts: 1, Err: errors.New("summary missing")}
	}
	return Reanalysis{Summary: strings.TrimSpace(out.Summary), ResearchArea: strings.TrimSpace(out.ResearchArea)}, nil
}

// Answer responds to a visitor question from the retrieved papers. The reply is markdown.
func (a *ClaudeAnalyzer) Answer(ctx context.Context, in AnswerInput) (string, error) {
	reply, err := a.completer.Complete(ctx, []llm.Message{{Role: "user", Content: answerPrompt(in)}}, llm.ChatParams{MaxTokens: 2000})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return strings.TrimSpace(reply), nil
}

func (a *ClaudeAnalyzer) ask(ctx context.Context, prompt string, maxTokens int, v any) error {
	reply, err := a.completer.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, llm.ChatParams{MaxTokens: maxTokens})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return modelout.Parse(reply, v)
}

// stringList accepts a JSON array of strings, a comma separated string, or null.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var arr []any
	if err := json.Unmarshal(b, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" && v != nil {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*l = nil
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

// flexInt accepts a number or a numeric string; anything else decodes as 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = flexInt(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*n = flexInt(v)
			return nil
		}
	}
	*n = 0
	return nil
}
