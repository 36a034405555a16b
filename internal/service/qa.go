package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_qa_service.go -package=mocks -mock_names=QAService=MockQAService research-portfolio/internal/service QAService

import (
	"context"
	"strings"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/rag"
	"research-portfolio/internal/storage"
)

// AskRequest is a visitor question. PaperCount and ThemeNames describe the
// portfolio as the site shows it; when both are empty they are read from storage.
type AskRequest struct {
	Question   string
	PaperCount int
	ThemeNames []string
}

// AskResult is the model's markdown answer and the papers it was given.
type AskResult struct {
	Answer string
	Papers []storage.Paper
}

// QAService answers questions about the portfolio.
type QAService interface {
	Ask(ctx context.Context, req AskRequest) (AskResult, error)
}

// qaService implements QAService.
type qaService struct {
	retriever rag.Retriever
	analyzer  analysis.Analyzer
	catalog   *Catalog
}

// NewQAService creates a new QAService. A nil analyzer fails every question.
func NewQAService(retriever rag.Retriever, analyzer analysis.Analyzer, catalog *Catalog) QAService {
	return &qaService{retriever: retriever, analyzer: analyzer, catalog: catalog}
}

func (s *qaService) Ask(ctx context.Context, req AskRequest) (AskResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question")
		return AskResult{}, &ValidationError{Field: "question", Message: "Question is required"}
	}
	if s.analyzer == nil {
		return AskResult{}, errNoModel
	}

	found, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		logger.ErrorContext(ctx, "failed to retrieve papers", "error", err)
		return AskResult{}, WrapError(err, "failed to retrieve papers")
	}
	papers := found.Papers()

	in := analysis.AnswerInput{
		Question:   question,
		PaperCount: req.PaperCount,
		ThemeNames: req.ThemeNames,
		Papers:     make([]analysis.PaperContext, len(papers)),
	}
	for i, p := range papers {
		in.Papers[i] = analysis.PaperContext{
			Title:    p.Title,
			Year:     p.Year,
			Authors:  p.Authors,
			Summary:  p.Summary,
			Keywords: p.Keywords,
		}
	}
	if in.PaperCount == 0 && len(in.ThemeNames) == 0 && s.catalog != nil {
		s.describePortfolio(ctx, &in)
	}

	answer, err := s.analyzer.Answer(ctx, in)
	if err != nil {
		logger.ErrorContext(ctx, "model answer failed", "error", err)
		return AskResult{}, externalError("failed to get answer from model", err)
	}

	logger.InfoContext(ctx, "question answered", "keywords", len(found.Keywords), "papers", len(papers), "answer_length", len(answer))
	return AskResult{Answer: answer, Papers: papers}, nil
}

// describePortfolio fills the portfolio counts from storage. Failures leave them empty.
func (s *qaService) describePortfolio(ctx context.Context, in *analysis.AnswerInput) {
	p, err := s.catalog.Snapshot(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to describe portfolio", "error", err)
		return
	}
	in.PaperCount = len(p.Papers)
	for _, t := range p.Themes {
		in.ThemeNames = append(in.ThemeNames, t.Name)
	}
}
