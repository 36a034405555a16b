package service_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"research-portfolio/internal/analysis"
	analysis_mocks "research-portfolio/internal/analysis/mocks"
	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
)

func TestReanalyzeService_NoModel(t *testing.T) {
	_, s := newStores(t)
	svc := service.NewReanalyzeService(s.catalog, s.batches, nil, newResolver())

	if _, err := svc.Batch(testContext(), service.ReanalyzeRequest{}); !errors.Is(err, service.ErrNotConfigured) {
		t.Errorf("Batch() error = %v, want ErrNotConfigured", err)
	}
	if _, err := svc.One(testContext(), 1); !errors.Is(err, service.ErrNotConfigured) {
		t.Errorf("One() error = %v, want ErrNotConfigured", err)
	}
}

func TestReanalyzeService_BatchCheckpoints(t *testing.T) {
	ctrl, s := newStores(t)
	analyzer := analysis_mocks.NewMockAnalyzer(ctrl)
	svc := service.NewReanalyzeService(s.catalog, s.batches, analyzer, newResolver())

	longText := strings.Repeat("opportunity ", 20)
	s.batches.EXPECT().Create(gomock.Any(), service.KindReanalyze).Return(&storage.BatchRun{ID: "run-1", Kind: service.KindReanalyze, Status: storage.RunRunning}, nil)
	s.papers.EXPECT().WithFullText(gomock.Any(), int64(0), 2).Return([]storage.Paper{
		{ID: 4, Title: "A", FullText: longText, Themes: []storage.ThemeRef{{ID: 1}}},
		{ID: 7, Title: "B", FullText: "short"},
	}, nil)
	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	analyzer.EXPECT().Reanalyze(gomock.Any(), longText).Return(analysis.Reanalysis{Summary: "new", ResearchArea: "Venture Capital"}, nil)
	analyzer.EXPECT().Reanalyze(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, text string) (analysis.Reanalysis, error) {
		if !strings.HasPrefix(text, "Title: B") {
			t.Errorf("Reanalyze() text = %q, want metadata block", text)
		}
		return analysis.Reanalysis{}, errors.New("model down")
	})
	s.papers.EXPECT().Update(gomock.Any(), int64(4), gomock.Any()).Return(nil)
	s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(4), []int64{2, 1}).Return(nil)

	var cursors []string
	s.batches.EXPECT().Checkpoint(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *storage.BatchRun) error {
		cursors = append(cursors, run.Cursor)
		return nil
	}).Times(2)
	s.batches.EXPECT().Finish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *storage.BatchRun) error {
		if run.Status != storage.RunCompleted || run.Succeeded != 1 || run.Failed != 1 || run.LastError != "model down" {
			t.Errorf("Finish() run = %+v", run)
		}
		return nil
	})
	s.expectSnapshot()

	res, err := svc.Batch(testContext(), service.ReanalyzeRequest{Limit: 2})
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}
	if res.RunID != "run-1" || !res.HasMore {
		t.Errorf("Batch() run = %q hasMore %v, want run-1 true", res.RunID, res.HasMore)
	}
	if want := (service.Summary{Total: 2, Succeeded: 1, Failed: 1}); res.Summary != want {
		t.Errorf("Batch() summary = %+v, want %+v", res.Summary, want)
	}
	if !reflect.DeepEqual(cursors, []string{"4", "7"}) {
		t.Errorf("checkpoint cursors = %v, want [4 7]", cursors)
	}
}

func TestReanalyzeService_Resume(t *testing.T) {
	tests := []struct {
		name    string
		run     *storage.BatchRun
		getErr  error
		wantErr error
	}{
		{name: "continues after cursor", run: &storage.BatchRun{ID: "run-1", Kind: service.KindReanalyze, Cursor: "7"}},
		{name: "unknown run", getErr: storage.ErrNotFound, wantErr: service.ErrNotFound},
		{name: "other kind", run: &storage.BatchRun{ID: "run-1", Kind: service.KindImport}, wantErr: service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, s := newStores(t)
			analyzer := analysis_mocks.NewMockAnalyzer(ctrl)
			svc := service.NewReanalyzeService(s.catalog, s.batches, analyzer, newResolver())

			s.batches.EXPECT().Get(gomock.Any(), "run-1").Return(tt.run, tt.getErr)
			if tt.wantErr == nil {
				s.papers.EXPECT().WithFullText(gomock.Any(), int64(7), service.DefaultReanalyzeLimit).Return(nil, nil)
				s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
				s.batches.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
				s.expectSnapshot()
			}

			res, err := svc.Batch(testContext(), service.ReanalyzeRequest{RunID: "run-1"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Batch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Batch() error = %v", err)
			}
			if res.HasMore || res.Summary.Total != 0 {
				t.Errorf("Batch() = %+v, want empty final page", res)
			}
		})
	}
}

func TestReanalyzeService_One(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl, s := newStores(t)
		svc := service.NewReanalyzeService(s.catalog, nil, analysis_mocks.NewMockAnalyzer(ctrl), newResolver())
		s.papers.EXPECT().Get(gomock.Any(), int64(3)).Return(nil, storage.ErrNotFound)

		if _, err := svc.One(testContext(), 3); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("One() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("model failure", func(t *testing.T) {
		ctrl, s := newStores(t)
		analyzer := analysis_mocks.NewMockAnalyzer(ctrl)
		svc := service.NewReanalyzeService(s.catalog, nil, analyzer, newResolver())
		s.papers.EXPECT().Get(gomock.Any(), int64(3)).Return(&storage.Paper{ID: 3}, nil)
		analyzer.EXPECT().Reanalyze(gomock.Any(), gomock.Any()).Return(analysis.Reanalysis{}, analysis.ErrUpstream)

		if _, err := svc.One(testContext(), 3); !errors.Is(err, service.ErrExternalService) {
			t.Errorf("One() error = %v, want ErrExternalService", err)
		}
	})

	t.Run("matches theme by name", func(t *testing.T) {
		ctrl, s := newStores(t)
		analyzer := analysis_mocks.NewMockAnalyzer(ctrl)
		svc := service.NewReanalyzeService(s.catalog, nil, analyzer, newResolver())
		paper := &storage.Paper{ID: 3, Title: "T"}
		s.papers.EXPECT().Get(gomock.Any(), int64(3)).Return(paper, nil).Times(2)
		analyzer.EXPECT().Reanalyze(gomock.Any(), gomock.Any()).Return(analysis.Reanalysis{Summary: "fresh", ResearchArea: "venture capital"}, nil)
		s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
		s.papers.EXPECT().Update(gomock.Any(), int64(3), gomock.Any()).DoAndReturn(func(_ context.Context, _ int64, u storage.PaperUpdate) error {
			if u.Summary == nil || *u.Summary != "fresh" {
				t.Errorf("Update() summary = %v, want fresh", u.Summary)
			}
			return nil
		})
		s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(3), []int64{2}).Return(nil)

		got, err := svc.One(testContext(), 3)
		if err != nil {
			t.Fatalf("One() error = %v", err)
		}
		if got.ID != 3 {
			t.Errorf("One() = %+v", got)
		}
	})
}
