package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"research-portfolio/internal/classify"
	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
	storage_mocks "research-portfolio/internal/storage/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testContext() context.Context {
	return context.Background()
}

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

type stores struct {
	papers  *storage_mocks.MockPaperStore
	themes  *storage_mocks.MockThemeStore
	batches *storage_mocks.MockBatchStore
	catalog *service.Catalog
}

func newStores(t *testing.T) (*gomock.Controller, stores) {
	t.Helper()
	ctrl := gomock.NewController(t)
	s := stores{
		papers:  storage_mocks.NewMockPaperStore(ctrl),
		themes:  storage_mocks.NewMockThemeStore(ctrl),
		batches: storage_mocks.NewMockBatchStore(ctrl),
	}
	s.catalog = service.NewCatalog(s.papers, s.themes, nil, time.Minute)
	return ctrl, s
}

// expectSnapshot allows any number of portfolio reloads.
func (s stores) expectSnapshot() {
	s.papers.EXPECT().List(gomock.Any()).Return([]storage.Paper{}, nil).AnyTimes()
	s.themes.EXPECT().ListWithCounts(gomock.Any()).Return([]storage.Theme{}, nil).AnyTimes()
}

var baseThemes = []storage.Theme{
	{ID: 1, Name: "Entrepreneurial Opportunities", Description: "Research focusing on opportunities"},
	{ID: 2, Name: "Venture Capital", Description: "Research focusing on venture capital"},
}

func newResolver() *classify.Resolver {
	return classify.NewResolver(nil)
}
