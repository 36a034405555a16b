package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
)

func TestPaperService_Add(t *testing.T) {
	tests := []struct {
		name      string
		req       service.AddPaperRequest
		wantErr   error
		checkSave func(t *testing.T, p *storage.Paper)
	}{
		{
			name:    "missing venue",
			req:     service.AddPaperRequest{Title: "T", Authors: "A"},
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "authors only separators",
			req:     service.AddPaperRequest{Title: "T", Authors: " ; ", Venue: "JBV"},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "defaults applied",
			req: service.AddPaperRequest{
				Title:    "Opportunity Recognition",
				Authors:  "Dimov, D. ; Shepherd, D.",
				Venue:    "JBV",
				Year:     "not a year",
				Keywords: "opportunity; ; cognition",
				Type:     "poster",
			},
			checkSave: func(t *testing.T, p *storage.Paper) {
				if p.Year != 2025 {
					t.Errorf("Year = %v, want 2025", p.Year)
				}
				if p.Summary != "No abstract provided" {
					t.Errorf("Summary = %q, want default", p.Summary)
				}
				if len(p.Authors) != 2 || p.Authors[1] != "Shepherd, D." {
					t.Errorf("Authors = %v", p.Authors)
				}
				if len(p.Keywords) != 2 {
					t.Errorf("Keywords = %v, want 2", p.Keywords)
				}
				if p.Type != storage.TypeOther {
					t.Errorf("Type = %v, want %v", p.Type, storage.TypeOther)
				}
				if p.MetadataSource != storage.SourceManual {
					t.Errorf("MetadataSource = %v, want manual", p.MetadataSource)
				}
			},
		},
		{
			name: "abstract becomes summary and text",
			req:  service.AddPaperRequest{Title: "T", Authors: "A", Venue: "V", Year: "2019x", Abstract: " We study. "},
			checkSave: func(t *testing.T, p *storage.Paper) {
				if p.Summary != "We study." || p.FullText != "We study." {
					t.Errorf("Summary, FullText = %q, %q", p.Summary, p.FullText)
				}
				if p.Year != 2019 {
					t.Errorf("Year = %v, want 2019", p.Year)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newStores(t)
			svc := service.NewPaperService(s.catalog, newResolver(), service.WithClock(fixedNow))

			if tt.checkSave != nil {
				s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
				s.papers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ any, p *storage.Paper) (int64, error) {
						tt.checkSave(t, p)
						return 7, nil
					})
				s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(7), gomock.Any()).Return(nil)
				s.papers.EXPECT().Get(gomock.Any(), int64(7)).Return(&storage.Paper{ID: 7}, nil)
			}

			p, err := svc.Add(testContext(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() unexpected error = %v", err)
			}
			if p.ID != 7 {
				t.Errorf("Add() id = %v, want 7", p.ID)
			}
		})
	}
}

func TestPaperService_AddAssignsBucketThemes(t *testing.T) {
	_, s := newStores(t)
	svc := service.NewPaperService(s.catalog, newResolver())

	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	s.papers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(3), nil)
	s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(3), []int64{2}).Return(nil)
	s.papers.EXPECT().Get(gomock.Any(), int64(3)).Return(&storage.Paper{ID: 3}, nil)

	_, err := svc.Add(testContext(), service.AddPaperRequest{Title: "T", Authors: "A", Venue: "V", Keywords: "venture capital"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
}

func TestPaperService_AddWithoutThemesUsesCatchAll(t *testing.T) {
	_, s := newStores(t)
	svc := service.NewPaperService(s.catalog, newResolver())

	s.themes.EXPECT().List(gomock.Any()).Return([]storage.Theme{}, nil)
	s.themes.EXPECT().GetOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, th storage.Theme) (*storage.Theme, error) {
		if th.Name != "Entrepreneurship and Innovation" {
			t.Errorf("GetOrCreate() name = %q, want the catch-all theme", th.Name)
		}
		return &storage.Theme{ID: 7, Name: th.Name}, nil
	})
	s.papers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(4), nil)
	s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(4), []int64{7}).Return(nil)
	s.papers.EXPECT().Get(gomock.Any(), int64(4)).Return(&storage.Paper{ID: 4}, nil)

	if _, err := svc.Add(testContext(), service.AddPaperRequest{Title: "T", Authors: "A", Venue: "V"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
}

func TestPaperService_Update(t *testing.T) {
	title := "New"
	bad := "poster"

	t.Run("no fields", func(t *testing.T) {
		_, s := newStores(t)
		svc := service.NewPaperService(s.catalog, newResolver())
		_, err := svc.Update(testContext(), 1, service.UpdatePaperRequest{})
		var ve *service.ValidationError
		if !errors.As(err, &ve) || ve.Message != "No valid fields to update" {
			t.Errorf("Update() error = %v, want no valid fields", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, s := newStores(t)
		svc := service.NewPaperService(s.catalog, newResolver())
		if _, err := svc.Update(testContext(), 0, service.UpdatePaperRequest{Title: &title}); !errors.Is(err, service.ErrInvalidInput) {
			t.Errorf("Update() error = %v, want invalid input", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, s := newStores(t)
		svc := service.NewPaperService(s.catalog, newResolver())
		s.papers.EXPECT().Update(gomock.Any(), int64(9), gomock.Any()).Return(storage.ErrNotFound)
		if _, err := svc.Update(testContext(), 9, service.UpdatePaperRequest{Title: &title}); !errors.Is(err, service.ErrNotFound) {
			t.Errorf("Update() error = %v, want not found", err)
		}
	})

	t.Run("type normalized", func(t *testing.T) {
		_, s := newStores(t)
		svc := service.NewPaperService(s.catalog, newResolver())
		s.papers.EXPECT().Update(gomock.Any(), int64(2), gomock.Any()).DoAndReturn(
			func(_ any, _ int64, u storage.PaperUpdate) error {
				if u.Type == nil || *u.Type != storage.TypeOther {
					t.Errorf("Update() type = %v, want other", u.Type)
				}
				if u.FullText == nil || *u.FullText != "abs" {
					t.Errorf("Update() full text = %v, want abstract", u.FullText)
				}
				return nil
			})
		s.papers.EXPECT().Get(gomock.Any(), int64(2)).Return(&storage.Paper{ID: 2}, nil)
		abs := "abs"
		if _, err := svc.Update(testContext(), 2, service.UpdatePaperRequest{Type: &bad, Abstract: &abs}); err != nil {
			t.Errorf("Update() error = %v", err)
		}
	})
}

func TestPaperService_SetThemes(t *testing.T) {
	tests := []struct {
		name     string
		paperID  int64
		themeIDs []int64
		setup    func(s stores)
		wantErr  error
	}{
		{name: "nil ids", paperID: 1, themeIDs: nil, wantErr: service.ErrInvalidInput},
		{name: "missing paper id", paperID: 0, themeIDs: []int64{1}, wantErr: service.ErrInvalidInput},
		{
			name: "unknown theme", paperID: 1, themeIDs: []int64{5},
			setup: func(s stores) {
				s.papers.EXPECT().Get(gomock.Any(), int64(1)).Return(&storage.Paper{ID: 1}, nil)
				s.themes.EXPECT().Get(gomock.Any(), int64(5)).Return(nil, storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "replaces", paperID: 1, themeIDs: []int64{2, 1},
			setup: func(s stores) {
				s.papers.EXPECT().Get(gomock.Any(), int64(1)).Return(&storage.Paper{ID: 1}, nil)
				s.themes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&storage.Theme{}, nil).Times(2)
				s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(1), []int64{2, 1}).Return(nil)
			},
		},
		{
			name: "empty clears", paperID: 1, themeIDs: []int64{},
			setup: func(s stores) {
				s.papers.EXPECT().Get(gomock.Any(), int64(1)).Return(&storage.Paper{ID: 1}, nil)
				s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(1), []int64{}).Return(nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newStores(t)
			if tt.setup != nil {
				tt.setup(s)
			}
			svc := service.NewPaperService(s.catalog, newResolver())
			err := svc.SetThemes(testContext(), tt.paperID, tt.themeIDs)
			if tt.wantErr == nil && err != nil {
				t.Errorf("SetThemes() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("SetThemes() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaperService_Stats(t *testing.T) {
	_, s := newStores(t)
	svc := service.NewPaperService(s.catalog, newResolver())
	s.papers.EXPECT().Count(gomock.Any()).Return(12, nil)
	s.themes.EXPECT().Count(gomock.Any()).Return(4, nil)

	got, err := svc.Stats(testContext())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if got != (service.Stats{Papers: 12, Themes: 4}) {
		t.Errorf("Stats() = %+v, want 12/4", got)
	}
}

func TestPaperService_RemoveTheme(t *testing.T) {
	tests := []struct {
		name     string
		paperID  int64
		themeID  int64
		storeErr error
		call     bool
		wantErr  error
	}{
		{"removed", 1, 2, nil, true, nil},
		{"link already absent", 1, 9, storage.ErrNotFound, true, nil},
		{"store failure", 1, 2, errors.New("disk full"), true, errors.New("any")},
		{"missing theme id", 1, 0, nil, false, service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newStores(t)
			svc := service.NewPaperService(s.catalog, newResolver())
			if tt.call {
				s.papers.EXPECT().RemoveTheme(gomock.Any(), tt.paperID, tt.themeID).Return(tt.storeErr)
			}

			err := svc.RemoveTheme(testContext(), tt.paperID, tt.themeID)
			switch {
			case tt.wantErr == nil && err != nil:
				t.Errorf("RemoveTheme() error = %v, want nil", err)
			case tt.wantErr == service.ErrInvalidInput && !errors.Is(err, service.ErrInvalidInput):
				t.Errorf("RemoveTheme() error = %v, want ErrInvalidInput", err)
			case tt.wantErr != nil && err == nil:
				t.Errorf("RemoveTheme() error = nil, want an error")
			}
		})
	}
}
