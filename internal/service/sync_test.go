package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"research-portfolio/internal/analysis"
	analysis_mocks "research-portfolio/internal/analysis/mocks"
	"research-portfolio/internal/cloudstore"
	cloudstore_mocks "research-portfolio/internal/cloudstore/mocks"
	"research-portfolio/internal/modelout"
	"research-portfolio/internal/pdftext"
	"research-portfolio/internal/service"
	"research-portfolio/internal/storage"
)

// fakeExtract treats the downloaded bytes as the PDF text.
func fakeExtract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", pdftext.ErrNoText
	}
	return string(data), nil
}

var syncFiles = []cloudstore.File{
	{ID: "id:a", Name: "known.pdf", Path: "/known.pdf", PathLower: "/known.pdf"},
	{ID: "id:b", Name: "Dimov-2020-Opportunity-Recognition.pdf", Path: "/Dimov-2020-Opportunity-Recognition.pdf", PathLower: "/dimov-2020-opportunity-recognition.pdf"},
	{ID: "id:c", Name: "scan.pdf", Path: "/scan.pdf", PathLower: "/scan.pdf"},
}

func TestSyncService_NotConfigured(t *testing.T) {
	_, s := newStores(t)
	svc := service.NewSyncService(s.catalog, nil, nil, newResolver())

	_, err := svc.Sync(testContext())
	if !errors.Is(err, service.ErrNotConfigured) {
		t.Errorf("Sync() error = %v, want ErrNotConfigured", err)
	}
	if err == nil || err.Error() != "Dropbox access token not configured" {
		t.Errorf("Sync() message = %v", err)
	}
}

func TestSyncService_FilenameFallback(t *testing.T) {
	ctrl, s := newStores(t)
	files := cloudstore_mocks.NewMockFileStore(ctrl)
	svc := service.NewSyncService(s.catalog, files, nil, newResolver(),
		service.WithTextExtractor(fakeExtract), service.WithClock(fixedNow))

	files.EXPECT().ListPDFs(gomock.Any()).Return(syncFiles, nil)
	files.EXPECT().Name().Return("dropbox").AnyTimes()
	s.papers.EXPECT().FileIDs(gomock.Any()).Return(map[string]struct{}{"id:a": {}}, nil)
	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	files.EXPECT().Download(gomock.Any(), "/Dimov-2020-Opportunity-Recognition.pdf").Return([]byte("full text"), nil)
	files.EXPECT().Download(gomock.Any(), "/scan.pdf").Return(nil, nil)
	s.themes.EXPECT().GetOrCreate(gomock.Any(), gomock.Any()).Return(&storage.Theme{ID: 3, Name: "Entrepreneurship and Innovation"}, nil)
	s.papers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *storage.Paper) (int64, error) {
		if p.MetadataSource != storage.SourceFilename {
			t.Errorf("MetadataSource = %v, want filename", p.MetadataSource)
		}
		if p.Title != "Opportunity Recognition" || p.Year != 2020 || !reflect.DeepEqual(p.Authors, []string{"Dimov"}) {
			t.Errorf("Create() paper = %+v", p)
		}
		if p.FileID != "id:b" || p.FilePath != "/dimov-2020-opportunity-recognition.pdf" {
			t.Errorf("Create() file = %q %q", p.FileID, p.FilePath)
		}
		return 10, nil
	})
	s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(10), []int64{3}).Return(nil)
	s.expectSnapshot()

	res, err := svc.Sync(testContext())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if res.TotalFiles != 3 || res.NewPapers != 1 || res.ThemesCreated != 1 {
		t.Errorf("Sync() = total %d new %d themes %d, want 3/1/1", res.TotalFiles, res.NewPapers, res.ThemesCreated)
	}
	if res.MetadataSource != storage.SourceFilename {
		t.Errorf("Sync() source = %v, want filename", res.MetadataSource)
	}
	want := service.Summary{Total: 3, Succeeded: 1, Failed: 1, Skipped: 1}
	if res.Summary != want {
		t.Errorf("Sync() summary = %+v, want %+v", res.Summary, want)
	}
	if got := res.SkippedNames(); !reflect.DeepEqual(got, []string{"known.pdf"}) {
		t.Errorf("SkippedNames() = %v", got)
	}
	if res.Results[2].Error != "No text extracted" {
		t.Errorf("Sync() item error = %q, want No text extracted", res.Results[2].Error)
	}
}

func TestSyncService_ModelFailureIsItemError(t *testing.T) {
	ctrl, s := newStores(t)
	files := cloudstore_mocks.NewMockFileStore(ctrl)
	analyzer := analysis_mocks.NewMockAnalyzer(ctrl)
	svc := service.NewSyncService(s.catalog, files, analyzer, newResolver(), service.WithTextExtractor(fakeExtract))

	files.EXPECT().ListPDFs(gomock.Any()).Return(syncFiles[1:2], nil)
	s.papers.EXPECT().FileIDs(gomock.Any()).Return(map[string]struct{}{}, nil)
	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	files.EXPECT().Download(gomock.Any(), gomock.Any()).Return([]byte("text"), nil)
	analyzer.EXPECT().AnalyzeDocument(gomock.Any(), "text", syncFiles[1].Name).
		Return(analysis.DocumentAnalysis{}, &modelout.MalformedOutputError{Attempts: 2, Err: errors.New("bad json")})
	s.expectSnapshot()

	res, err := svc.Sync(testContext())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if res.NewPapers != 0 || res.Summary.Failed != 1 {
		t.Errorf("Sync() = %+v, want one failed item", res.Summary)
	}
}

func TestSyncService_ModelMetadataAndTheme(t *testing.T) {
	ctrl, s := newStores(t)
	files := cloudstore_mocks.NewMockFileStore(ctrl)
	analyzer := analysis_mocks.NewMockAnalyzer(ctrl)
	svc := service.NewSyncService(s.catalog, files, analyzer, newResolver(), service.WithTextExtractor(fakeExtract))

	files.EXPECT().ListPDFs(gomock.Any()).Return(syncFiles[1:2], nil)
	s.papers.EXPECT().FileIDs(gomock.Any()).Return(map[string]struct{}{}, nil)
	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	files.EXPECT().Download(gomock.Any(), gomock.Any()).Return([]byte("text doi 10.1016/j.jbusvent.2020.01.001 end"), nil)
	analyzer.EXPECT().AnalyzeDocument(gomock.Any(), gomock.Any(), gomock.Any()).Return(analysis.DocumentAnalysis{
		Title:        "VC Decisions",
		Authors:      []string{"Dimov"},
		Year:         2011,
		Keywords:     []string{"venture"},
		ResearchArea: "Venture Capital",
	}, nil)
	s.papers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *storage.Paper) (int64, error) {
		if p.MetadataSource != storage.SourceModel || p.DOI != "10.1016/j.jbusvent.2020.01.001" {
			t.Errorf("Create() paper = %+v", p)
		}
		return 11, nil
	})
	s.papers.EXPECT().ReplaceThemes(gomock.Any(), int64(11), []int64{2}).Return(nil)
	s.expectSnapshot()

	res, err := svc.Sync(testContext())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if res.ThemesCreated != 0 || res.NewPapers != 1 {
		t.Errorf("Sync() = %+v", res)
	}
}

func TestSyncService_CheckNew(t *testing.T) {
	ctrl, s := newStores(t)
	files := cloudstore_mocks.NewMockFileStore(ctrl)
	svc := service.NewSyncService(s.catalog, files, nil, newResolver())

	files.EXPECT().ListPDFs(gomock.Any()).Return(syncFiles, nil)
	s.papers.EXPECT().FileIDs(gomock.Any()).Return(map[string]struct{}{"id:a": {}, "id:gone": {}}, nil)

	got, err := svc.CheckNew(testContext())
	if err != nil {
		t.Fatalf("CheckNew() error = %v", err)
	}
	if got.TotalFiles != 3 || got.Existing != 2 || len(got.NewFileNames) != 2 {
		t.Errorf("CheckNew() = %+v", got)
	}
}

func TestSyncService_AllKnownIsNoop(t *testing.T) {
	ctrl, s := newStores(t)
	files := cloudstore_mocks.NewMockFileStore(ctrl)
	svc := service.NewSyncService(s.catalog, files, nil, newResolver(), service.WithTextExtractor(fakeExtract))

	files.EXPECT().ListPDFs(gomock.Any()).Return(syncFiles, nil)
	files.EXPECT().Name().Return("dropbox").AnyTimes()
	s.papers.EXPECT().FileIDs(gomock.Any()).Return(map[string]struct{}{"id:a": {}, "id:b": {}, "id:c": {}}, nil)
	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	s.expectSnapshot()

	res, err := svc.Sync(testContext())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if res.NewPapers != 0 || res.ThemesCreated != 0 {
		t.Errorf("Sync() new papers = %v themes created = %v, want 0 and 0", res.NewPapers, res.ThemesCreated)
	}
	if res.Summary.Skipped != len(syncFiles) || res.Summary.Succeeded != 0 || res.Summary.Failed != 0 {
		t.Errorf("Sync() summary = %+v, want every file skipped", res.Summary)
	}
	if got := res.SkippedNames(); len(got) != len(syncFiles) {
		t.Errorf("SkippedNames() = %v, want %d names", got, len(syncFiles))
	}
}

func TestSyncService_JoinedCallerOutlivesStarter(t *testing.T) {
	ctrl, s := newStores(t)
	files := cloudstore_mocks.NewMockFileStore(ctrl)
	svc := service.NewSyncService(s.catalog, files, nil, newResolver(), service.WithTextExtractor(fakeExtract))

	listing := make(chan struct{})
	release := make(chan struct{})
	files.EXPECT().ListPDFs(gomock.Any()).DoAndReturn(func(context.Context) ([]cloudstore.File, error) {
		close(listing)
		<-release
		return syncFiles[:1], nil
	})
	files.EXPECT().Name().Return("dropbox").AnyTimes()
	s.papers.EXPECT().FileIDs(gomock.Any()).Return(map[string]struct{}{"id:a": {}}, nil)
	s.themes.EXPECT().List(gomock.Any()).Return(baseThemes, nil)
	s.expectSnapshot()

	starterCtx, cancel := context.WithCancel(testContext())
	starterErr := make(chan error, 1)
	go func() {
		_, err := svc.Sync(starterCtx)
		starterErr <- err
	}()
	<-listing

	type outcome struct {
		res service.SyncResult
		err error
	}
	joined := make(chan outcome, 1)
	go func() {
		res, err := svc.Sync(testContext())
		joined <- outcome{res, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-starterErr; !errors.Is(err, context.Canceled) {
		t.Errorf("Sync() starter error = %v, want context.Canceled", err)
	}
	close(release)

	got := <-joined
	if got.err != nil {
		t.Fatalf("Sync() joined error = %v", got.err)
	}
	if got.res.Summary.Cancelled {
		t.Errorf("Sync() joined summary = %+v, want a run that was not cancelled", got.res.Summary)
	}
	if got.res.Summary.Skipped != 1 {
		t.Errorf("Sync() joined skipped = %v, want 1", got.res.Summary.Skipped)
	}
}
