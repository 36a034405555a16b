package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_service.go -package=mocks -mock_names=FileService=MockFileService research-portfolio/internal/service FileService

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"research-portfolio/internal/cloudstore"
	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/filematch"
	"research-portfolio/internal/storage"
)

const (
	unlinkedLimit       = 20
	availableFilesShown = 5
)

// PDFLinkResult is a matched file with a download URL. AvailableFiles is
// filled when nothing matched.
type PDFLinkResult struct {
	URL            string
	Filename       string
	Score          int
	AvailableFiles []string
}

// RenameRequest renames a stored PDF and optionally relinks a paper.
type RenameRequest struct {
	OldPath string
	NewName string
	PaperID int64
}

// RenameResult is the renamed file.
type RenameResult struct {
	OldPath string
	NewPath string
	Name    string
}

// Suggestion proposes names for one paper's PDF.
type Suggestion struct {
	Paper       storage.Paper
	Current     *cloudstore.File
	Names       []string
	Recommended string
}

// SuggestResult holds suggestions for every paper and the files no paper claims.
type SuggestResult struct {
	Suggestions []Suggestion
	Unmatched   []cloudstore.File
	TotalPapers int
	TotalFiles  int
}

// FileService links papers to the PDFs in the file store.
type FileService interface {
	// PDFLink finds the file best matching meta and returns a temporary download URL.
	PDFLink(ctx context.Context, meta filematch.Meta) (PDFLinkResult, error)
	// Unlinked returns papers without a linked file.
	Unlinked(ctx context.Context) ([]storage.Paper, error)
	// Link stores a paper's file reference. Empty values clear it.
	Link(ctx context.Context, paperID int64, filePath, fileID string) error
	// Rename moves a file within its folder and relinks the paper when given.
	Rename(ctx context.Context, req RenameRequest) (RenameResult, error)
	// Suggest proposes conventional filenames for every paper.
	Suggest(ctx context.Context) (SuggestResult, error)
}

// fileService implements FileService.
type fileService struct {
	catalog *Catalog
	files   cloudstore.FileStore
}

// NewFileService creates a new FileService. A nil file store fails the calls that need it.
func NewFileService(catalog *Catalog, files cloudstore.FileStore) FileService {
	return &fileService{catalog: catalog, files: files}
}

func (s *fileService) listFiles(ctx context.Context) ([]cloudstore.File, error) {
	if s.files == nil {
		return nil, errNoFileStore
	}
	files, err := s.files.ListPDFs(ctx)
	if err != nil {
		return nil, externalError("failed to list files", err)
	}
	return files, nil
}

func candidates(files []cloudstore.File) []filematch.File {
	out := make([]filematch.File, len(files))
	for i, f := range files {
		out[i] = filematch.File{ID: f.ID, Name: f.Name, Path: f.PathLower}
	}
	return out
}

func (s *fileService) PDFLink(ctx context.Context, meta filematch.Meta) (PDFLinkResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if strings.TrimSpace(meta.Title) == "" {
		return PDFLinkResult{}, &ValidationError{Field: "paperTitle", Message: "Paper title is required"}
	}
	files, err := s.listFiles(ctx)
	if err != nil {
		return PDFLinkResult{}, err
	}

	match, ok := filematch.Best(candidates(files), meta, filematch.LinkMinScore)
	if !ok {
		res := PDFLinkResult{AvailableFiles: []string{}}
		for i := 0; i < len(files) && i < availableFilesShown; i++ {
			res.AvailableFiles = append(res.AvailableFiles, files[i].Name)
		}
		logger.InfoContext(ctx, "no pdf matched", "title", meta.Title, "files", len(files))
		return res, newError(ErrNotFound, "PDF not found in Dropbox")
	}

	url, err := s.files.TemporaryLink(ctx, match.File.Path)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create download link", "path", match.File.Path, "error", err)
		return PDFLinkResult{}, externalError("Could not create download link", err)
	}
	return PDFLinkResult{URL: url, Filename: match.File.Name, Score: match.Score}, nil
}

func (s *fileService) Unlinked(ctx context.Context) ([]storage.Paper, error) {
	papers, err := s.catalog.Papers().Unlinked(ctx, unlinkedLimit)
	if err != nil {
		return nil, WrapError(err, "failed to get unlinked papers")
	}
	return papers, nil
}

func (s *fileService) Link(ctx context.Context, paperID int64, filePath, fileID string) error {
	if err := requirePaperID(paperID); err != nil {
		return err
	}
	err := s.catalog.Papers().LinkFile(ctx, paperID, strings.TrimSpace(fileID), strings.TrimSpace(filePath))
	if errors.Is(err, storage.ErrNotFound) {
		return errNoPaper
	}
	if err != nil {
		return WrapError(err, "failed to link PDF")
	}
	s.catalog.Invalidate(ctx)
	return nil
}

func (s *fileService) Rename(ctx context.Context, req RenameRequest) (RenameResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if s.files == nil {
		return RenameResult{}, errNoFileStore
	}
	if strings.TrimSpace(req.OldPath) == "" || strings.TrimSpace(req.NewName) == "" {
		return RenameResult{}, &ValidationError{Field: "newName", Message: "Old path and new name are required"}
	}
	if strings.ContainsAny(req.NewName, `/\`) {
		return RenameResult{}, &ValidationError{Field: "newName", Message: "New name must not contain a path separator"}
	}

	to := cloudstore.RenameTarget(req.OldPath, req.NewName)
	name := path.Base(to)
	moved, err := s.files.Move(ctx, req.OldPath, to)
	switch {
	case errors.Is(err, cloudstore.ErrConflict):
		return RenameResult{}, newError(ErrConflict, fmt.Sprintf("A file named %q already exists. Please choose a different name.", name))
	case errors.Is(err, cloudstore.ErrNotFound):
		return RenameResult{}, newError(ErrNotFound, "File not found")
	case err != nil:
		logger.ErrorContext(ctx, "failed to rename file", "from", req.OldPath, "to", to, "error", err)
		return RenameResult{}, externalError("Failed to rename file in Dropbox", err)
	}

	if req.PaperID > 0 {
		if err := s.catalog.Papers().LinkFile(ctx, req.PaperID, moved.ID, moved.PathLower); err != nil {
			logger.ErrorContext(ctx, "renamed file but failed to relink paper", "paper_id", req.PaperID, "error", err)
			return RenameResult{}, WrapError(err, "failed to relink paper")
		}
		s.catalog.Invalidate(ctx)
	}
	logger.InfoContext(ctx, "renamed file", "from", req.OldPath, "to", moved.PathLower)
	return RenameResult{OldPath: req.OldPath, NewPath: moved.PathLower, Name: name}, nil
}

func (s *fileService) Suggest(ctx context.Context) (SuggestResult, error) {
	files, err := s.listFiles(ctx)
	if err != nil {
		return SuggestResult{}, err
	}
	papers, err := s.catalog.Papers().List(ctx)
	if err != nil {
		return SuggestResult{}, WrapError(err, "failed to list papers")
	}

	byPath := make(map[string]cloudstore.File, len(files))
	for _, f := range files {
		byPath[f.PathLower] = f
	}
	cands := candidates(files)

	res := SuggestResult{TotalPapers: len(papers), TotalFiles: len(files), Suggestions: make([]Suggestion, 0, len(papers))}
	claimed := make(map[string]struct{})
	for _, p := range papers {
		meta := filematch.Meta{Title: p.Title, Year: p.Year, Authors: p.Authors}
		names := filematch.SuggestNames(meta)
		sg := Suggestion{Paper: p, Names: names, Recommended: names[0]}

		if f, ok := byPath[strings.ToLower(p.FilePath)]; ok && p.FilePath != "" {
			sg.Current = &f
		} else if m, ok := filematch.SuggestMatch(cands, meta); ok {
			if f, ok := byPath[m.File.Path]; ok {
				sg.Current = &f
			}
		}
		if sg.Current != nil {
			claimed[sg.Current.ID] = struct{}{}
		}
		res.Suggestions = append(res.Suggestions, sg)
	}
	for _, f := range files {
		if _, ok := claimed[f.ID]; !ok {
			res.Unmatched = append(res.Unmatched, f)
		}
	}
	return res, nil
}
