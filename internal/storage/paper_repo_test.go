package storage

import (
	"context"
	"errors"
	"testing"
)

func seedPaper(t *testing.T, repo *PaperRepo, p Paper) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &p)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return id
}

func seedTheme(t *testing.T, repo *ThemeRepo, name string) int64 {
	t.Helper()
	th, err := repo.GetOrCreate(context.Background(), Theme{Name: name, Description: "Research focusing on " + name, Color: "bg-blue-100 text-blue-800"})
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	return th.ID
}

func TestPaperRepo_CreateGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	ctx := context.Background()

	id := seedPaper(t, repo, Paper{
		Title:          "Opportunity Recognition as Act and Artifact",
		Authors:        []string{"Dimov, D.", "Pistrui, J."},
		Year:           2020,
		Venue:          "JBV",
		Summary:        "About opportunities.",
		Keywords:       []string{"opportunity", "action"},
		Type:           "thesis",
		FileID:         "id:abc",
		FilePath:       "/papers/dimov-2020.pdf",
		MetadataSource: SourceModel,
	})

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Opportunity Recognition as Act and Artifact" {
		t.Errorf("Get() Title = %v", got.Title)
	}
	if len(got.Authors) != 2 || got.Authors[1] != "Pistrui, J." {
		t.Errorf("Get() Authors = %v, want 2 authors", got.Authors)
	}
	if got.Type != TypeOther {
		t.Errorf("Get() Type = %v, want %v", got.Type, TypeOther)
	}
	if got.DOI != "" {
		t.Errorf("Get() DOI = %q, want empty", got.DOI)
	}
	if got.MetadataSource != SourceModel {
		t.Errorf("Get() MetadataSource = %v, want %v", got.MetadataSource, SourceModel)
	}
	if got.CreatedAt.IsZero() {
		t.Errorf("Get() CreatedAt is zero")
	}

	if _, err := repo.Get(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	// file_id is unique.
	dup := Paper{Title: "Other", FileID: "id:abc"}
	if _, err := repo.Create(ctx, &dup); err == nil {
		t.Errorf("Create() duplicate file id expected error")
	}
}

func TestPaperRepo_ListOrderAndThemes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	themes := NewThemeRepo(db.DB)
	ctx := context.Background()

	a := seedPaper(t, repo, Paper{Title: "Beta", Year: 2019})
	b := seedPaper(t, repo, Paper{Title: "Alpha", Year: 2019})
	c := seedPaper(t, repo, Paper{Title: "Zeta", Year: 2021})

	t1 := seedTheme(t, themes, "Opportunity")
	t2 := seedTheme(t, themes, "Cognition")

	if err := repo.ReplaceThemes(ctx, a, []int64{t2, t1, t2}); err != nil {
		t.Fatalf("ReplaceThemes() error = %v", err)
	}

	papers, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	wantOrder := []int64{c, b, a}
	if len(papers) != len(wantOrder) {
		t.Fatalf("List() returned %d papers, want %d", len(papers), len(wantOrder))
	}
	for i, id := range wantOrder {
		if papers[i].ID != id {
			t.Errorf("List()[%d].ID = %v, want %v", i, papers[i].ID, id)
		}
	}

	got := papers[2]
	if len(got.Themes) != 2 {
		t.Fatalf("Themes = %v, want 2 deduplicated entries", got.Themes)
	}
	primary, ok := got.PrimaryTheme()
	if !ok || primary.ID != t2 {
		t.Errorf("PrimaryTheme() = %v, %v, want %v", primary.ID, ok, t2)
	}
	if _, ok := papers[0].PrimaryTheme(); ok {
		t.Errorf("PrimaryTheme() on unthemed paper = true, want false")
	}

	// Replacing reorders the primary theme.
	if err := repo.ReplaceThemes(ctx, a, []int64{t1}); err != nil {
		t.Fatalf("ReplaceThemes() error = %v", err)
	}
	one, err := repo.Get(ctx, a)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(one.Themes) != 1 || one.Themes[0].ID != t1 {
		t.Errorf("Themes after replace = %v, want [%v]", one.Themes, t1)
	}

	if err := repo.RemoveTheme(ctx, a, t1); err != nil {
		t.Fatalf("RemoveTheme() error = %v", err)
	}
	if err := repo.RemoveTheme(ctx, a, t1); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveTheme() twice error = %v, want ErrNotFound", err)
	}
}

func TestPaperRepo_ReplaceThemesRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	themes := NewThemeRepo(db.DB)
	ctx := context.Background()

	id := seedPaper(t, repo, Paper{Title: "Paper", Year: 2020})
	t1 := seedTheme(t, themes, "Opportunity")
	if err := repo.ReplaceThemes(ctx, id, []int64{t1}); err != nil {
		t.Fatalf("ReplaceThemes() error = %v", err)
	}

	// Unknown theme id violates the foreign key; the old association must survive.
	if err := repo.ReplaceThemes(ctx, id, []int64{9999}); err == nil {
		t.Fatalf("ReplaceThemes() unknown theme expected error")
	}
	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Themes) != 1 || got.Themes[0].ID != t1 {
		t.Errorf("Themes after failed replace = %v, want [%v]", got.Themes, t1)
	}
}

func TestPaperRepo_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	ctx := context.Background()

	id := seedPaper(t, repo, Paper{Title: "Old", Year: 2018, DOI: "10.1/x"})

	title := "New"
	year := 2022
	empty := ""
	authors := []string{"Dimov, D."}
	err := repo.Update(ctx, id, PaperUpdate{Title: &title, Year: &year, DOI: &empty, Authors: &authors})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "New" || got.Year != 2022 {
		t.Errorf("Update() title/year = %v/%v, want New/2022", got.Title, got.Year)
	}
	if got.DOI != "" {
		t.Errorf("Update() DOI = %q, want cleared", got.DOI)
	}
	if len(got.Authors) != 1 {
		t.Errorf("Update() Authors = %v", got.Authors)
	}

	if err := repo.Update(ctx, 9999, PaperUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
	if !(PaperUpdate{}).IsEmpty() {
		t.Errorf("PaperUpdate{}.IsEmpty() = false, want true")
	}
	if err := repo.Update(ctx, id, PaperUpdate{}); err == nil {
		t.Errorf("Update() with no fields expected error")
	}
}

func TestPaperRepo_FileQueries(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	ctx := context.Background()

	linked := seedPaper(t, repo, Paper{Title: "Linked", Year: 2020, FileID: "id:1", FilePath: "/Papers/Linked.pdf"})
	unlinked := seedPaper(t, repo, Paper{Title: "Unlinked", Year: 2021})

	ids, err := repo.FileIDs(ctx)
	if err != nil {
		t.Fatalf("FileIDs() error = %v", err)
	}
	if _, ok := ids["id:1"]; !ok || len(ids) != 1 {
		t.Errorf("FileIDs() = %v, want {id:1}", ids)
	}

	got, err := repo.FindByFilePath(ctx, "/papers/linked.PDF")
	if err != nil {
		t.Fatalf("FindByFilePath() error = %v", err)
	}
	if got.ID != linked {
		t.Errorf("FindByFilePath() ID = %v, want %v", got.ID, linked)
	}
	if _, err := repo.FindByFilePath(ctx, "/nope.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByFilePath(missing) error = %v, want ErrNotFound", err)
	}

	list, err := repo.Unlinked(ctx, 20)
	if err != nil {
		t.Fatalf("Unlinked() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != unlinked {
		t.Errorf("Unlinked() = %v, want [%v]", list, unlinked)
	}

	if err := repo.LinkFile(ctx, unlinked, "id:2", "/Papers/Unlinked.pdf"); err != nil {
		t.Fatalf("LinkFile() error = %v", err)
	}
	if list, _ := repo.Unlinked(ctx, 20); len(list) != 0 {
		t.Errorf("Unlinked() after link = %d papers, want 0", len(list))
	}
}

func TestPaperRepo_SearchAndRecent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	ctx := context.Background()

	seedPaper(t, repo, Paper{Title: "Opportunity Recognition", Year: 2018})
	seedPaper(t, repo, Paper{Title: "Other", Summary: "On OPPORTUNITY beliefs", Year: 2021})
	seedPaper(t, repo, Paper{Title: "Unrelated", FullText: "nothing here", Year: 2022})

	got, err := repo.Search(ctx, []string{"opportunity"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search() = %d papers, want 2", len(got))
	}
	if got[0].Year != 2021 {
		t.Errorf("Search()[0].Year = %v, want 2021", got[0].Year)
	}

	if got, _ := repo.Search(ctx, nil); got != nil {
		t.Errorf("Search(nil) = %v, want nil", got)
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 || recent[0].Year != 2022 {
		t.Errorf("Recent() = %v, want newest first", recent)
	}

	withText, err := repo.WithFullText(ctx, 0, 10)
	if err != nil {
		t.Fatalf("WithFullText() error = %v", err)
	}
	if len(withText) != 1 || withText[0].Title != "Unrelated" {
		t.Errorf("WithFullText() = %v, want [Unrelated]", withText)
	}
	if after, _ := repo.WithFullText(ctx, withText[0].ID, 10); len(after) != 0 {
		t.Errorf("WithFullText(after last) = %d papers, want 0", len(after))
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("Count() = %v, %v, want 3", n, err)
	}
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("Count() after DeleteAll = %v, want 0", n)
	}
}

func TestPaperRepo_RawLists(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaperRepo(db.DB)
	ctx := context.Background()

	id := seedPaper(t, repo, Paper{Title: "Nested"})
	if err := repo.SetRawLists(ctx, id, `[["Dimov, D."]]`, `[["a","b"]]`); err != nil {
		t.Fatalf("SetRawLists() error = %v", err)
	}

	raw, err := repo.RawLists(ctx)
	if err != nil {
		t.Fatalf("RawLists() error = %v", err)
	}
	if len(raw) != 1 || !IsDoubleNested(raw[0].Authors) || !IsDoubleNested(raw[0].Keywords) {
		t.Errorf("RawLists() = %v, want double-nested lists", raw)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "a" {
		t.Errorf("Get() Keywords = %v, want [a b]", got.Keywords)
	}
}
