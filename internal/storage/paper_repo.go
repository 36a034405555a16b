package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_paper_store.go -package=mocks research-portfolio/internal/storage PaperStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PaperStore defines the paper storage operations.
type PaperStore interface {
	// List returns every paper with themes, ordered by year DESC, title ASC.
	List(ctx context.Context) ([]Paper, error)
	// Get returns one paper with themes, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Paper, error)
	// Create inserts a paper and returns its id.
	Create(ctx context.Context, p *Paper) (int64, error)
	// Update applies the non-nil fields of u. Returns ErrNotFound if no row matches.
	Update(ctx context.Context, id int64, u PaperUpdate) error
	// ReplaceThemes replaces the paper's theme associations, in order, atomically.
	ReplaceThemes(ctx context.Context, paperID int64, themeIDs []int64) error
	// RemoveTheme deletes one association.
	RemoveTheme(ctx context.Context, paperID, themeID int64) error
	// FileIDs returns every non-empty stored file id.
	FileIDs(ctx context.Context) (map[string]struct{}, error)
	// FindByFilePath looks a paper up by case-insensitive file path.
	FindByFilePath(ctx context.Context, path string) (*Paper, error)
	// Unlinked returns papers with no file path, newest first.
	Unlinked(ctx context.Context, limit int) ([]Paper, error)
	// LinkFile sets the file id and path; empty values clear them.
	LinkFile(ctx context.Context, id int64, fileID, filePath string) error
	// WithFullText returns papers with stored text and id > afterID, in id order.
	WithFullText(ctx context.Context, afterID int64, limit int) ([]Paper, error)
	// Search returns papers whose title, summary or full text contains any term.
	Search(ctx context.Context, terms []string) ([]Paper, error)
	// Recent returns the newest papers by year.
	Recent(ctx context.Context, limit int) ([]Paper, error)
	// Count returns the number of papers.
	Count(ctx context.Context) (int, error)
	// DeleteAll removes every paper and its theme associations.
	DeleteAll(ctx context.Context) error
	// RawLists returns the stored author and keyword text of every paper.
	RawLists(ctx context.Context) ([]RawLists, error)
	// SetRawLists overwrites the stored author and keyword text.
	SetRawLists(ctx context.Context, id int64, authors, keywords string) error
}

// PaperUpdate holds optional field changes. Nil fields are left unchanged.
type PaperUpdate struct {
	Title     *string
	Authors   *[]string
	Year      *int
	Venue     *string
	Summary   *string
	Keywords  *[]string
	FullText  *string
	DOI       *string
	Link      *string
	Volume    *string
	Issue     *string
	PageStart *string
	PageEnd   *string
	Type      *string
}

// IsEmpty reports whether no field is set.
func (u PaperUpdate) IsEmpty() bool {
	return len(u.assignments()) == 0
}

type assignment struct {
	column string
	value  any
}

func (u PaperUpdate) assignments() []assignment {
	var out []assignment
	str := func(col string, v *string, nullable bool) {
		if v == nil {
			return
		}
		if nullable {
			out = append(out, assignment{col, nullString(*v)})
			return
		}
		out = append(out, assignment{col, *v})
	}
	str("title", u.Title, false)
	if u.Authors != nil {
		out = append(out, assignment{"authors", EncodeList(*u.Authors)})
	}
	if u.Year != nil {
		out = append(out, assignment{"year", *u.Year})
	}
	str("venue", u.Venue, false)
	str("summary", u.Summary, false)
	if u.Keywords != nil {
		out = append(out, assignment{"keywords", EncodeList(*u.Keywords)})
	}
	str("full_text", u.FullText, true)
	str("doi", u.DOI, true)
	str("link", u.Link, true)
	str("volume", u.Volume, true)
	str("issue", u.Issue, true)
	str("page_start", u.PageStart, true)
	str("page_end", u.PageEnd, true)
	str("type", u.Type, false)
	return out
}

// RawLists is the unparsed list text of one paper.
type RawLists struct {
	ID       int64
	Authors  string
	Keywords string
}

// PaperRepo implements PaperStore on database/sql.
type PaperRepo struct {
	db *sql.DB
}

// NewPaperRepo creates a new PaperRepo.
func NewPaperRepo(db *sql.DB) *PaperRepo {
	return &PaperRepo{db: db}
}

const paperColumns = `id, title, authors, year, venue, summary, keywords, full_text, doi, link,
	volume, issue, page_start, page_end, type, file_id, file_path, metadata_source, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (Paper, error) {
	var (
		p                                    Paper
		authors, keywords                    string
		fullText, doi, link, volume, issue   sql.NullString
		pageStart, pageEnd, fileID, filePath sql.NullString
		createdAt, updatedAt                 flexTime
	)
	err := row.Scan(&p.ID, &p.Title, &authors, &p.Year, &p.Venue, &p.Summary, &keywords,
		&fullText, &doi, &link, &volume, &issue, &pageStart, &pageEnd, &p.Type,
		&fileID, &filePath, &p.MetadataSource, &createdAt, &updatedAt)
	if err != nil {
		return Paper{}, err
	}
	p.Authors = DecodeList(authors, false)
	p.Keywords = DecodeList(keywords, true)
	p.FullText = fullText.String
	p.DOI = doi.String
	p.Link = link.String
	p.Volume = volume.String
	p.Issue = issue.String
	p.PageStart = pageStart.String
	p.PageEnd = pageEnd.String
	p.FileID = fileID.String
	p.FilePath = filePath.String
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

func (r *PaperRepo) query(ctx context.Context, q string, args ...any) ([]Paper, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var papers []Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating papers: %w", err)
	}
	return papers, nil
}

// List implements PaperStore.
func (r *PaperRepo) List(ctx context.Context) ([]Paper, error) {
	papers, err := r.query(ctx, "SELECT "+paperColumns+" FROM papers ORDER BY year DESC, title ASC")
	if err != nil {
		return nil, err
	}
	if err := r.attachThemes(ctx, papers, 0); err != nil {
		return nil, err
	}
	return papers, nil
}

// Get implements PaperStore.
func (r *PaperRepo) Get(ctx context.Context, id int64) (*Paper, error) {
	p, err := scanPaper(r.db.QueryRowContext(ctx, "SELECT "+paperColumns+" FROM papers WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query paper: %w", err)
	}
	papers := []Paper{p}
	if err := r.attachThemes(ctx, papers, id); err != nil {
		return nil, err
	}
	return &papers[0], nil
}

// attachThemes loads associations for the given papers. onlyID limits the
// query to one paper when non-zero.
func (r *PaperRepo) attachThemes(ctx context.Context, papers []Paper, onlyID int64) error {
	if len(papers) == 0 {
		return nil
	}
	q := `SELECT pt.paper_id, t.id, t.name, t.color
		FROM paper_themes pt JOIN themes t ON t.id = pt.theme_id`
	var args []any
	if onlyID != 0 {
		q += " WHERE pt.paper_id = $1"
		args = append(args, onlyID)
	}
	q += " ORDER BY pt.paper_id, pt.position, t.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("failed to query paper themes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	byPaper := make(map[int64][]ThemeRef)
	for rows.Next() {
		var paperID int64
		var ref ThemeRef
		if err := rows.Scan(&paperID, &ref.ID, &ref.Name, &ref.Color); err != nil {
			return fmt.Errorf("failed to scan paper theme: %w", err)
		}
		byPaper[paperID] = append(byPaper[paperID], ref)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating paper themes: %w", err)
	}

	for i := range papers {
		papers[i].Themes = byPaper[papers[i].ID]
	}
	return nil
}

// Create implements PaperStore.
func (r *PaperRepo) Create(ctx context.Context, p *Paper) (int64, error) {
	source := p.MetadataSource
	if source == "" {
		source = SourceManual
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `INSERT INTO papers
		(title, authors, year, venue, summary, keywords, full_text, doi, link, volume, issue,
		 page_start, page_end, type, file_id, file_path, metadata_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		p.Title, EncodeList(p.Authors), p.Year, p.Venue, p.Summary, EncodeList(p.Keywords),
		nullString(p.FullText), nullString(p.DOI), nullString(p.Link), nullString(p.Volume),
		nullString(p.Issue), nullString(p.PageStart), nullString(p.PageEnd), NormalizeType(p.Type),
		nullString(p.FileID), nullString(p.FilePath), source,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert paper: %w", err)
	}
	p.ID = id
	return id, nil
}

// Update implements PaperStore.
func (r *PaperRepo) Update(ctx context.Context, id int64, u PaperUpdate) error {
	sets := u.assignments()
	if len(sets) == 0 {
		return fmt.Errorf("no fields to update")
	}

	parts := make([]string, 0, len(sets)+1)
	args := make([]any, 0, len(sets)+1)
	for i, a := range sets {
		parts = append(parts, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}
	parts = append(parts, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	q := fmt.Sprintf("UPDATE papers SET %s WHERE id = $%d", strings.Join(parts, ", "), len(args))
	return r.execOne(ctx, "update paper", q, args...)
}

func (r *PaperRepo) execOne(ctx context.Context, what, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceThemes implements PaperStore.
func (r *PaperRepo) ReplaceThemes(ctx context.Context, paperID int64, themeIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM paper_themes WHERE paper_id = $1", paperID); err != nil {
		return fmt.Errorf("failed to clear paper themes: %w", err)
	}
	seen := make(map[int64]struct{}, len(themeIDs))
	pos := 0
	for _, themeID := range themeIDs {
		if _, dup := seen[themeID]; dup {
			continue
		}
		seen[themeID] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO paper_themes (paper_id, theme_id, position) VALUES ($1, $2, $3)",
			paperID, themeID, pos,
		); err != nil {
			return fmt.Errorf("failed to insert paper theme: %w", err)
		}
		pos++
	}
	if _, err := tx.ExecContext(ctx, "UPDATE papers SET updated_at = CURRENT_TIMESTAMP WHERE id = $1", paperID); err != nil {
		return fmt.Errorf("failed to touch paper: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit paper themes: %w", err)
	}
	return nil
}

// RemoveTheme implements PaperStore.
func (r *PaperRepo) RemoveTheme(ctx context.Context, paperID, themeID int64) error {
	return r.execOne(ctx, "remove paper theme",
		"DELETE FROM paper_themes WHERE paper_id = $1 AND theme_id = $2", paperID, themeID)
}

// FileIDs implements PaperStore.
func (r *PaperRepo) FileIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT file_id FROM papers WHERE file_id IS NOT NULL AND file_id <> ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query file ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan file id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// FindByFilePath implements PaperStore.
func (r *PaperRepo) FindByFilePath(ctx context.Context, path string) (*Paper, error) {
	p, err := scanPaper(r.db.QueryRowContext(ctx,
		"SELECT "+paperColumns+" FROM papers WHERE LOWER(file_path) = LOWER($1) ORDER BY id LIMIT 1", path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query paper by path: %w", err)
	}
	return &p, nil
}

// Unlinked implements PaperStore.
func (r *PaperRepo) Unlinked(ctx context.Context, limit int) ([]Paper, error) {
	return r.query(ctx, "SELECT "+paperColumns+` FROM papers
		WHERE file_path IS NULL OR file_path = ''
		ORDER BY year DESC, title ASC LIMIT $1`, limit)
}

// LinkFile implements PaperStore.
func (r *PaperRepo) LinkFile(ctx context.Context, id int64, fileID, filePath string) error {
	return r.execOne(ctx, "link paper file",
		"UPDATE papers SET file_id = $1, file_path = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		nullString(fileID), nullString(filePath), id)
}

// WithFullText implements PaperStore.
func (r *PaperRepo) WithFullText(ctx context.Context, afterID int64, limit int) ([]Paper, error) {
	return r.query(ctx, "SELECT "+paperColumns+` FROM papers
		WHERE full_text IS NOT NULL AND full_text <> '' AND id > $1
		ORDER BY id LIMIT $2`, afterID, limit)
}

// Search implements PaperStore. Matching is case-insensitive.
func (r *PaperRepo) Search(ctx context.Context, terms []string) ([]Paper, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	conds := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))
	for i, term := range terms {
		n := i + 1
		conds = append(conds, fmt.Sprintf(
			"LOWER(title) LIKE $%d OR LOWER(summary) LIKE $%d OR LOWER(COALESCE(full_text, '')) LIKE $%d", n, n, n))
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	q := "SELECT " + paperColumns + " FROM papers WHERE " + strings.Join(conds, " OR ") + " ORDER BY year DESC, id"
	return r.query(ctx, q, args...)
}

// Recent implements PaperStore.
func (r *PaperRepo) Recent(ctx context.Context, limit int) ([]Paper, error) {
	return r.query(ctx, "SELECT "+paperColumns+" FROM papers ORDER BY year DESC, title ASC LIMIT $1", limit)
}

// Count implements PaperStore.
func (r *PaperRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM papers").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count papers: %w", err)
	}
	return n, nil
}

// DeleteAll implements PaperStore.
func (r *PaperRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM papers"); err != nil {
		return fmt.Errorf("failed to delete papers: %w", err)
	}
	return nil
}

// RawLists implements PaperStore.
func (r *PaperRepo) RawLists(ctx context.Context) ([]RawLists, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, authors, keywords FROM papers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query paper lists: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []RawLists
	for rows.Next() {
		var rl RawLists
		if err := rows.Scan(&rl.ID, &rl.Authors, &rl.Keywords); err != nil {
			return nil, fmt.Errorf("failed to scan paper lists: %w", err)
		}
		out = append(out, rl)
	}
	return out, rows.Err()
}

// SetRawLists implements PaperStore.
func (r *PaperRepo) SetRawLists(ctx context.Context, id int64, authors, keywords string) error {
	return r.execOne(ctx, "update paper lists",
		"UPDATE papers SET authors = $1, keywords = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		authors, keywords, id)
}
