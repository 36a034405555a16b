package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_theme_store.go -package=mocks research-portfolio/internal/storage ThemeStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ThemeStore defines the theme storage operations.
type ThemeStore interface {
	// List returns every theme ordered by id.
	List(ctx context.Context) ([]Theme, error)
	// ListWithCounts returns themes with paper counts, ordered by count DESC, name ASC.
	ListWithCounts(ctx context.Context) ([]Theme, error)
	// Get returns one theme, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Theme, error)
	// GetOrCreate returns the theme with the given name, creating it when absent.
	GetOrCreate(ctx context.Context, t Theme) (*Theme, error)
	// ForPaper returns the themes associated with a paper, ordered by name.
	ForPaper(ctx context.Context, paperID int64) ([]Theme, error)
	// Count returns the number of themes.
	Count(ctx context.Context) (int, error)
	// ReplaceAll deletes every theme and association, then inserts themes. It
	// returns the inserted themes with ids.
	ReplaceAll(ctx context.Context, themes []Theme) ([]Theme, error)
}

// ThemeRepo implements ThemeStore on database/sql.
type ThemeRepo struct {
	db *sql.DB
}

// NewThemeRepo creates a new ThemeRepo.
func NewThemeRepo(db *sql.DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

const themeColumns = "id, name, description, color, created_at"

func scanTheme(row rowScanner) (Theme, error) {
	var t Theme
	var created flexTime
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &created); err != nil {
		return Theme{}, err
	}
	t.CreatedAt = created.Time
	return t, nil
}

func (r *ThemeRepo) query(ctx context.Context, q string, args ...any) ([]Theme, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query themes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var themes []Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating themes: %w", err)
	}
	return themes, nil
}

// List implements ThemeStore.
func (r *ThemeRepo) List(ctx context.Context) ([]Theme, error) {
	return r.query(ctx, "SELECT "+themeColumns+" FROM themes ORDER BY id")
}

// ListWithCounts implements ThemeStore.
func (r *ThemeRepo) ListWithCounts(ctx context.Context) ([]Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT t.id, t.name, t.description, t.color, t.created_at,
			COUNT(p.id) AS paper_count, MAX(p.updated_at) AS last_updated
		FROM themes t
		LEFT JOIN paper_themes pt ON pt.theme_id = t.id
		LEFT JOIN papers p ON p.id = pt.paper_id
		GROUP BY t.id, t.name, t.description, t.color, t.created_at
		ORDER BY paper_count DESC, t.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query theme counts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var themes []Theme
	for rows.Next() {
		var t Theme
		var created, last flexTime
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &created, &t.PaperCount, &last); err != nil {
			return nil, fmt.Errorf("failed to scan theme count: %w", err)
		}
		t.CreatedAt = created.Time
		t.LastUpdated = last.ptr()
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme counts: %w", err)
	}
	return themes, nil
}

// Get implements ThemeStore.
func (r *ThemeRepo) Get(ctx context.Context, id int64) (*Theme, error) {
	t, err := scanTheme(r.db.QueryRowContext(ctx, "SELECT "+themeColumns+" FROM themes WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query theme: %w", err)
	}
	return &t, nil
}

// GetOrCreate implements ThemeStore. The name match is exact.
func (r *ThemeRepo) GetOrCreate(ctx context.Context, t Theme) (*Theme, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil, fmt.Errorf("theme name is required")
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO themes (name, description, color) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING",
		name, t.Description, t.Color,
	); err != nil {
		return nil, fmt.Errorf("failed to insert theme: %w", err)
	}
	got, err := scanTheme(r.db.QueryRowContext(ctx, "SELECT "+themeColumns+" FROM themes WHERE name = $1", name))
	if err != nil {
		return nil, fmt.Errorf("failed to query theme: %w", err)
	}
	return &got, nil
}

// ForPaper implements ThemeStore.
func (r *ThemeRepo) ForPaper(ctx context.Context, paperID int64) ([]Theme, error) {
	return r.query(ctx, `SELECT t.id, t.name, t.description, t.color, t.created_at
		FROM themes t JOIN paper_themes pt ON pt.theme_id = t.id
		WHERE pt.paper_id = $1
		ORDER BY t.name`, paperID)
}

// Count implements ThemeStore.
func (r *ThemeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM themes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count themes: %w", err)
	}
	return n, nil
}

// ReplaceAll implements ThemeStore.
func (r *ThemeRepo) ReplaceAll(ctx context.Context, themes []Theme) ([]Theme, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM paper_themes"); err != nil {
		return nil, fmt.Errorf("failed to clear paper themes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM themes"); err != nil {
		return nil, fmt.Errorf("failed to clear themes: %w", err)
	}

	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		err := tx.QueryRowContext(ctx,
			"INSERT INTO themes (name, description, color) VALUES ($1, $2, $3) RETURNING id",
			t.Name, t.Description, t.Color,
		).Scan(&t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert theme %q: %w", t.Name, err)
		}
		out = append(out, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit themes: %w", err)
	}
	return out, nil
}
