package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks research-portfolio/internal/vectorstore VectorStore

import "context"

// Point is one paper embedding with payload.
type Point struct {
	PaperID int64
	Vec     []float32
	Meta    map[string]any
}

// SearchResult is a scored paper hit.
type SearchResult struct {
	PaperID int64
	Score   float32
	Meta    map[string]any
}

// Filters narrows a search. Zero values are ignored.
type Filters struct {
	ThemeID int64
	MinYear int
}

// VectorStore defines the paper index operations. The collection is fixed
// when the store is created.
type VectorStore interface {
	// EnsureCollection creates the collection or validates its vector size.
	EnsureCollection(ctx context.Context, vectorSize int) error

	// Upsert inserts or updates points.
	Upsert(ctx context.Context, points []Point) error

	// Search performs a similarity search.
	Search(ctx context.Context, query []float32, k int, filters Filters) ([]SearchResult, error)

	// Delete removes points by paper id.
	Delete(ctx context.Context, paperIDs []int64) error
}
