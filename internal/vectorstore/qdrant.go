package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"research-portfolio/internal/contextutil"
)

// Payload keys stored with each point.
const (
	KeyTitle    = "title"
	KeyYear     = "year"
	KeyThemeIDs = "theme_ids"
)

// QdrantStore implements VectorStore using Qdrant.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

// grpcAddress derives the gRPC host and port from a Qdrant HTTP URL.
// The gRPC port is the HTTP port + 1, or 6334 when no port is given.
func grpcAddress(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err != nil {
			return "", 0, fmt.Errorf("invalid Qdrant port: %w", err)
		}
		port = httpPort + 1
	}
	return host, port, nil
}

// NewQdrantStore creates a Qdrant-backed paper index.
// urlStr is the HTTP URL, e.g. "http://localhost:6333".
func NewQdrantStore(urlStr, collection string) (*QdrantStore, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	host, port, err := grpcAddress(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client, collection: collection}, nil
}

// Ping checks that the Qdrant server answers.
func (s *QdrantStore) Ping(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// Close releases the gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Upsert implements VectorStore.
func (s *QdrantStore) Upsert(ctx context.Context, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, point := range points {
		if point.PaperID <= 0 {
			return fmt.Errorf("invalid paper id %d", point.PaperID)
		}
		p := &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(point.PaperID)),
			Vectors: qdrant.NewVectors(point.Vec...),
		}
		if len(point.Meta) > 0 {
			p.Payload = qdrant.NewValueMap(point.Meta)
		}
		qdrantPoints = append(qdrantPoints, p)
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", s.collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.DebugContext(ctx, "upserted points", "collection", s.collection, "count", len(points))
	return nil
}

func buildFilter(f Filters) *qdrant.Filter {
	var must []*qdrant.Condition
	if f.ThemeID > 0 {
		must = append(must, qdrant.NewMatchInt(KeyThemeIDs, f.ThemeID))
	}
	if f.MinYear > 0 {
		gte := float64(f.MinYear)
		must = append(must, qdrant.NewRange(KeyYear, &qdrant.Range{Gte: &gte}))
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

// Search implements VectorStore.
func (s *QdrantStore) Search(ctx context.Context, query []float32, k int, filters Filters) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	limit := uint64(k)
	req := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         buildFilter(filters),
	}

	scored, err := s.client.Query(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", s.collection, "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]SearchResult, 0, len(scored))
	for _, hit := range scored {
		if hit.Id == nil {
			continue
		}
		results = append(results, SearchResult{
			PaperID: int64(hit.Id.GetNum()),
			Score:   hit.Score,
			Meta:    convertPayloadToMap(hit.Payload),
		})
	}

	logger.DebugContext(ctx, "search completed", "collection", s.collection, "k", k, "results", len(results))
	return results, nil
}

// Delete implements VectorStore.
func (s *QdrantStore) Delete(ctx context.Context, paperIDs []int64) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(paperIDs) == 0 {
		return nil
	}

	ids := make([]*qdrant.PointId, 0, len(paperIDs))
	for _, id := range paperIDs {
		ids = append(ids, qdrant.NewIDNum(uint64(id)))
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points:         qdrant.NewPointsSelector(ids...),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete points", "collection", s.collection, "count", len(paperIDs), "error", err)
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// EnsureCollection implements VectorStore.
func (s *QdrantStore) EnsureCollection(ctx context.Context, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	if vectorSize <= 0 {
		return fmt.Errorf("vector size must be greater than 0")
	}

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", s.collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}
	actual := vectorSizeOf(info)
	if actual == 0 {
		return fmt.Errorf("could not determine collection vector size")
	}
	if actual != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actual)
	}
	return nil
}

func vectorSizeOf(info *qdrant.CollectionInfo) int {
	if info == nil || info.Config == nil || info.Config.Params == nil {
		return 0
	}
	vc := info.Config.Params.GetVectorsConfig()
	if vc == nil || vc.GetParams() == nil {
		return 0
	}
	return int(vc.GetParams().Size)
}

// convertPayloadToMap converts Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to Go any type.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
