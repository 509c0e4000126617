// Package retrieval provides nearest-neighbor lookup of listing snippets
// backed by a qdrant collection. The provider must be initialized before
// use; queries are read-only and safe for concurrent use.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync/atomic"

	"realassist/internal/config"
	"realassist/internal/models"
	"realassist/internal/utils"

	"github.com/qdrant/go-client/qdrant"
)

// ErrNotReady is returned when the provider is used before Init has
// completed. Fatal at startup; not expected during steady-state handling.
var ErrNotReady = errors.New("retrieval provider not initialized")

// Embedder turns text into query vectors. Must be safe for concurrent use.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider wraps an embedder and a persistent vector index.
type Provider struct {
	client     *qdrant.Client
	embedder   Embedder
	collection string
	limit      int
	dim        uint64
	ready      atomic.Bool
}

// New creates an unready provider. Call Init before Retrieve.
func New(cfg *config.Config, embedder Embedder) (*Provider, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.QdrantHost,
		Port: cfg.QdrantPort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Provider{
		client:     client,
		embedder:   embedder,
		collection: cfg.QdrantCollection,
		limit:      cfg.MaxRetrievalDocs,
		dim:        uint64(cfg.EmbeddingDim),
	}, nil
}

// Init ensures the collection exists and marks the provider ready.
func (p *Provider) Init(ctx context.Context) error {
	exists, err := p.client.CollectionExists(ctx, p.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %q: %w", p.collection, err)
	}

	if !exists {
		err = p.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: p.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     p.dim,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection %q: %w", p.collection, err)
		}
	}

	p.ready.Store(true)
	return nil
}

// Healthy reports whether the backing collection is reachable. Used by the
// status endpoint; cheap enough to call per request.
func (p *Provider) Healthy(ctx context.Context) error {
	if !p.ready.Load() {
		return ErrNotReady
	}

	exists, err := p.client.CollectionExists(ctx, p.collection)
	if err != nil {
		return fmt.Errorf("vector store unreachable: %w", err)
	}
	if !exists {
		return fmt.Errorf("collection %q missing", p.collection)
	}
	return nil
}

// Retrieve embeds the query and returns the top-K most similar listing
// snippets, most similar first.
func (p *Provider) Retrieve(ctx context.Context, query string) (models.RetrievedContext, error) {
	if !p.ready.Load() {
		return nil, ErrNotReady
	}

	vectors, err := p.embedder.CreateEmbeddings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := p.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: p.collection,
		Query:          qdrant.NewQuery(vectors[0]...),
		Limit:          qdrant.PtrOf(uint64(p.limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	retrieved := make(models.RetrievedContext, 0, len(points))
	for _, point := range points {
		retrieved = append(retrieved, snippetFromPayload(point.Payload))
	}

	return retrieved, nil
}

// IndexListings embeds listing documents and upserts them into the
// collection. Existing points for the same listing id are overwritten.
func (p *Provider) IndexListings(ctx context.Context, listings []models.Listing) error {
	if !p.ready.Load() {
		return ErrNotReady
	}
	if len(listings) == 0 {
		return nil
	}

	texts := make([]string, len(listings))
	for i, listing := range listings {
		texts[i] = BuildListingDocument(listing)
	}

	vectors, err := p.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed listings: %w", err)
	}

	points := make([]*qdrant.PointStruct, len(listings))
	for i, listing := range listings {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(pointID(listing.ListingID)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":       texts[i],
				"listing_id": listing.ListingID,
				"city":       listing.City,
				"price":      listing.Price,
				"bedrooms":   int64(listing.Bedrooms),
				"bathrooms":  int64(listing.Bathrooms),
			}),
		}
	}

	_, err = p.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: p.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert listings: %w", err)
	}

	return nil
}

// BuildListingDocument renders one listing as the text that gets embedded
// and later returned as a retrieved snippet.
func BuildListingDocument(listing models.Listing) string {
	doc := fmt.Sprintf("%s.\nLocated at %s, %s, %s %s.\nPrice: %s, %d bedrooms, %d bathrooms, %d sq ft.\nAmenities: %s.",
		listing.Title,
		listing.Address,
		listing.City,
		listing.State,
		listing.Zip,
		utils.FormatPrice(listing.Price),
		listing.Bedrooms,
		listing.Bathrooms,
		listing.SquareFootage,
		listing.Amenities,
	)
	return strings.TrimSpace(strings.ReplaceAll(doc, "  ", " "))
}

func snippetFromPayload(payload map[string]*qdrant.Value) models.ListingSnippet {
	snippet := models.ListingSnippet{}
	if v, ok := payload["text"]; ok {
		snippet.Text = v.GetStringValue()
	}
	if v, ok := payload["listing_id"]; ok {
		snippet.ListingID = v.GetStringValue()
	}
	if v, ok := payload["city"]; ok {
		snippet.City = v.GetStringValue()
	}
	if v, ok := payload["price"]; ok {
		snippet.Price = v.GetDoubleValue()
	}
	if v, ok := payload["bedrooms"]; ok {
		snippet.Bedrooms = int(v.GetIntegerValue())
	}
	if v, ok := payload["bathrooms"]; ok {
		snippet.Bathrooms = int(v.GetIntegerValue())
	}
	return snippet
}

// pointID derives a stable numeric point id from a listing id so repeated
// ingestion overwrites rather than duplicates.
func pointID(listingID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(listingID))
	return h.Sum64()
}
