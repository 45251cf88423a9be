package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"pdf-rag-chat/internal/helper"
	"pdf-rag-chat/internal/models"
)

// Index is the process-wide vector index. It lives only in memory and only
// ever grows: every insert appends, nothing is deduplicated or removed.
type Index struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
}

// NewIndex creates an empty in-memory index backed by a chromem collection
func NewIndex(embedder embeddings.Embedder, collectionName string) (*Index, error) {
	db := chromem.NewDB()
	c, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}
	return &Index{
		db:         db,
		collection: c,
		embedder:   embedder,
	}, nil
}

// adapt a langchaingo embedder to chromem's query-time embedding hook
func embeddingFunc(e embeddings.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return e.EmbedQuery(ctx, text)
	}
}

// Insert embeds all chunks in one provider call and appends them to the index.
func (x *Index) Insert(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = embedText(c)
	}
	vectors, err := x.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: failed to embed documents: %v", models.ErrUpstream, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks", models.ErrUpstream, len(vectors), len(chunks))
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		id, err := helper.GenerateUUID()
		if err != nil {
			return err
		}
		docs[i] = chromem.Document{
			ID:      id,
			Content: c.Content,
			Metadata: map[string]string{
				models.MetadataSource: c.Source,
				models.MetadataPage:   strconv.Itoa(c.PageNumber),
			},
			Embedding: vectors[i],
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	log.Debug().Int("added", len(docs)).Int("total", x.collection.Count()).Msg("Inserted chunks")
	return nil
}

// embedText is what gets embedded for a chunk. Providers reject empty input,
// so a blank page is embedded by its provenance while its content stays empty.
func embedText(c models.Chunk) string {
	if strings.TrimSpace(c.Content) != "" {
		return c.Content
	}
	return fmt.Sprintf("%s page %d", c.Source, c.PageNumber)
}

// Search returns up to k chunks ordered by descending similarity to query.
func (x *Index) Search(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	if x.Empty() {
		return nil, models.ErrEmptyIndex
	}
	if k <= 0 {
		k = models.DefaultTopK
	}

	queryEmbedding, err := x.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %v", models.ErrUpstream, err)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()
	// chromem rejects nResults larger than the collection
	k = min(k, x.collection.Count())
	results, err := x.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	chunks := make([]models.Chunk, 0, len(results))
	for _, r := range results {
		page, _ := strconv.Atoi(r.Metadata[models.MetadataPage])
		chunks = append(chunks, models.Chunk{
			Content:    r.Content,
			Source:     r.Metadata[models.MetadataSource],
			PageNumber: page,
		})
	}
	return chunks, nil
}

// Count returns the number of stored chunks
func (x *Index) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.collection.Count()
}

// Empty reports whether nothing was ever inserted
func (x *Index) Empty() bool {
	return x.Count() == 0
}
