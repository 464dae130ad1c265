package repository

import (
	"context"
	"fmt"

	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Neighbor is one row of a nearest-neighbor query, nearest first.
type Neighbor struct {
	DocID    string  `json:"doc_id"`
	Distance float64 `json:"distance"`
}

type VectorRepository struct {
	db *gorm.DB
}

func NewVectorRepository(db *gorm.DB) *VectorRepository {
	return &VectorRepository{db}
}

// EnsureCollection gets or creates the named collection. Idempotent.
func (r *VectorRepository) EnsureCollection(ctx context.Context, name string) (*model.Collection, error) {
	var col model.Collection
	err := r.db.WithContext(ctx).
		Where(model.Collection{Name: name}).
		FirstOrCreate(&col).Error
	if err != nil {
		return nil, fmt.Errorf("ensure collection %q: %w", name, err)
	}
	return &col, nil
}

// Upsert inserts or replaces documents keyed by (collection, doc id). The
// ids, documents and embeddings slices must be index-aligned.
func (r *VectorRepository) Upsert(ctx context.Context, collection *model.Collection, ids []string, documents []string, embeddings [][]float32) error {
	if len(ids) != len(documents) || len(ids) != len(embeddings) {
		return fmt.Errorf("upsert arrays must be aligned: %d ids, %d documents, %d embeddings",
			len(ids), len(documents), len(embeddings))
	}
	if len(ids) == 0 {
		return nil
	}

	docs := make([]model.Document, len(ids))
	for i := range ids {
		docs[i] = model.Document{
			CollectionID: collection.ID,
			DocID:        ids[i],
			Content:      documents[i],
			Embedding:    pgvector.NewVector(embeddings[i]),
		}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "embedding", "updated_at"}),
	}).Create(&docs).Error
	if err != nil {
		return fmt.Errorf("upsert %d documents into %q: %w", len(ids), collection.Name, err)
	}
	return nil
}

// Query returns up to topK nearest documents to the given embedding,
// ascending by distance.
func (r *VectorRepository) Query(ctx context.Context, collection *model.Collection, embedding []float32, topK int) ([]Neighbor, error) {
	vec := pgvector.NewVector(embedding)

	var neighbors []Neighbor

	// query pgvector <-> operator (Euclidean distance / cosine)
	err := r.db.WithContext(ctx).Raw(`
        SELECT doc_id, embedding <-> ? AS distance
        FROM documents
        WHERE collection_id = ?
        ORDER BY embedding <-> ?
        LIMIT ?
    `, vec, collection.ID, vec, topK).Scan(&neighbors).Error
	if err != nil {
		return nil, fmt.Errorf("query %q top %d: %w", collection.Name, topK, err)
	}

	return neighbors, nil
}
