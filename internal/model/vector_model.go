package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Collection struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Collection) TableName() string {
	return "collections"
}

type Document struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CollectionID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_collection_doc" json:"collection_id"`
	DocID        string          `gorm:"type:varchar(255);uniqueIndex:idx_collection_doc" json:"doc_id"`
	Content      string          `gorm:"type:text" json:"content"`
	Embedding    pgvector.Vector `gorm:"type:vector(384)" json:"embedding"` // pakai pgvector
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
