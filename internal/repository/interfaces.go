package repository

import (
	"context"

	"textkeeper/internal/domain/document"
)

// DocumentStore is a flat collection/key -> fields store.
//
// Get and Update return ErrNotFound for a missing document. Set replaces the
// whole document, Merge upserts only the given fields, Delete succeeds when
// the document is already gone. FindOne returns the first document whose
// field equals value.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (document.Fields, error)
	Set(ctx context.Context, collection, id string, fields document.Fields) error
	Merge(ctx context.Context, collection, id string, fields document.Fields) error
	Update(ctx context.Context, collection, id string, fields document.Fields) error
	Delete(ctx context.Context, collection, id string) error
	FindOne(ctx context.Context, collection, field, value string) (string, document.Fields, error)
}

// Pinger is implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
