package repository

import (
	"context"
	"sort"
	"sync"

	"textkeeper/internal/domain/document"
	textkeeper_errors "textkeeper/pkg/errors"
)

// MemoryDocumentRepository keeps documents in process memory. It backs the
// "memory" document backend and the handler tests.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]map[string]document.Fields
}

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[string]map[string]document.Fields)}
}

func (r *MemoryDocumentRepository) Get(_ context.Context, collection, id string) (document.Fields, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields, ok := r.docs[collection][id]
	if !ok {
		return nil, textkeeper_errors.ErrNotFound
	}
	return fields.Clone(), nil
}

func (r *MemoryDocumentRepository) Set(_ context.Context, collection, id string, fields document.Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collection(collection)[id] = fields.Clone()
	return nil
}

func (r *MemoryDocumentRepository) Merge(_ context.Context, collection, id string, fields document.Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.collection(collection)
	current, ok := docs[id]
	if !ok {
		current = document.Fields{}
		docs[id] = current
	}
	for k, v := range fields {
		current[k] = v
	}
	return nil
}

func (r *MemoryDocumentRepository) Update(_ context.Context, collection, id string, fields document.Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.docs[collection][id]
	if !ok {
		return textkeeper_errors.ErrNotFound
	}
	for k, v := range fields {
		current[k] = v
	}
	return nil
}

func (r *MemoryDocumentRepository) Delete(_ context.Context, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.docs[collection], id)
	return nil
}

func (r *MemoryDocumentRepository) FindOne(_ context.Context, collection, field, value string) (string, document.Fields, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := r.docs[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if docs[id][field] == value {
			return id, docs[id].Clone(), nil
		}
	}
	return "", nil, textkeeper_errors.ErrNotFound
}

func (r *MemoryDocumentRepository) Ping(context.Context) error {
	return nil
}

func (r *MemoryDocumentRepository) collection(name string) map[string]document.Fields {
	docs, ok := r.docs[name]
	if !ok {
		docs = make(map[string]document.Fields)
		r.docs[name] = docs
	}
	return docs
}
