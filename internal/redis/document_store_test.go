package redis

import (
	"context"
	"testing"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/repository"
	"textkeeper/internal/repository/repositorytest"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*DocumentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewDocumentStore(client), mr
}

func TestDocumentStore(t *testing.T) {
	repositorytest.RunDocumentStoreTests(t, func(t *testing.T) repository.DocumentStore {
		store, _ := newTestStore(t)
		return store
	})
}

func TestDocumentStoreKeyLayout(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Set(ctx, document.TextsCollection, "u1", document.Fields{"text": "hello"}))
	assert.Equal(t, "hello", mr.HGet("doc:texts:u1", "text"))
	assert.True(t, mr.Exists("doc:texts:u1"))
}

func TestNewClientFailsWhenServerIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewClient(context.Background(), Config{Host: host, Port: port})
	assert.Error(t, err)
}

func TestDocumentStorePing(t *testing.T) {
	store, mr := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	mr.SetError("server down")
	assert.Error(t, store.Ping(context.Background()))
}
