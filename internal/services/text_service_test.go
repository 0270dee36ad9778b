package services

import (
	"context"
	"testing"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextService(t *testing.T) {
	ctx := context.Background()
	docs := repository.NewMemoryDocumentRepository()
	svc := NewTextService(docs)

	require.NoError(t, svc.Submit(ctx, "u1", "Hello"))

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, document.Fields{"text": "Hello"}, got)

	require.NoError(t, docs.Merge(ctx, document.TextsCollection, "u1", document.Fields{"tag": "keep"}))
	require.NoError(t, svc.Update(ctx, "u1", "Hi"))

	got, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Hi", got["text"])
	assert.Equal(t, "keep", got["tag"])

	require.NoError(t, svc.Delete(ctx, "u1"))
	_, err = svc.Get(ctx, "u1")
	assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "u1"), "deleting a missing document succeeds")
}

func TestTextServiceSubmitReplacesDocument(t *testing.T) {
	ctx := context.Background()
	docs := repository.NewMemoryDocumentRepository()
	svc := NewTextService(docs)

	require.NoError(t, docs.Set(ctx, document.TextsCollection, "u1", document.Fields{"tag": "old"}))
	require.NoError(t, svc.Submit(ctx, "u1", "Hello"))

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotContains(t, got, "tag")
}

func TestTextServiceUpdateCreatesMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewTextService(repository.NewMemoryDocumentRepository())

	require.NoError(t, svc.Update(ctx, "u9", "fresh"))
	got, err := svc.Get(ctx, "u9")
	require.NoError(t, err)
	assert.Equal(t, "fresh", got["text"])
}

func TestTextServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewTextService(repository.NewMemoryDocumentRepository())

	tests := []struct {
		name   string
		call   func() error
		fields []string
	}{
		{"SubmitMissingBoth", func() error { return svc.Submit(ctx, "", "") }, []string{"userId", "text"}},
		{"SubmitMissingText", func() error { return svc.Submit(ctx, "u1", "") }, []string{"text"}},
		{"GetMissingUser", func() error { _, err := svc.Get(ctx, ""); return err }, []string{"userId"}},
		{"UpdateMissingUser", func() error { return svc.Update(ctx, "", "x") }, []string{"userId"}},
		{"DeleteMissingUser", func() error { return svc.Delete(ctx, "") }, []string{"userId"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *textkeeper_errors.ValidationError
			require.ErrorAs(t, tt.call(), &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}
