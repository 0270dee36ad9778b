// Package repositorytest holds behaviour checks shared by every
// DocumentStore implementation.
package repositorytest

import (
	"context"
	"testing"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreTests exercises store semantics against a fresh store per subtest.
func RunDocumentStoreTests(t *testing.T, newStore func(t *testing.T) repository.DocumentStore) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, document.TextsCollection, "nobody")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})

	t.Run("SetReplacesDocument", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.TextsCollection, "u1", document.Fields{"text": "a", "extra": "x"}))
		require.NoError(t, store.Set(ctx, document.TextsCollection, "u1", document.Fields{"text": "b"}))

		got, err := store.Get(ctx, document.TextsCollection, "u1")
		require.NoError(t, err)
		assert.Equal(t, document.Fields{"text": "b"}, got)
	})

	t.Run("MergeKeepsOtherFields", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.TextsCollection, "u1", document.Fields{"text": "a", "extra": "x"}))
		require.NoError(t, store.Merge(ctx, document.TextsCollection, "u1", document.Fields{"text": "b"}))

		got, err := store.Get(ctx, document.TextsCollection, "u1")
		require.NoError(t, err)
		assert.Equal(t, document.Fields{"text": "b", "extra": "x"}, got)
	})

	t.Run("MergeCreatesMissing", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Merge(ctx, document.TextsCollection, "u2", document.Fields{"text": "new"}))

		got, err := store.Get(ctx, document.TextsCollection, "u2")
		require.NoError(t, err)
		assert.Equal(t, "new", got["text"])
	})

	t.Run("UpdateRequiresExisting", func(t *testing.T) {
		store := newStore(t)
		err := store.Update(ctx, document.UsersCollection, "ghost", document.Fields{"username": "x"})
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)

		_, err = store.Get(ctx, document.UsersCollection, "ghost")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})

	t.Run("UpdateMergesExisting", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.UsersCollection, "u1", document.Fields{"email": "a@x.io", "username": "alice"}))
		require.NoError(t, store.Update(ctx, document.UsersCollection, "u1", document.Fields{"username": "alicia"}))

		got, err := store.Get(ctx, document.UsersCollection, "u1")
		require.NoError(t, err)
		assert.Equal(t, document.Fields{"email": "a@x.io", "username": "alicia"}, got)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.TextsCollection, "u1", document.Fields{"text": "a"}))
		require.NoError(t, store.Delete(ctx, document.TextsCollection, "u1"))
		require.NoError(t, store.Delete(ctx, document.TextsCollection, "u1"))

		_, err := store.Get(ctx, document.TextsCollection, "u1")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})

	t.Run("FindOne", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.UsersCollection, "b", document.Fields{"username": "bob", "email": "b@x.io"}))
		require.NoError(t, store.Set(ctx, document.UsersCollection, "a", document.Fields{"username": "alice", "email": "a@x.io"}))
		require.NoError(t, store.Set(ctx, document.TextsCollection, "c", document.Fields{"username": "bob"}))

		id, fields, err := store.FindOne(ctx, document.UsersCollection, "username", "bob")
		require.NoError(t, err)
		assert.Equal(t, "b", id)
		assert.Equal(t, "b@x.io", fields["email"])

		_, _, err = store.FindOne(ctx, document.UsersCollection, "username", "carol")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})

	t.Run("FindOnePrefersSmallestID", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.UsersCollection, "z", document.Fields{"username": "dup"}))
		require.NoError(t, store.Set(ctx, document.UsersCollection, "m", document.Fields{"username": "dup"}))

		id, _, err := store.FindOne(ctx, document.UsersCollection, "username", "dup")
		require.NoError(t, err)
		assert.Equal(t, "m", id)
	})

	t.Run("ReturnedFieldsAreCopies", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, document.TextsCollection, "u1", document.Fields{"text": "a"}))

		got, err := store.Get(ctx, document.TextsCollection, "u1")
		require.NoError(t, err)
		got["text"] = "mutated"

		again, err := store.Get(ctx, document.TextsCollection, "u1")
		require.NoError(t, err)
		assert.Equal(t, "a", again["text"])
	})
}
