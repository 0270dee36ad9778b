package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceUpdateUsername(t *testing.T) {
	ctx := context.Background()
	docs := repository.NewMemoryDocumentRepository()
	svc := NewUserService(docs)

	require.NoError(t, docs.Set(ctx, document.UsersCollection, "u1", document.Fields{"email": "a@x.io", "username": "alice"}))
	require.NoError(t, docs.Set(ctx, document.UsersCollection, "u2", document.Fields{"email": "b@x.io", "username": "bob"}))

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, svc.UpdateUsername(ctx, "u1", "alicia"))
		got, err := docs.Get(ctx, document.UsersCollection, "u1")
		require.NoError(t, err)
		assert.Equal(t, document.Fields{"email": "a@x.io", "username": "alicia"}, got)
	})

	t.Run("SameNameIsAllowed", func(t *testing.T) {
		assert.NoError(t, svc.UpdateUsername(ctx, "u2", "bob"))
	})

	t.Run("TakenByAnotherUser", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateUsername(ctx, "u1", "bob"), textkeeper_errors.ErrAlreadyExists)
	})

	t.Run("MissingProfile", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateUsername(ctx, "ghost", "casper"), textkeeper_errors.ErrNotFound)
		_, err := docs.Get(ctx, document.UsersCollection, "ghost")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})

	t.Run("MissingFields", func(t *testing.T) {
		var verr *textkeeper_errors.ValidationError
		require.ErrorAs(t, svc.UpdateUsername(ctx, "", ""), &verr)
		assert.Equal(t, []string{"userId", "newUsername"}, verr.Fields)
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&textkeeper_errors.ValidationError{}, http.StatusBadRequest},
		{textkeeper_errors.ErrUnauthorized, http.StatusUnauthorized},
		{textkeeper_errors.ErrNotFound, http.StatusNotFound},
		{textkeeper_errors.ErrAlreadyExists, http.StatusConflict},
		{textkeeper_errors.ErrConflict, http.StatusConflict},
		{textkeeper_errors.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
