package repository_test

import (
	"context"
	"testing"
	"time"

	"textkeeper/internal/domain/user"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository(newTestDB(t))

	now := time.Now()
	account := &user.Account{
		ID:           "acc-1",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, account))

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := *account
		dup.ID = "acc-2"
		assert.ErrorIs(t, repo.Create(ctx, &dup), textkeeper_errors.ErrAlreadyExists)
	})

	t.Run("Lookups", func(t *testing.T) {
		byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "acc-1", byEmail.ID)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "acc-1"))
		assert.ErrorIs(t, repo.Delete(ctx, "acc-1"), textkeeper_errors.ErrNotFound)

		_, err := repo.GetByEmail(ctx, "alice@example.com")
		assert.ErrorIs(t, err, textkeeper_errors.ErrNotFound)
	})
}
