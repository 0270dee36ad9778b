package services

import (
	"context"
	"time"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"
)

const rollbackTimeout = 10 * time.Second

type UserService struct {
	docs repository.DocumentStore
}

func NewUserService(docs repository.DocumentStore) *UserService {
	return &UserService{docs: docs}
}

// UpdateUsername changes the username on an existing profile. The new name
// must not belong to another user.
func (s *UserService) UpdateUsername(ctx context.Context, userID, newUsername string) error {
	if err := textkeeper_errors.RequireFields(
		textkeeper_errors.Field{Name: "userId", Value: userID},
		textkeeper_errors.Field{Name: "newUsername", Value: newUsername},
	); err != nil {
		return err
	}

	if err := ensureUsernameAvailable(ctx, s.docs, newUsername, userID); err != nil {
		return err
	}

	return s.docs.Update(ctx, document.UsersCollection, userID, document.Fields{
		document.FieldUsername: newUsername,
	})
}
