// Package identity defines the identity provider used for registration and
// login, and a self-hosted implementation of it.
package identity

import (
	"context"

	"textkeeper/internal/domain/user"
)

// Provider creates identities, checks their passwords and issues tokens.
//
// CreateUser returns ErrAlreadyExists when the email is taken.
// VerifyPassword returns ErrUnauthorized for an unknown email or a wrong
// password. DeleteUser returns ErrNotFound for an unknown uid.
type Provider interface {
	CreateUser(ctx context.Context, email, password string) (user.Identity, error)
	VerifyPassword(ctx context.Context, email, password string) (user.Identity, error)
	DeleteUser(ctx context.Context, uid string) error
	IssueToken(ctx context.Context, uid string) (string, error)
}
