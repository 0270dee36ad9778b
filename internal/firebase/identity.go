package firebase

import (
	"context"
	"fmt"

	"textkeeper/internal/domain/user"
	textkeeper_errors "textkeeper/pkg/errors"

	"firebase.google.com/go/v4/auth"
)

// AuthClient is the subset of *auth.Client used by IdentityProvider.
type AuthClient interface {
	CreateUser(ctx context.Context, params *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	CustomToken(ctx context.Context, uid string) (string, error)
}

// PasswordVerifier checks an email/password pair against Firebase Auth.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (user.Identity, error)
}

// IdentityProvider implements identity.Provider on top of Firebase Auth.
// The Admin SDK cannot check passwords, so that step goes through the
// Identity Toolkit sign-in endpoint.
type IdentityProvider struct {
	auth     AuthClient
	verifier PasswordVerifier
}

func NewIdentityProvider(client AuthClient, verifier PasswordVerifier) *IdentityProvider {
	return &IdentityProvider{auth: client, verifier: verifier}
}

func (p *IdentityProvider) CreateUser(ctx context.Context, email, password string) (user.Identity, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	record, err := p.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return user.Identity{}, textkeeper_errors.ErrAlreadyExists
		}
		return user.Identity{}, fmt.Errorf("firebase create user: %w", err)
	}
	return user.Identity{UID: record.UID, Email: record.Email}, nil
}

func (p *IdentityProvider) VerifyPassword(ctx context.Context, email, password string) (user.Identity, error) {
	return p.verifier.VerifyPassword(ctx, email, password)
}

func (p *IdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.auth.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return textkeeper_errors.ErrNotFound
		}
		return fmt.Errorf("firebase delete user: %w", err)
	}
	return nil
}

func (p *IdentityProvider) IssueToken(ctx context.Context, uid string) (string, error) {
	token, err := p.auth.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("firebase custom token: %w", err)
	}
	return token, nil
}
