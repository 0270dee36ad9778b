package services

import (
	"context"
	"errors"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/domain/user"
	"textkeeper/internal/identity"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"
	"textkeeper/pkg/logger"
)

type AuthService struct {
	identity identity.Provider
	docs     repository.DocumentStore
	logger   *logger.Logger
}

func NewAuthService(provider identity.Provider, docs repository.DocumentStore, l *logger.Logger) *AuthService {
	return &AuthService{identity: provider, docs: docs, logger: l}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token string
	UID   string
}

// Register creates the identity and its users profile. The password only
// ever reaches the identity provider.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user.Profile, error) {
	if err := validateRegister(in); err != nil {
		return user.Profile{}, err
	}

	if err := ensureUsernameAvailable(ctx, s.docs, in.Username, ""); err != nil {
		return user.Profile{}, err
	}

	ident, err := s.identity.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return user.Profile{}, err
	}

	profile := document.Fields{
		document.FieldEmail:    in.Email,
		document.FieldUsername: in.Username,
	}
	if err := s.docs.Set(ctx, document.UsersCollection, ident.UID, profile); err != nil {
		s.rollbackIdentity(ctx, ident.UID)
		return user.Profile{}, err
	}

	return user.Profile{UID: ident.UID, Email: in.Email, Username: in.Username}, nil
}

// Login resolves the username to its profile email, verifies the password
// with the identity provider and issues a token for the verified uid.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := validateLogin(in); err != nil {
		return LoginResult{}, err
	}

	_, profile, err := s.docs.FindOne(ctx, document.UsersCollection, document.FieldUsername, in.Username)
	if err != nil {
		if errors.Is(err, textkeeper_errors.ErrNotFound) {
			return LoginResult{}, textkeeper_errors.ErrUnauthorized
		}
		return LoginResult{}, err
	}

	email := profile[document.FieldEmail]
	if email == "" {
		return LoginResult{}, textkeeper_errors.ErrUnauthorized
	}

	ident, err := s.identity.VerifyPassword(ctx, email, in.Password)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.identity.IssueToken(ctx, ident.UID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, UID: ident.UID}, nil
}

// ensureUsernameAvailable fails with ErrAlreadyExists when a profile other
// than ownerUID holds username.
func ensureUsernameAvailable(ctx context.Context, docs repository.DocumentStore, username, ownerUID string) error {
	id, _, err := docs.FindOne(ctx, document.UsersCollection, document.FieldUsername, username)
	if err == nil {
		if id == ownerUID {
			return nil
		}
		return textkeeper_errors.ErrAlreadyExists
	}
	if errors.Is(err, textkeeper_errors.ErrNotFound) {
		return nil
	}
	return err
}

// rollbackIdentity removes an identity whose profile could not be stored.
// It runs on a fresh context so a cancelled request still cleans up.
func (s *AuthService) rollbackIdentity(ctx context.Context, uid string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := s.identity.DeleteUser(cleanupCtx, uid); err != nil && s.logger != nil {
		s.logger.WithContext(ctx).Errorw("failed to roll back identity after profile write failure",
			"uid", uid, "error", err)
	}
}

func validateRegister(in RegisterInput) error {
	return textkeeper_errors.RequireFields(
		textkeeper_errors.Field{Name: "email", Value: in.Email},
		textkeeper_errors.Field{Name: "password", Value: in.Password},
		textkeeper_errors.Field{Name: "username", Value: in.Username},
	)
}

func validateLogin(in LoginInput) error {
	return textkeeper_errors.RequireFields(
		textkeeper_errors.Field{Name: "username", Value: in.Username},
		textkeeper_errors.Field{Name: "password", Value: in.Password},
	)
}
