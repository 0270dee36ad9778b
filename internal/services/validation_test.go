package services

import (
	"context"
	"testing"

	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"
	"textkeeper/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFieldsStopBeforeBackends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func(auth *AuthService, texts *TextService, users *UserService) error
		fields []string
	}{
		{"Register", func(a *AuthService, _ *TextService, _ *UserService) error {
			_, err := a.Register(ctx, RegisterInput{Email: "alice@example.com"})
			return err
		}, []string{"password", "username"}},
		{"Login", func(a *AuthService, _ *TextService, _ *UserService) error {
			_, err := a.Login(ctx, LoginInput{Password: "secret"})
			return err
		}, []string{"username"}},
		{"Submit", func(_ *AuthService, s *TextService, _ *UserService) error {
			return s.Submit(ctx, "u1", "")
		}, []string{"text"}},
		{"Get", func(_ *AuthService, s *TextService, _ *UserService) error {
			_, err := s.Get(ctx, "")
			return err
		}, []string{"userId"}},
		{"Update", func(_ *AuthService, s *TextService, _ *UserService) error {
			return s.Update(ctx, "", "Hi")
		}, []string{"userId"}},
		{"Delete", func(_ *AuthService, s *TextService, _ *UserService) error {
			return s.Delete(ctx, "")
		}, []string{"userId"}},
		{"UpdateUsername", func(_ *AuthService, _ *TextService, s *UserService) error {
			return s.UpdateUsername(ctx, "u1", "")
		}, []string{"newUsername"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := &countingStore{DocumentStore: repository.NewMemoryDocumentRepository()}
			provider := &countingProvider{fakeProvider: newFakeProvider()}
			auth := NewAuthService(provider, docs, logger.NewNop())

			err := tt.call(auth, NewTextService(docs), NewUserService(docs))

			var verr *textkeeper_errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
			assert.Zero(t, docs.count(), "document store calls")
			assert.Zero(t, provider.calls, "identity provider calls")
		})
	}
}
