package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"textkeeper/internal/domain/user"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider keeps identities in the accounts table, hashes passwords
// with bcrypt and signs HS256 access tokens.
type LocalProvider struct {
	accounts  repository.AccountRepository
	jwtSecret []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewLocalProvider(accounts repository.AccountRepository, jwtSecret string, accessTTL time.Duration) *LocalProvider {
	return &LocalProvider{
		accounts:  accounts,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

type AccessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (p *LocalProvider) CreateUser(ctx context.Context, email, password string) (user.Identity, error) {
	email = normalizeEmail(email)
	if _, err := p.accounts.GetByEmail(ctx, email); err == nil {
		return user.Identity{}, textkeeper_errors.ErrAlreadyExists
	} else if !errors.Is(err, textkeeper_errors.ErrNotFound) {
		return user.Identity{}, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return user.Identity{}, err
	}

	now := p.now()
	account := &user.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		return user.Identity{}, err
	}

	return user.Identity{UID: account.ID, Email: account.Email}, nil
}

func (p *LocalProvider) VerifyPassword(ctx context.Context, email, password string) (user.Identity, error) {
	account, err := p.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, textkeeper_errors.ErrNotFound) {
			return user.Identity{}, textkeeper_errors.ErrUnauthorized
		}
		return user.Identity{}, err
	}

	if !account.IsActive {
		return user.Identity{}, textkeeper_errors.ErrUnauthorized
	}

	if err := comparePassword(account.PasswordHash, password); err != nil {
		return user.Identity{}, textkeeper_errors.ErrUnauthorized
	}

	return user.Identity{UID: account.ID, Email: account.Email}, nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	return p.accounts.Delete(ctx, uid)
}

func (p *LocalProvider) IssueToken(_ context.Context, uid string) (string, error) {
	now := p.now()
	claims := AccessClaims{
		UserID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
