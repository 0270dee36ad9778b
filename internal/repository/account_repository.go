package repository

import (
	"context"
	"errors"

	"textkeeper/internal/domain/user"
	textkeeper_errors "textkeeper/pkg/errors"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, a *user.Account) error
	GetByEmail(ctx context.Context, email string) (user.Account, error)
	Delete(ctx context.Context, id string) error
}

type GormAccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) Create(ctx context.Context, a *user.Account) error {
	res := r.db.WithContext(ctx).Create(a)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return textkeeper_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *GormAccountRepository) GetByEmail(ctx context.Context, email string) (user.Account, error) {
	var a user.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.Account{}, textkeeper_errors.ErrNotFound
		}
		return user.Account{}, err
	}
	return a, nil
}

func (r *GormAccountRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&user.Account{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return textkeeper_errors.ErrNotFound
	}
	return nil
}
