package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"textkeeper/internal/domain/document"
	textkeeper_errors "textkeeper/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const findBatchSize = 200

type GormDocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Get(ctx context.Context, collection, id string) (document.Fields, error) {
	var d document.Document
	err := r.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, textkeeper_errors.ErrNotFound
		}
		return nil, err
	}
	return decodeFields(d.Data)
}

func (r *GormDocumentRepository) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	data, err := encodeFields(fields)
	if err != nil {
		return err
	}
	now := time.Now()
	d := &document.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(d).Error
}

func (r *GormDocumentRepository) Merge(ctx context.Context, collection, id string, fields document.Fields) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d document.Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&d).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			data, encErr := encodeFields(fields)
			if encErr != nil {
				return encErr
			}
			now := time.Now()
			return tx.Create(&document.Document{
				Collection: collection,
				ID:         id,
				Data:       data,
				CreatedAt:  now,
				UpdatedAt:  now,
			}).Error
		}
		if err != nil {
			return err
		}
		return mergeInto(tx, &d, fields)
	})
}

func (r *GormDocumentRepository) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d document.Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&d).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return textkeeper_errors.ErrNotFound
			}
			return err
		}
		return mergeInto(tx, &d, fields)
	})
}

func (r *GormDocumentRepository) Delete(ctx context.Context, collection, id string) error {
	return r.db.WithContext(ctx).
		Delete(&document.Document{}, "collection = ? AND id = ?", collection, id).Error
}

// FindOne pages through the collection and compares decoded fields, so it
// behaves the same on every dialect.
func (r *GormDocumentRepository) FindOne(ctx context.Context, collection, field, value string) (string, document.Fields, error) {
	for offset := 0; ; offset += findBatchSize {
		var batch []document.Document
		err := r.db.WithContext(ctx).
			Where("collection = ?", collection).
			Order("id").
			Offset(offset).
			Limit(findBatchSize).
			Find(&batch).Error
		if err != nil {
			return "", nil, err
		}
		for _, d := range batch {
			fields, err := decodeFields(d.Data)
			if err != nil {
				return "", nil, err
			}
			if fields[field] == value {
				return d.ID, fields, nil
			}
		}
		if len(batch) < findBatchSize {
			return "", nil, textkeeper_errors.ErrNotFound
		}
	}
}

func (r *GormDocumentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func mergeInto(tx *gorm.DB, d *document.Document, fields document.Fields) error {
	current, err := decodeFields(d.Data)
	if err != nil {
		return err
	}
	for k, v := range fields {
		current[k] = v
	}
	data, err := encodeFields(current)
	if err != nil {
		return err
	}
	return tx.Model(&document.Document{}).
		Where("collection = ? AND id = ?", d.Collection, d.ID).
		Updates(map[string]interface{}{"data": data, "updated_at": time.Now()}).Error
}

func encodeFields(fields document.Fields) (string, error) {
	if fields == nil {
		fields = document.Fields{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeFields(data string) (document.Fields, error) {
	fields := document.Fields{}
	if data == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
