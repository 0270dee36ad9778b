package firebase

import (
	"context"
	"errors"
	"fmt"

	"textkeeper/internal/domain/document"
	textkeeper_errors "textkeeper/pkg/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore keeps each document at <collection>/<id>.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (document.Fields, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return snapshotFields(snap.Data()), nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, toData(fields))
	return translateError(err)
}

func (s *FirestoreStore) Merge(ctx context.Context, collection, id string, fields document.Fields) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, toData(fields), firestore.MergeAll)
	return translateError(err)
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	return translateError(err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return translateError(err)
}

// FindOne relies on Firestore's default result order, which is by document id.
func (s *FirestoreStore) FindOne(ctx context.Context, collection, field, value string) (string, document.Fields, error) {
	iter := s.client.Collection(collection).
		Where(field, "==", value).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return "", nil, textkeeper_errors.ErrNotFound
	}
	if err != nil {
		return "", nil, translateError(err)
	}
	return snap.Ref.ID, snapshotFields(snap.Data()), nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return textkeeper_errors.ErrNotFound
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	case codes.Canceled:
		return fmt.Errorf("%w: %v", context.Canceled, err)
	}
	return err
}

func toData(fields document.Fields) map[string]interface{} {
	data := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	return data
}

// Only string values belong to the document model; others are skipped.
func snapshotFields(data map[string]interface{}) document.Fields {
	fields := document.Fields{}
	for k, v := range data {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return fields
}

// Ping reads at most one profile to check that Firestore answers.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(document.UsersCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
