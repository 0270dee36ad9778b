package services

import (
	"context"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"
)

// TextService stores one text document per user, keyed by the user id.
type TextService struct {
	docs repository.DocumentStore
}

func NewTextService(docs repository.DocumentStore) *TextService {
	return &TextService{docs: docs}
}

// Submit replaces the whole text document.
func (s *TextService) Submit(ctx context.Context, userID, text string) error {
	if err := requireUserAndText(userID, text); err != nil {
		return err
	}
	return s.docs.Set(ctx, document.TextsCollection, userID, document.Fields{document.FieldText: text})
}

// Get returns every field stored in the user's text document.
func (s *TextService) Get(ctx context.Context, userID string) (document.Fields, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.docs.Get(ctx, document.TextsCollection, userID)
}

// Update merges the text field, leaving other fields untouched. A missing
// document is created.
func (s *TextService) Update(ctx context.Context, userID, text string) error {
	if err := requireUserAndText(userID, text); err != nil {
		return err
	}
	return s.docs.Merge(ctx, document.TextsCollection, userID, document.Fields{document.FieldText: text})
}

// Delete removes the document. Deleting a missing document succeeds.
func (s *TextService) Delete(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.docs.Delete(ctx, document.TextsCollection, userID)
}

func requireUser(userID string) error {
	return textkeeper_errors.RequireFields(
		textkeeper_errors.Field{Name: "userId", Value: userID},
	)
}

func requireUserAndText(userID, text string) error {
	return textkeeper_errors.RequireFields(
		textkeeper_errors.Field{Name: "userId", Value: userID},
		textkeeper_errors.Field{Name: "text", Value: text},
	)
}
