package services

import (
	"context"
	"errors"
	"sync"

	"textkeeper/internal/domain/document"
	"textkeeper/internal/domain/user"
	"textkeeper/internal/repository"
	textkeeper_errors "textkeeper/pkg/errors"
)

type fakeAccount struct {
	uid      string
	password string
}

// fakeProvider is an in-memory identity provider.
type fakeProvider struct {
	mu        sync.Mutex
	accounts  map[string]fakeAccount
	deleted   []string
	seq       int
	createErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: make(map[string]fakeAccount)}
}

func (p *fakeProvider) CreateUser(_ context.Context, email, password string) (user.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return user.Identity{}, p.createErr
	}
	if _, ok := p.accounts[email]; ok {
		return user.Identity{}, textkeeper_errors.ErrAlreadyExists
	}
	p.seq++
	uid := "uid-" + string(rune('0'+p.seq))
	p.accounts[email] = fakeAccount{uid: uid, password: password}
	return user.Identity{UID: uid, Email: email}, nil
}

func (p *fakeProvider) VerifyPassword(_ context.Context, email, password string) (user.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.accounts[email]
	if !ok || a.password != password {
		return user.Identity{}, textkeeper_errors.ErrUnauthorized
	}
	return user.Identity{UID: a.uid, Email: email}, nil
}

func (p *fakeProvider) DeleteUser(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for email, a := range p.accounts {
		if a.uid == uid {
			delete(p.accounts, email)
			p.deleted = append(p.deleted, uid)
			return nil
		}
	}
	return textkeeper_errors.ErrNotFound
}

func (p *fakeProvider) IssueToken(_ context.Context, uid string) (string, error) {
	return "token:" + uid, nil
}

var errStoreDown = errors.New("store down")

// failingStore wraps a DocumentStore and fails Set calls.
type failingStore struct {
	repository.DocumentStore
}

func (s failingStore) Set(context.Context, string, string, document.Fields) error {
	return errStoreDown
}

// countingStore records every call that reaches the wrapped store.
type countingStore struct {
	repository.DocumentStore
	mu    sync.Mutex
	calls int
}

func (s *countingStore) hit() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *countingStore) Get(ctx context.Context, collection, id string) (document.Fields, error) {
	s.hit()
	return s.DocumentStore.Get(ctx, collection, id)
}

func (s *countingStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	s.hit()
	return s.DocumentStore.Set(ctx, collection, id, fields)
}

func (s *countingStore) Merge(ctx context.Context, collection, id string, fields document.Fields) error {
	s.hit()
	return s.DocumentStore.Merge(ctx, collection, id, fields)
}

func (s *countingStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	s.hit()
	return s.DocumentStore.Update(ctx, collection, id, fields)
}

func (s *countingStore) Delete(ctx context.Context, collection, id string) error {
	s.hit()
	return s.DocumentStore.Delete(ctx, collection, id)
}

func (s *countingStore) FindOne(ctx context.Context, collection, field, value string) (string, document.Fields, error) {
	s.hit()
	return s.DocumentStore.FindOne(ctx, collection, field, value)
}

// countingProvider records every call that reaches the wrapped provider.
type countingProvider struct {
	*fakeProvider
	calls int
}

func (p *countingProvider) CreateUser(ctx context.Context, email, password string) (user.Identity, error) {
	p.calls++
	return p.fakeProvider.CreateUser(ctx, email, password)
}

func (p *countingProvider) VerifyPassword(ctx context.Context, email, password string) (user.Identity, error) {
	p.calls++
	return p.fakeProvider.VerifyPassword(ctx, email, password)
}

func (p *countingProvider) DeleteUser(ctx context.Context, uid string) error {
	p.calls++
	return p.fakeProvider.DeleteUser(ctx, uid)
}

func (p *countingProvider) IssueToken(ctx context.Context, uid string) (string, error) {
	p.calls++
	return p.fakeProvider.IssueToken(ctx, uid)
}
