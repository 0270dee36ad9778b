package redis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"textkeeper/internal/domain/document"
	textkeeper_errors "textkeeper/pkg/errors"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: doc:{collection}:{id}, one hash per document.
// A hash with no fields does not exist in Redis, so an empty document reads
// back as not found.

const scanCount = 200

// updateExisting writes fields only when the hash already exists.
var updateExisting = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return 1
`)

// DocumentStore keeps documents as Redis hashes.
type DocumentStore struct {
	client *goredis.Client
}

func NewDocumentStore(client *goredis.Client) *DocumentStore {
	return &DocumentStore{client: client}
}

func documentKey(collection, id string) string {
	return fmt.Sprintf("doc:%s:%s", collection, id)
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (document.Fields, error) {
	values, err := s.client.HGetAll(ctx, documentKey(collection, id)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, textkeeper_errors.ErrNotFound
	}
	return document.Fields(values), nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	key := documentKey(collection, id)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, hashArgs(fields)...)
		}
		return nil
	})
	return err
}

func (s *DocumentStore) Merge(ctx context.Context, collection, id string, fields document.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	return s.client.HSet(ctx, documentKey(collection, id), hashArgs(fields)...).Err()
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	key := documentKey(collection, id)
	if len(fields) == 0 {
		exists, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return textkeeper_errors.ErrNotFound
		}
		return nil
	}
	updated, err := updateExisting.Run(ctx, s.client, []string{key}, hashArgs(fields)...).Int()
	if err != nil {
		return err
	}
	if updated == 0 {
		return textkeeper_errors.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	return s.client.Del(ctx, documentKey(collection, id)).Err()
}

// FindOne walks the collection with SCAN. Matching keys are checked in
// sorted order so repeated lookups agree on the first match.
func (s *DocumentStore) FindOne(ctx context.Context, collection, field, value string) (string, document.Fields, error) {
	prefix := documentKey(collection, "")
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return "", nil, err
	}
	sort.Strings(keys)

	for _, key := range keys {
		got, err := s.client.HGet(ctx, key, field).Result()
		if err == goredis.Nil {
			continue
		}
		if err != nil {
			return "", nil, err
		}
		if got != value {
			continue
		}
		id := strings.TrimPrefix(key, prefix)
		fields, err := s.Get(ctx, collection, id)
		if err != nil {
			return "", nil, err
		}
		return id, fields, nil
	}
	return "", nil, textkeeper_errors.ErrNotFound
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func hashArgs(fields document.Fields) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
