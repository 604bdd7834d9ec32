// Package redisstore keeps session fields in a Redis hash so several client
// processes on one host or fleet share a single login.
package redisstore

import (
	"context"
	"time"

	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Store = (*Store)(nil)

type Store struct {
	redis redis.UniversalClient
	key   string
	ttl   time.Duration
}

type StoreOption func(*Store)

// WithTTL expires the whole session hash after ttl of inactivity. Zero disables expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func New(client redis.UniversalClient, key string, options ...StoreOption) *Store {
	s := &Store{redis: client, key: key}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, field string) (string, bool, error) {
	value, err := s.redis.HGet(ctx, s.key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, field, value string) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, field, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	return err
}

func (s *Store) Delete(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return s.redis.HDel(ctx, s.key, fields...).Err()
}
