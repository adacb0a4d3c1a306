package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
)

// RedisStore persists session records as two keys per session id:
//
//	sess:<id>:token     — the opaque bearer credential
//	sess:<id>:identity  — the serialized identity JSON
//
// Both are written together and deleted together. A read that finds only one
// of the two treats the session as absent and clears the leftover.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sid string, rec ports.SessionRecord, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(sid), rec.Token, ttl)
	pipe.Set(ctx, identityKey(sid), rec.Identity, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, sid string) (ports.SessionRecord, error) {
	vals, err := s.client.MGet(ctx, tokenKey(sid), identityKey(sid)).Result()
	if err != nil {
		return ports.SessionRecord{}, fmt.Errorf("session find: %w", err)
	}

	token, tokenOK := vals[0].(string)
	identity, identityOK := vals[1].(string)
	if !tokenOK || !identityOK || token == "" || identity == "" {
		// One entry without the other is a broken session; clear both.
		_ = s.Delete(ctx, sid)
		return ports.SessionRecord{}, domain.ErrSessionNotFound
	}

	return ports.SessionRecord{Token: token, Identity: []byte(identity)}, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, tokenKey(sid), identityKey(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func tokenKey(sid string) string    { return "sess:" + sid + ":token" }
func identityKey(sid string) string { return "sess:" + sid + ":identity" }
