// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hfahrudin/apotek/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
//
// Layout per session ID:
//
//	session:data:{id}  : JSON session document, TTL-bound
//	session:csrf:{id}  : pending one-shot CSRF token
//	session:flash:{id} : pending one-shot flash message (JSON)
//
// The one-shot keys are consumed with GETDEL, making check-then-clear a
// single atomic operation per session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

/*
Load fetches and decodes the session document.

Description: Returns (nil, nil) for unknown or expired IDs so callers can
transparently start a fresh session.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Session: The hydrated session, or nil when absent
  - error: Decoding or connectivity errors
*/
func (store *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := store.client.Get(ctx, constants.RedisPrefixSession+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_session_load_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	session.ID = id
	return session, nil
}

/*
Save encodes and persists the session document, refreshing its TTL.

Parameters:
  - ctx: context.Context
  - session: *Session

Returns:
  - error: Encoding or storage failures
*/
func (store *RedisStore) Save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, constants.RedisPrefixSession+session.ID, raw, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Delete removes the session document together with its one-shot keys.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(ctx context.Context, id string) error {
	keys := []string{
		constants.RedisPrefixSession + id,
		constants.RedisPrefixCsrf + id,
		constants.RedisPrefixFlash + id,
	}

	if err := store.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

// # One-Shot CSRF Token

/*
SetCSRF stores the pending token, overwriting any prior pending token;
only one outstanding token per session.

Parameters:
  - ctx: context.Context
  - id: string
  - token: string

Returns:
  - error: Storage failures
*/
func (store *RedisStore) SetCSRF(ctx context.Context, id string, token string) error {
	if err := store.client.Set(ctx, constants.RedisPrefixCsrf+id, token, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_csrf_set_failed: %w", err)
	}
	return nil
}

/*
ConsumeCSRF atomically removes and returns the pending token.

Description: GETDEL makes the check-then-clear race-free per session: two
concurrent submissions can never both receive the token.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - string: The pending token, or "" when none is outstanding
  - error: Connectivity errors
*/
func (store *RedisStore) ConsumeCSRF(ctx context.Context, id string) (string, error) {
	token, err := store.client.GetDel(ctx, constants.RedisPrefixCsrf+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_csrf_consume_failed: %w", err)
	}
	return token, nil
}

// # One-Shot Flash Message

/*
SetFlash stores the pending flash message for the next page render.

Parameters:
  - ctx: context.Context
  - id: string
  - flash: Flash

Returns:
  - error: Encoding or storage failures
*/
func (store *RedisStore) SetFlash(ctx context.Context, id string, flash Flash) error {
	raw, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("redis_flash_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, constants.RedisPrefixFlash+id, raw, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_flash_set_failed: %w", err)
	}

	return nil
}

/*
PopFlash atomically removes and returns the pending flash.

Description: A flash is readable exactly once; refreshing the page after the
redirect renders without it.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Flash: The pending flash, or nil when absent
  - error: Decoding or connectivity errors
*/
func (store *RedisStore) PopFlash(ctx context.Context, id string) (*Flash, error) {
	raw, err := store.client.GetDel(ctx, constants.RedisPrefixFlash+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_flash_pop_failed: %w", err)
	}

	flash := &Flash{}
	if err := json.Unmarshal(raw, flash); err != nil {
		return nil, fmt.Errorf("redis_flash_decode_failed: %w", err)
	}

	return flash, nil
}
