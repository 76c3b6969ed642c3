package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps credential pairs in Redis so sessions survive restarts
// and can be shared by several instances. Entries expire with the refresh
// token, so abandoned sessions clean themselves up.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(username string) string {
	return sessionKeyPrefix + username
}

func (s *RedisStore) Get(ctx context.Context, username string) (Pair, bool, error) {
	val, err := s.client.Get(ctx, s.key(username)).Result()
	if err == redis.Nil {
		return Pair{}, false, nil
	}
	if err != nil {
		return Pair{}, false, err
	}
	var p Pair
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return Pair{}, false, err
	}
	return p, true, nil
}

func (s *RedisStore) Put(ctx context.Context, username string, p Pair) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(username), data, ttlFor(p)).Err()
}

// CompareAndSwap runs a WATCH transaction so two refreshes racing on the
// same username cannot both rotate the pair.
func (s *RedisStore) CompareAndSwap(ctx context.Context, username, oldRefresh string, p Pair) (bool, error) {
	key := s.key(username)
	swapped := false

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		var cur Pair
		if err := json.Unmarshal([]byte(val), &cur); err != nil {
			return err
		}
		if cur.RefreshToken != oldRefresh {
			return nil
		}
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttlFor(p))
			return nil
		})
		if err == nil {
			swapped = true
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// Lost the race; the other refresh rotated the pair first.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return swapped, nil
}

func (s *RedisStore) Delete(ctx context.Context, username string) error {
	return s.client.Del(ctx, s.key(username)).Err()
}

func ttlFor(p Pair) time.Duration {
	ttl := time.Until(p.RefreshTokenExpiration)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return ttl
}
