package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initializes the Redis connection. The server keeps working
// without Redis; callers must gate cache use on IsRedisAvailable.
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

const (
	PlatformsCacheKey  = "platforms:all"
	ReviewsCachePrefix = "reviews:game:" // reviews:game:123
	RateLimitPrefix    = "ratelimit:"    // ratelimit:login:1.2.3.4
)

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves value from cache
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes key from cache
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// ==================== PLATFORM CACHING ====================

// Platforms are static reference data; cache them for an hour.

func GetPlatforms(dest interface{}) error {
	return Get(PlatformsCacheKey, dest)
}

func SetPlatforms(platforms interface{}) error {
	return Set(PlatformsCacheKey, platforms, time.Hour)
}

// ==================== REVIEWS CACHING ====================

func GetReviews(gameID uint, dest interface{}) error {
	return Get(fmt.Sprintf("%s%d", ReviewsCachePrefix, gameID), dest)
}

func SetReviews(gameID uint, reviews interface{}) error {
	return Set(fmt.Sprintf("%s%d", ReviewsCachePrefix, gameID), reviews, 10*time.Minute)
}

func InvalidateReviews(gameID uint) error {
	return Delete(fmt.Sprintf("%s%d", ReviewsCachePrefix, gameID))
}

// ==================== RATE LIMITING ====================

// CheckRateLimit implements a fixed-window counter keyed by an arbitrary
// string (login endpoint keys by client IP). Allows when Redis is down.
func CheckRateLimit(key string, maxRequests int, window time.Duration) (bool, error) {
	if !IsRedisAvailable() {
		return true, nil
	}

	fullKey := RateLimitPrefix + key
	count, err := RedisClient.Get(ctx, fullKey).Int()
	if err == redis.Nil {
		if err := RedisClient.Set(ctx, fullKey, 1, window).Err(); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if count >= maxRequests {
		return false, nil
	}
	if _, err := RedisClient.Incr(ctx, fullKey).Result(); err != nil {
		return false, err
	}
	return true, nil
}
