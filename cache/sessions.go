package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sessions:"

// SessionsCache stores opaque session tokens in redis. Expiry is handled by
// the key TTL; there is no sweeper.
type SessionsCache struct {
	redisClient *redis.Client
	expiration  time.Duration
}

func NewSessionsCache(options *redis.Options, expiration time.Duration) *SessionsCache {
	return &SessionsCache{
		redisClient: redis.NewClient(options),
		expiration:  expiration,
	}
}

func (c *SessionsCache) Set(ctx context.Context, token string, userID int64) error {
	return c.redisClient.Set(
		ctx,
		sessionKeyPrefix+token,
		strconv.FormatInt(userID, 10),
		c.expiration,
	).Err()
}

// Get resolves a session token to a user id. The second return value reports
// whether the session exists.
func (c *SessionsCache) Get(ctx context.Context, token string) (int64, bool, error) {
	val, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("malformed session value: %w", err)
	}
	return userID, true, nil
}

func (c *SessionsCache) Delete(ctx context.Context, token string) error {
	return c.redisClient.Del(ctx, sessionKeyPrefix+token).Err()
}
