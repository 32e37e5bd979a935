package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/safaribooking/config"
	"github.com/redis/go-redis/v9"
)

// RedisSessions records which issued tokens are still live, so logging out
// takes effect before the token itself expires.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(cfg config.RedisConfig) *RedisSessions {
	return &RedisSessions{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

// NewRedisSessionsWithClient wraps an existing client.
func NewRedisSessionsWithClient(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

// Open registers a session for tokenID owned by userID. It fails if the id is already taken.
func (c *RedisSessions) Open(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	ok, err := c.client.SetNX(ctx, sessionKey(tokenID), userID, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s already exists", tokenID)
	}
	return nil
}

// Lookup returns the owning user id, or "" when the session is unknown or expired.
func (c *RedisSessions) Lookup(ctx context.Context, tokenID string) (string, error) {
	userID, err := c.client.Get(ctx, sessionKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

func (c *RedisSessions) Close(ctx context.Context, tokenID string) error {
	return c.client.Del(ctx, sessionKey(tokenID)).Err()
}

func (c *RedisSessions) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}
