package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contacts/models"
	"github.com/redis/go-redis/v9"
)

const (
	userCachePrefix = "user:"
	userCacheTTL    = 15 * time.Minute
)

// cachedUser is the Redis representation of a user. Unlike the API form of
// [models.User] it keeps every column.
type cachedUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Avatar       string    `json:"avatar"`
	RefreshToken *string   `json:"refresh_token,omitempty"`
	Confirmed    bool      `json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCached(u models.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		RefreshToken: u.RefreshToken,
		Confirmed:    u.Confirmed,
		CreatedAt:    u.CreatedAt,
	}
}

func (c cachedUser) user() models.User {
	return models.User{
		ID:           c.ID,
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Avatar:       c.Avatar,
		RefreshToken: c.RefreshToken,
		Confirmed:    c.Confirmed,
		CreatedAt:    c.CreatedAt,
	}
}

// redisUserCache stores users under "user:<email>". A nil client turns every
// call into a miss, so callers never need to check whether Redis is
// configured.
type redisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache returns a [UserCache] backed by client, which may be nil.
func NewUserCache(client *redis.Client) UserCache {
	return &redisUserCache{client: client, ttl: userCacheTTL}
}

func userCacheKey(email string) string {
	return userCachePrefix + email
}

// Get returns [ErrCacheMiss] when the user is not cached.
func (c *redisUserCache) Get(ctx context.Context, email string) (models.User, error) {
	if c.client == nil {
		return models.User{}, ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, userCacheKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.User{}, ErrCacheMiss
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user cache get: %w", err)
	}

	var cu cachedUser
	if err = json.Unmarshal(raw, &cu); err != nil {
		return models.User{}, fmt.Errorf("user cache decode: %w", err)
	}

	return cu.user(), nil
}

func (c *redisUserCache) Set(ctx context.Context, user models.User) error {
	if c.client == nil {
		return nil
	}

	raw, err := json.Marshal(toCached(user))
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	if err = c.client.Set(ctx, userCacheKey(user.Email), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("user cache set: %w", err)
	}

	return nil
}

func (c *redisUserCache) Delete(ctx context.Context, email string) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, userCacheKey(email)).Err(); err != nil {
		return fmt.Errorf("user cache delete: %w", err)
	}

	return nil
}
