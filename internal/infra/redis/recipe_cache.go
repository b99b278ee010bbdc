package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RecipeCache stores finished recipe texts keyed by the normalized
// meal+products combination, so identical requests skip the model.
type RecipeCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewRecipeCache(client RedisClient, ttl time.Duration) *RecipeCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RecipeCache{client: client, ttl: ttl}
}

func (c *RecipeCache) key(cacheKey string) string {
	sum := sha256.Sum256([]byte(cacheKey))
	return "recipe_cache:" + hex.EncodeToString(sum[:16])
}

// Get returns the cached text and whether it was present.
func (c *RecipeCache) Get(ctx context.Context, cacheKey string) (string, bool, error) {
	text, err := c.client.Get(ctx, c.key(cacheKey))
	if err != nil {
		if IsNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return text, true, nil
}

func (c *RecipeCache) Set(ctx context.Context, cacheKey, text string) error {
	return c.client.Set(ctx, c.key(cacheKey), text, c.ttl)
}
