package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

// Cache stores rendered public video details in Redis until their presigned
// playback URL expires.
type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetPublicDetail(ctx context.Context, id uuid.UUID) (*port.PublicVideoDetail, error) {
	log.Printf("getting entry in cache for video #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String())).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var detail port.PublicVideoDetail
	if err := json.Unmarshal([]byte(val), &detail); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	return &detail, nil
}

func (c *Cache) SetPublicDetail(ctx context.Context, id uuid.UUID, detail *port.PublicVideoDetail) error {
	log.Printf("creating entry in cache for video #%s, valid until %s...", id, detail.ValidUntil.Format(time.RFC1123))

	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	if err := c.client.Set(ctx, getCacheKey(id.String()), data, time.Until(detail.ValidUntil)).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *Cache) DeletePublicDetail(ctx context.Context, id uuid.UUID) error {
	log.Printf("deleting entry in cache for video #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string) string {
	return "video:" + id
}
