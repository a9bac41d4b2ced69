package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"holoframe-backend/internal/model"
)

// GalleryCache stores the public photo list served for a share link.
type GalleryCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewGalleryCache(client *redisv9.Client, ttl time.Duration) *GalleryCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &GalleryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *GalleryCache) GetGallery(ctx context.Context, link string) ([]model.Photo, bool, error) {
	raw, err := c.client.Get(ctx, c.galleryKey(link)).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get gallery failed: %w", err)
	}

	var photos []model.Photo
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached gallery failed: %w", err)
	}
	if photos == nil {
		photos = []model.Photo{}
	}
	return photos, true, nil
}

func (c *GalleryCache) SetGallery(ctx context.Context, link string, photos []model.Photo) error {
	payload, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("marshal gallery cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.galleryKey(link), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set gallery failed: %w", err)
	}
	return nil
}

func (c *GalleryCache) DeleteGallery(ctx context.Context, link string) error {
	if err := c.client.Del(ctx, c.galleryKey(link)).Err(); err != nil {
		return fmt.Errorf("redis delete gallery failed: %w", err)
	}
	return nil
}

func (c *GalleryCache) galleryKey(link string) string {
	return "holoframe:gallery:" + link
}
