package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eventpass/eventpass/internal/entity"

	"github.com/go-redis/redis/v8"
)

const catalogKey = "events:catalog"

// EventCache caches the event catalog. Misses and cache failures fall
// through to the database.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *EventCache) SetCatalog(ctx context.Context, events []*entity.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

func (c *EventCache) GetCatalog(ctx context.Context) ([]*entity.Event, error) {
	data, err := c.client.Get(ctx, catalogKey).Result()
	if err != nil {
		return nil, err
	}

	var events []*entity.Event
	err = json.Unmarshal([]byte(data), &events)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (c *EventCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
