package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"event-booking-api/model"
)

const (
	generationKey = "events:gen"
	eventsPrefix  = "events:all:"
	defaultTTL    = time.Minute
)

// EventCache holds the public event listing between catalog mutations. Listings are stored
// per generation; Invalidate moves to the next generation, so a listing read from the store
// before a mutation can only be written under a generation nobody reads any more.
type EventCache interface {
	Generation(ctx context.Context) (int64, error)
	// GetEvents reports ok=false on a miss.
	GetEvents(ctx context.Context, gen int64) (events []model.Event, ok bool, err error)
	SetEvents(ctx context.Context, gen int64, events []model.Event) error
	Invalidate(ctx context.Context) error
}

type RedisEventCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEventCache falls back to a one minute TTL so retired generations always expire.
func NewRedisEventCache(client *redis.Client, ttl time.Duration) *RedisEventCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisEventCache{client: client, ttl: ttl}
}

func eventsKey(gen int64) string {
	return eventsPrefix + strconv.FormatInt(gen, 10)
}

// Connect opens a client for addr and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis is not available: %w", err)
	}
	return client, nil
}

// Generation is 0 until the first invalidation.
func (c *RedisEventCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisEventCache) GetEvents(ctx context.Context, gen int64) ([]model.Event, bool, error) {
	data, err := c.client.Get(ctx, eventsKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, err
	}
	return events, true, nil
}

func (c *RedisEventCache) SetEvents(ctx context.Context, gen int64, events []model.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, eventsKey(gen), data, c.ttl).Err()
}

func (c *RedisEventCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return err
	}
	return c.client.Del(ctx, eventsKey(gen-1)).Err()
}

// NopEventCache never stores anything.
type NopEventCache struct{}

func (NopEventCache) Generation(context.Context) (int64, error)                     { return 0, nil }
func (NopEventCache) GetEvents(context.Context, int64) ([]model.Event, bool, error) { return nil, false, nil }
func (NopEventCache) SetEvents(context.Context, int64, []model.Event) error         { return nil }
func (NopEventCache) Invalidate(context.Context) error                              { return nil }
