package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/model"
)

func newTestCache(t *testing.T) (*RedisEventCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisEventCache(client, time.Minute), mr
}

func TestRedisEventCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	_, ok, err := c.GetEvents(ctx, gen)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	event := model.Event{
		Id:    primitive.NewObjectID(),
		Title: "Go meetup",
		Date:  time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC),
		Price: 5,
	}
	require.NoError(t, c.SetEvents(ctx, gen, []model.Event{event}))

	events, ok, err := c.GetEvents(ctx, gen)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, events, 1)
	assert.Equal(t, event.Id, events[0].Id)
	assert.Equal(t, "Go meetup", events[0].Title)
	assert.True(t, event.Date.Equal(events[0].Date))
}

func TestRedisEventCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetEvents(ctx, 0, []model.Event{}))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists("events:all:0"), "retired listing is dropped")

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	_, ok, err := c.GetEvents(ctx, gen)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisEventCacheLateWriteIsInvisible(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	// a reader picks its generation, then a mutation lands before it writes back
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.SetEvents(ctx, gen, []model.Event{{Title: "stale"}}))

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, gen, current)

	_, ok, err := c.GetEvents(ctx, current)
	require.NoError(t, err)
	assert.False(t, ok, "stale listing must not be served")
}

func TestRedisEventCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetEvents(ctx, 0, []model.Event{{Title: "soon gone"}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetEvents(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisEventCacheDefaultsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisEventCache(client, 0)

	require.NoError(t, c.SetEvents(context.Background(), 3, []model.Event{}))
	assert.Equal(t, time.Minute, mr.TTL("events:all:3"))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = client.Close()
}

func TestConnectUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = Connect(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
