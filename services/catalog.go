package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/cache"
	"event-booking-api/database"
	"event-booking-api/errors"
	"event-booking-api/model"
)

type Catalog struct {
	events database.EventRepository
	cache  cache.EventCache
	log    zerolog.Logger
	now    func() time.Time
}

func NewCatalog(events database.EventRepository, eventCache cache.EventCache, log zerolog.Logger) *Catalog {
	if eventCache == nil {
		eventCache = cache.NopEventCache{}
	}
	return &Catalog{
		events: events,
		cache:  eventCache,
		log:    log.With().Str("component", "catalog").Logger(),
		now:    time.Now,
	}
}

type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Price       float64
}

func (c *Catalog) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	now := c.now().UTC()
	event := &model.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date.UTC(),
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.events.Create(ctx, event); err != nil {
		return nil, errors.Internal("cannot create event", err)
	}
	c.invalidate(ctx)
	return event, nil
}

func (c *Catalog) Get(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	event, err := c.events.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrEventNotFound, "cannot read event")
	}
	return event, nil
}

// List returns all events by ascending date, served from the cache when it holds a copy.
// The cache generation is read before the store so a concurrent mutation retires the
// listing this call writes back.
func (c *Catalog) List(ctx context.Context) ([]model.Event, error) {
	gen, err := c.cache.Generation(ctx)
	cacheUp := err == nil
	if err != nil {
		c.log.Warn().Err(err).Msg("event cache generation read failed")
	}

	if cacheUp {
		cached, ok, err := c.cache.GetEvents(ctx, gen)
		if err != nil {
			c.log.Warn().Err(err).Msg("event cache read failed")
		}
		if ok {
			return cached, nil
		}
	}

	events, err := c.events.List(ctx)
	if err != nil {
		return nil, errors.Internal("cannot list events", err)
	}
	if cacheUp {
		if err := c.cache.SetEvents(ctx, gen, events); err != nil {
			c.log.Warn().Err(err).Msg("event cache write failed")
		}
	}
	return events, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (c *Catalog) Update(ctx context.Context, id primitive.ObjectID, update model.EventUpdate) (*model.Event, error) {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		update.Description = &description
	}
	if update.Date != nil {
		date := update.Date.UTC()
		update.Date = &date
	}

	event, err := c.events.Update(ctx, id, update)
	if err != nil {
		return nil, storeError(err, ErrEventNotFound, "cannot update event")
	}
	c.invalidate(ctx)
	return event, nil
}

// Delete removes the event. Bookings that reference it are kept.
func (c *Catalog) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := c.events.Delete(ctx, id); err != nil {
		return storeError(err, ErrEventNotFound, "cannot delete event")
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) invalidate(ctx context.Context) {
	if err := c.cache.Invalidate(ctx); err != nil {
		c.log.Warn().Err(err).Msg("event cache invalidation failed")
	}
}
