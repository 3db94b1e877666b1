package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/errors"
	"event-booking-api/services"
	"event-booking-api/validation"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Accounts *services.Accounts
	Catalog  *services.Catalog
	Ledger   *services.Ledger
	Payments *services.Payments
	Admin    *services.Admin
}

type Handlers struct {
	svc         Services
	store       Pinger
	serviceName string
	log         zerolog.Logger
}

func New(svc Services, store Pinger, serviceName string, log zerolog.Logger) *Handlers {
	return &Handlers{svc: svc, store: store, serviceName: serviceName, log: log}
}

// fail writes err as a JSON error. Internal failures are logged with their cause, which is
// never sent to the client.
func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	if errors.KindOf(err) == errors.KindInternal {
		h.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return errors.Respond(c, err)
}

type normalizer interface {
	normalize()
}

// parseBody decodes the JSON body into dst and runs its validate tags.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errors.Wrap(errors.KindValidation, "invalid request body", err)
	}
	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}
	if err := validation.Struct(c.UserContext(), dst); err != nil {
		return errors.Wrap(errors.KindValidation, "validation failed", err)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, errors.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDate accepts RFC 3339 timestamps as well as the date and datetime-local values
// browsers send from form inputs.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrap(errors.KindValidation, "validation failed",
		fmt.Errorf("date: %s", validation.ErrInvalidFormat))
}
