package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/auth"
	"event-booking-api/errors"
	"event-booking-api/model"
)

const identityKey = "identity"

// Authorize verifies the bearer token and stores its claims for the handlers behind it.
func Authorize(guard *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := guard.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return errors.RaiseUnauthenticatedError(c, err.Error())
		}
		c.Locals(identityKey, claims)
		return c.Next()
	}
}

// RequireRole must run after Authorize.
func RequireRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.RequireRole(Identity(c), role); err != nil {
			return errors.RaisePermissionsError(c, err.Error())
		}
		return c.Next()
	}
}

// Identity returns the claims stored by Authorize, or nil on public routes.
func Identity(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(identityKey).(*auth.Claims)
	return claims
}

// UserID is the caller's id. A token whose id is not an object id is treated as
// unauthenticated.
func UserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims := Identity(c)
	if claims == nil {
		return primitive.NilObjectID, errors.New(errors.KindUnauthenticated, "authentication required")
	}
	id, err := primitive.ObjectIDFromHex(claims.Id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(errors.KindUnauthenticated, "authentication required", auth.ErrInvalidToken)
	}
	return id, nil
}
