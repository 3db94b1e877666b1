package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"event-booking-api/auth"
	"event-booking-api/config"
	"event-booking-api/errors"
	"event-booking-api/handlers"
	"event-booking-api/middleware"
	"event-booking-api/model"
)

// NewApp builds the fiber app with the middleware every route shares.
func NewApp(cfg *config.Config, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		ErrorHandler:          errors.Handler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(cfg)))

	return app
}

// corsConfig allows the configured frontend plus any https origin ending in the preview suffix.
func corsConfig(cfg *config.Config) cors.Config {
	frontend := strings.ToLower(strings.TrimRight(cfg.FrontendURL, "/"))
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	suffix := cfg.CORSOriginSuffix

	return cors.Config{
		// fiber lowercases the Origin header before calling this
		AllowOriginsFunc: func(origin string) bool {
			if origin == frontend {
				return true
			}
			return suffix != "" && strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, suffix)
		},
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, guard *auth.Guard) {
	authorize := middleware.Authorize(guard)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Get("/ping", h.Ping)

	//Auth
	login := api.Group("/auth")
	login.Post("/signup", h.Signup)
	login.Post("/login", h.Login)

	//Users
	users := api.Group("/users", authorize)
	users.Get("/me", h.GetProfile)
	users.Put("/me", h.UpdateProfile)
	users.Get("/", adminOnly, h.ListUsers)
	users.Patch("/:id/role", adminOnly, h.SetUserRole)
	users.Delete("/:id", adminOnly, h.DeleteUser)

	//Events
	events := api.Group("/events")
	events.Get("/", h.ListEvents)
	events.Get("/:id", h.GetEvent)
	events.Post("/", authorize, adminOnly, h.CreateEvent)
	events.Put("/:id", authorize, adminOnly, h.UpdateEvent)
	events.Delete("/:id", authorize, adminOnly, h.DeleteEvent)

	//Bookings
	bookings := api.Group("/bookings", authorize)
	bookings.Post("/:eventId", h.CreateBooking)
	bookings.Get("/", h.ListBookings)
	bookings.Delete("/:bookingId", h.CancelBooking)

	//Payments
	payments := api.Group("/payments", authorize)
	payments.Post("/:bookingId/pay", h.Pay)
	payments.Get("/:bookingId", h.ListPayments)

	//Admin
	admin := api.Group("/admin", authorize, adminOnly)
	admin.Get("/stats", h.Stats)
}
