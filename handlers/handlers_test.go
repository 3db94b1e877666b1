package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"event-booking-api/auth"
	"event-booking-api/config"
	"event-booking-api/database"
	"event-booking-api/events"
	"event-booking-api/handlers"
	"event-booking-api/router"
	"event-booking-api/services"
)

type Test struct {
	description  string
	method       string
	route        string
	bodyinput    []byte
	token        string
	expectedCode int
}

type testApp struct {
	app      *fiber.App
	store    *database.Store
	tokens   *auth.TokenService
	accounts *services.Accounts
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		ServiceName:      "event-booking-api",
		FrontendURL:      "http://localhost:3000",
		CORSOriginSuffix: ".vercel.app",
	}
	log := zerolog.Nop()
	store := database.NewMemoryStore()
	tokens, err := auth.NewTokenService("handlers-test-secret", time.Hour)
	require.NoError(t, err)
	publisher := events.NopPublisher{}

	accounts := services.NewAccounts(store.Users, auth.NewPasswordHasher(bcrypt.MinCost), tokens, publisher, log)
	svc := handlers.Services{
		Accounts: accounts,
		Catalog:  services.NewCatalog(store.Events, nil, log),
		Ledger:   services.NewLedger(store, publisher, log),
		Payments: services.NewPayments(store, publisher, log),
		Admin:    services.NewAdmin(store),
	}

	app := router.NewApp(cfg, log)
	router.SetupRoutes(app, handlers.New(svc, store, cfg.ServiceName, log), auth.NewGuard(tokens))

	return &testApp{app: app, store: store, tokens: tokens, accounts: accounts}
}

func (a *testApp) do(t *testing.T, method, route string, body []byte, token string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, route, bytes.NewReader(body))
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func (a *testApp) run(t *testing.T, tests []Test) {
	t.Helper()
	for _, test := range tests {
		code, body := a.do(t, test.method, test.route, test.bodyinput, test.token)
		assert.Equalf(t, test.expectedCode, code, "%s: %s", test.description, body)
	}
}

// userToken signs up a regular user and returns its token.
func (a *testApp) userToken(t *testing.T, name, email string) string {
	t.Helper()
	res, err := a.accounts.Signup(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return res.Token
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	admin, err := a.accounts.EnsureAdmin(context.Background(), "admin@x.com", "admin-pass")
	require.NoError(t, err)
	token, err := a.tokens.IssueDefault(auth.Identity{Id: admin.Id.Hex(), Email: admin.Email, Role: admin.Role})
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoErrorf(t, json.Unmarshal(data, v), "body: %s", data)
}

func jsonBody(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

