package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"event-booking-api/auth"
	"event-booking-api/database"
	"event-booking-api/model"
)

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.keys...)
}

type fixture struct {
	store     *database.Store
	tokens    *auth.TokenService
	publisher *recordingPublisher
	accounts  *Accounts
	catalog   *Catalog
	ledger    *Ledger
	payments  *Payments
	admin     *Admin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := database.NewMemoryStore()
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	publisher := &recordingPublisher{}
	log := zerolog.Nop()

	return &fixture{
		store:     store,
		tokens:    tokens,
		publisher: publisher,
		accounts:  NewAccounts(store.Users, auth.NewPasswordHasher(bcrypt.MinCost), tokens, publisher, log),
		catalog:   NewCatalog(store.Events, nil, log),
		ledger:    NewLedger(store, publisher, log),
		payments:  NewPayments(store, publisher, log),
		admin:     NewAdmin(store),
	}
}

func (f *fixture) signup(t *testing.T, name, email string) *model.UserData {
	t.Helper()
	res, err := f.accounts.Signup(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return &res.User
}

func (f *fixture) event(t *testing.T, title string, price float64, date time.Time) *model.Event {
	t.Helper()
	e, err := f.catalog.Create(context.Background(), EventInput{Title: title, Date: date, Price: price})
	require.NoError(t, err)
	return e
}
