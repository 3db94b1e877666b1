package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/auth"
	"event-booking-api/database"
	"event-booking-api/errors"
	"event-booking-api/events"
	"event-booking-api/model"
)

type TokenIssuer interface {
	IssueDefault(identity auth.Identity) (string, error)
}

// Accounts is the credential store: signup, login, profiles and role management.
type Accounts struct {
	users     database.UserRepository
	hasher    *auth.PasswordHasher
	tokens    TokenIssuer
	publisher events.Publisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewAccounts(users database.UserRepository, hasher *auth.PasswordHasher, tokens TokenIssuer,
	publisher events.Publisher, log zerolog.Logger) *Accounts {
	return &Accounts{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		log:       log.With().Str("component", "accounts").Logger(),
		now:       time.Now,
	}
}

type AuthResult struct {
	User  model.UserData
	Token string
}

type ProfileUpdate struct {
	Name     *string
	Password *string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Accounts) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	user, err := a.create(ctx, strings.TrimSpace(name), NormalizeEmail(email), password, model.RoleUser)
	if err != nil {
		return nil, err
	}

	publish(ctx, a.publisher, a.log, events.UserRegistered, events.UserPayload{
		UserID: user.Id.Hex(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	return a.authenticated(user)
}

func (a *Accounts) create(ctx context.Context, name, email, password string, role model.Role) (*model.UserData, error) {
	hash, err := a.hash(password)
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	user := &model.UserData{
		Name:           name,
		Email:          email,
		HashedPassword: hash,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, errors.Internal("cannot create user", err)
	}
	return user, nil
}

func (a *Accounts) hash(password string) (string, error) {
	hash, err := a.hasher.Hash(password)
	switch {
	case stderrors.Is(err, auth.ErrPasswordTooLong):
		return "", errors.Wrap(errors.KindValidation, "validation failed", err)
	case err != nil:
		return "", errors.Internal("cannot store credentials", err)
	}
	return hash, nil
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := a.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "cannot read user")
	}
	if !a.hasher.Matches(user.HashedPassword, password) {
		return nil, ErrBadCredentials
	}
	return a.authenticated(user)
}

func (a *Accounts) authenticated(user *model.UserData) (*AuthResult, error) {
	token, err := a.tokens.IssueDefault(auth.Identity{Id: user.Id.Hex(), Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, errors.Internal("cannot issue token", err)
	}
	return &AuthResult{User: *user, Token: token}, nil
}

func (a *Accounts) Profile(ctx context.Context, id primitive.ObjectID) (*model.UserData, error) {
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "cannot read user")
	}
	return user, nil
}

func (a *Accounts) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*model.UserData, error) {
	var change model.UserUpdate
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		change.Name = &name
	}
	if update.Password != nil {
		hash, err := a.hash(*update.Password)
		if err != nil {
			return nil, err
		}
		change.HashedPassword = &hash
	}

	user, err := a.users.Update(ctx, id, change)
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "cannot update user")
	}
	return user, nil
}

// SetRole changes a user's role. Tokens issued before the change keep the old role until
// they expire.
func (a *Accounts) SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*model.UserData, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := a.users.Update(ctx, id, model.UserUpdate{Role: &role})
	if err != nil {
		return nil, storeError(err, ErrUserNotFound, "cannot update user")
	}

	publish(ctx, a.publisher, a.log, events.UserRoleChanged, events.UserPayload{
		UserID: user.Id.Hex(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	return user, nil
}

func (a *Accounts) List(ctx context.Context) ([]model.UserData, error) {
	users, err := a.users.List(ctx)
	if err != nil {
		return nil, errors.Internal("cannot list users", err)
	}
	return users, nil
}

func (a *Accounts) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := a.users.Delete(ctx, id); err != nil {
		return storeError(err, ErrUserNotFound, "cannot delete user")
	}
	return nil
}

// EnsureAdmin makes sure an admin account exists for email. An existing account is
// promoted; its password is left as is.
func (a *Accounts) EnsureAdmin(ctx context.Context, email, password string) (*model.UserData, error) {
	email = NormalizeEmail(email)

	existing, err := a.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			return existing, nil
		}
		return a.SetRole(ctx, existing.Id, model.RoleAdmin)
	case !stderrors.Is(err, database.ErrNotFound):
		return nil, errors.Internal("cannot read user", err)
	}

	user, err := a.create(ctx, "Administrator", email, password, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("email", email).Msg("admin account created")
	return user, nil
}
