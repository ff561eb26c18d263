// Package auth authenticates credentials and maintains session identities.
// Passwords are stored as bcrypt hashes; sessions are opaque tokens resolved
// through the sessions cache.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fakebook/shared"
	"fakebook/storage/models"
)

// UserStore is the slice of the persistence layer the service needs.
// *db.Queries satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Sessions is the session token store. Implemented by cache.SessionsCache.
type Sessions interface {
	Set(ctx context.Context, token string, userID int64) error
	Get(ctx context.Context, token string) (int64, bool, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	store    UserStore
	sessions Sessions
}

func NewService(store UserStore, sessions Sessions) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
	}
}

// Register creates a user with a bcrypt-hashed password. A taken username
// fails with shared.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, shared.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.store.CreateUser(ctx, username, string(hash))
	if err != nil {
		return models.User{}, err
	}

	log.Infof("Registered user %q (id=%d)", username, user.ID)
	return user, nil
}

// Login checks the credentials and, on success, opens a session and returns
// its token. Unknown usernames and wrong passwords are indistinguishable to
// the caller: both fail with shared.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (string, models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", models.User{}, shared.ErrUnauthorized
		}
		return "", models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", models.User{}, shared.ErrUnauthorized
	}

	token := uuid.NewString()
	if err := s.sessions.Set(ctx, token, user.ID); err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Resolve maps a session token back to the authenticated user id. Missing or
// expired sessions fail with shared.ErrUnauthorized.
func (s *Service) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, shared.ErrUnauthorized
	}
	userID, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, shared.ErrUnauthorized
	}
	return userID, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
