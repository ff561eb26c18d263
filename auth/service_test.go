package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fakebook/shared"
	"fakebook/storage/models"
)

type memoryUserStore struct {
	nextID int64
	users  map[string]models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]models.User)}
}

func (s *memoryUserStore) CreateUser(_ context.Context, username, passwordHash string) (models.User, error) {
	if _, ok := s.users[username]; ok {
		return models.User{}, shared.ErrAlreadyExists
	}
	s.nextID++
	user := models.User{ID: s.nextID, Username: username, PasswordHash: passwordHash}
	s.users[username] = user
	return user, nil
}

func (s *memoryUserStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return models.User{}, shared.ErrNotFound
	}
	return user, nil
}

type memorySessions struct {
	sessions map[string]int64
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]int64)}
}

func (s *memorySessions) Set(_ context.Context, token string, userID int64) error {
	s.sessions[token] = userID
	return nil
}

func (s *memorySessions) Get(_ context.Context, token string) (int64, bool, error) {
	userID, ok := s.sessions[token]
	return userID, ok, nil
}

func (s *memorySessions) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestService() (*Service, *memoryUserStore) {
	store := newMemoryUserStore()
	return NewService(store, newMemorySessions()), store
}

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	user, err := service.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	stored := store.users["alice"]
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestRegisterEmptyCredentials(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, err := service.Register(ctx, "", "s3cret")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = service.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, err := service.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = service.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestLoginAndResolve(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	registered, err := service.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	token, user, err := service.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	userID, err := service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, err := service.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, _, err = service.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, _, err := service.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestResolveInvalidToken(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, err := service.Resolve(ctx, "")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = service.Resolve(ctx, "not-a-session")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, err := service.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	token, _, err := service.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, token))

	_, err = service.Resolve(ctx, token)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
