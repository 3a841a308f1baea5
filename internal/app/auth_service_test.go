package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/mail"
	"kekambas-blog/internal/model"
	"kekambas-blog/internal/repository"
)

type fakeUserStore struct {
	users  map[string]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}, nextID: 1}
}

func (s *fakeUserStore) Create(user *model.User) error {
	if _, exists := s.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeMailQueue struct {
	published []mail.WelcomeEmail
	err       error
}

func (q *fakeMailQueue) Publish(_ context.Context, msg mail.WelcomeEmail) error {
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, msg)
	return nil
}

func TestAuthService_Register(t *testing.T) {
	store := newFakeUserStore()
	queue := &fakeMailQueue{}
	svc := NewAuthService(store, queue, logger.Nop())

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "A@X.com",
		Password: "password1",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)

	// Password must never be stored in plaintext.
	assert.NotEqual(t, "password1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password1")))

	// Exactly one welcome email, addressed to the supplied address.
	require.Len(t, queue.published, 1)
	assert.Equal(t, "a@x.com", queue.published[0].To)
	assert.Equal(t, "alice", queue.published[0].Username)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	queue := &fakeMailQueue{}
	svc := NewAuthService(store, queue, logger.Nop())

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "b@y.com", Password: "password2",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)

	// The rejected registration writes nothing and emails nobody.
	assert.Len(t, store.users, 1)
	assert.Len(t, queue.published, 1)
	assert.Equal(t, "a@x.com", store.users["alice"].Email)
}

func TestAuthService_RegisterSucceedsWhenEnqueueFails(t *testing.T) {
	store := newFakeUserStore()
	queue := &fakeMailQueue{err: errors.New("broker down")}
	svc := NewAuthService(store, queue, logger.Nop())

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "password1",
	})
	require.NoError(t, err)

	// The user row stays committed even though the notification was lost.
	stored, err := store.GetByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestAuthService_RegisterInvalidInput(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), &fakeMailQueue{}, logger.Nop())

	cases := []RegisterInput{
		{Username: "", Email: "a@x.com", Password: "password1"},
		{Username: "alice", Email: "", Password: "password1"},
		{Username: "alice", Email: "a@x.com", Password: ""},
		{Username: "alice", Email: "a@x.com", Password: "short"},
	}
	for _, input := range cases {
		_, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, &fakeMailQueue{}, logger.Nop())

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "password1",
	})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Wrong password and unknown username are indistinguishable.
	_, wrongPass := svc.Login(LoginInput{Username: "alice", Password: "password2"})
	_, unknown := svc.Login(LoginInput{Username: "bob", Password: "password1"})
	assert.ErrorIs(t, wrongPass, ErrInvalidCredential)
	assert.ErrorIs(t, unknown, ErrInvalidCredential)
	assert.Equal(t, wrongPass, unknown)
}

func TestAuthService_GetUserByID(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, &fakeMailQueue{}, logger.Nop())

	created, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "password1",
	})
	require.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	missing, err := svc.GetUserByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.GetUserByID(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
