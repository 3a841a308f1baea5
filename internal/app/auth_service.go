package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/mail"
	"kekambas-blog/internal/model"
	"kekambas-blog/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already registered")
	ErrInvalidCredential = errors.New("incorrect username or password")
)

// UserStore is the persistence surface the auth flows need. The GORM
// repository satisfies it; tests use in-memory fakes.
type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

// WelcomeMailPublisher enqueues the registration notification.
type WelcomeMailPublisher interface {
	Publish(ctx context.Context, msg mail.WelcomeEmail) error
}

type AuthService struct {
	users     UserStore
	mailQueue WelcomeMailPublisher
	log       *logger.Logger
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

func NewAuthService(users UserStore, mailQueue WelcomeMailPublisher, log *logger.Logger) *AuthService {
	return &AuthService{
		users:     users,
		mailQueue: mailQueue,
		log:       log,
	}
}

// Register creates the user and enqueues the welcome email. The insert's
// unique-constraint violation is the duplicate-username signal; there is no
// read-before-write. The email is fire and forget: the user row stays
// committed even when the enqueue fails.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || password == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	welcome := mail.NewWelcomeEmail(user.Username, user.Email)
	if err := s.mailQueue.Publish(ctx, welcome); err != nil {
		s.log.Warnw("enqueue welcome email failed", "username", user.Username, "err", err)
	}

	s.log.Infow("user registered", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// Login verifies credentials. Unknown username and wrong password yield the
// same error so the caller cannot tell which field was wrong.
func (s *AuthService) Login(input LoginInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	s.log.Infow("user logged in", "username", user.Username, "user_id", user.ID)
	return user, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.users.GetByID(id)
}
