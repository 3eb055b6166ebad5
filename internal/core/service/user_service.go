package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/warehouse-suite/user-service/internal/core/domain"
	"github.com/warehouse-suite/user-service/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// UserService implements registration, login and lookups over a single
// user repository.
type UserService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &UserService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new account. The password arrives in plaintext and is
// stored only as a bcrypt hash. Returns the created user and a signed token.
func (s *UserService) Register(ctx context.Context, user domain.User) (*domain.User, string, error) {
	if err := user.Validate(); err != nil {
		return nil, "", err
	}
	if user.Role == "" {
		user.Role = domain.DefaultRole
	}

	_, err := s.repo.FindByUsername(ctx, user.Username)
	switch {
	case err == nil:
		return nil, "", domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, &user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(created.Code)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login authenticates by username and password. An unknown username and a
// wrong password both exit through the same ErrInvalidCredentials return so
// callers cannot tell which check failed.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	ok := err == nil &&
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
	if !ok {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.Code)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	return s.repo.FindByCode(ctx, code)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListAll(ctx)
}

// generateToken issues an HS256 JWT carrying the user code. The expiry claim
// is always set; tokens must not outlive the configured TTL.
func (s *UserService) generateToken(code string) (string, error) {
	claims := jwt.MapClaims{
		"id":  code,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
