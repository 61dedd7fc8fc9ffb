package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
)

// UserService defines the business logic for accounts and credentials
type UserService struct {
	repo repository.UserDB
}

// NewUserService creates a new UserService instance
func NewUserService(repo repository.UserDB) *UserService {
	return &UserService{
		repo: repo,
	}
}

// Register validates the input, hashes the password and stores a new
// user. Email uniqueness is not enforced; duplicate accounts are
// possible and the login lookup takes the oldest match.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - missing username, email or password", auctionerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.InsertUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to create user %s: %w", email, err)
	}
	user.ID = id

	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
// Unknown email and wrong password collapse into the same error so the
// response cannot reveal which one was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - missing email or password", auctionerrors.ErrInvalidInput)
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
		}
		return models.User{}, fmt.Errorf("service: failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	return user, nil
}
