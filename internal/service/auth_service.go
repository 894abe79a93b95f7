package service

import (
	"context"
	"errors"

	"sipblog/internal/models"
	"sipblog/internal/repository"
)

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
	UserByToken(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Register creates the user; role assignment and uniqueness live in the
// repository, duplicates come back as ErrEmailTaken/ErrUsernameTaken.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout tears the session down unconditionally: a token that is already
// gone is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	err := s.sessionRepo.Delete(ctx, token)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}
	return nil
}

func (s *authService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.sessionRepo.GetUserByToken(ctx, token)
}
