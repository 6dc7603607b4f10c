package service

import (
	"errors"
	"time"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/repository"
	"ai-worker-console/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Me(userID string) (*model.User, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type authService struct {
	userRepo repository.Store[model.User]
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.Store[model.User], tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := findUserByEmail(s.userRepo, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive() {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Record the login
	now := time.Now()
	user, err = s.userRepo.Update(user.ID, func(u *model.User) error {
		u.LastLoginAt = &now
		return nil
	})
	if err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Generate JWT token
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, User: user}, nil
}

func (s *authService) Me(userID string) (*model.User, error) {
	user, err := s.userRepo.Get(userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}
