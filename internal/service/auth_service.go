package service

import (
	"context"
	"errors"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/jwt"
	"go-inventory-api/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*LoginResponse, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(s.secret, s.tokenTTL, user.ID, user.Email, user.FullName, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
