package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/ievms-go-api/internal/dto"
	"github.com/noah-isme/ievms-go-api/internal/models"
	"github.com/noah-isme/ievms-go-api/internal/repository"
	"github.com/noah-isme/ievms-go-api/internal/token"
)

// ErrEmailTaken indicates a registration attempt with an email already in use.
var ErrEmailTaken = errors.New("user with this email already exists")

// ErrInvalidCredentials indicates a failed login. It never reveals whether
// the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
}

type authService struct {
	users     repository.UserRepository
	tokens    *token.Manager
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     userRepo,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	// Friendly pre-check; the unique index on email is the real gate.
	if _, err := s.users.FindByEmail(ctx, payload.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: string(passwordHash),
		Role:         payload.Role,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AuthResponse{}, ErrEmailTaken
		}
		return dto.AuthResponse{}, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return dto.AuthResponse{
		Message: "User registered successfully.",
		User:    dto.NewUserResponse(user),
		Token:   signed,
	}, nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")

	return dto.AuthResponse{
		Message: "Login successful.",
		User:    dto.NewUserResponse(user),
		Token:   signed,
	}, nil
}
