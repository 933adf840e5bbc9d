package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/sanitize"
)

// TokenIssuer signs bearer tokens for users
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenRevoker invalidates a bearer token before its expiry
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// AuthService defines the interface for account registration and sign-in
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authServiceImpl struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	revoker    TokenRevoker
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, revoker TokenRevoker, bcryptCost int, logger *zap.Logger) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		revoker:    revoker,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name := sanitize.Text(req.Name)
	if name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Name is required", "")
	}

	role := domain.RoleEmployee
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid role", err.Error())
		}
		role = parsed
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "User already exists", "")
	} else if !isNotFound(err) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check email", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration can win the race past the lookup above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "User already exists", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.authResponse(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewAppError(response.ErrCodeInvalidCredentials, "Invalid credentials", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeInvalidCredentials, "Invalid credentials", "")
	}

	return s.authResponse(user)
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, token); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke token", err.Error())
	}
	return nil
}

func (s *authServiceImpl) authResponse(user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
