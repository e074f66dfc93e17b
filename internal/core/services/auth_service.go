package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
	"github.com/grovefund/fund_portal_app/internal/utils"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// two cases are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// authService verifies credentials and issues access tokens.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and returns a signed access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, passwordHash, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.DeletedAt != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, passwordHash) {
		logger.Info("Login rejected", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtExpiry),
		User:      dto.ToUserResponse(user),
	}, nil
}
