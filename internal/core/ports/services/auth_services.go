package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/dto"
)

// AuthSvcFacade verifies credentials and issues access tokens. Identity is
// otherwise delegated to the hosted provider; this service only covers the
// token boundary the API itself owns.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
