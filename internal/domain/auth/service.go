package auth

import "context"

// AuthService defines credential login and token refresh.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	Logout(ctx context.Context, refreshToken string) error
}
