package repository

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// AuthRepository defines the authentication endpoints.
type AuthRepository interface {
	// Login exchanges credentials for an access token. The refresh token
	// arrives as an HTTP-only cookie handled by the transport's cookie jar.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout invalidates the server-side session. Best effort; local state
	// is cleared regardless.
	Logout(ctx context.Context) error
	// Me returns the current user with its shop profile.
	Me(ctx context.Context) (*entity.User, error)
}
