package api

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// AuthRepository implements repository.AuthRepository against the API.
type AuthRepository struct {
	client *Client
}

// NewAuthRepository creates a new auth repository.
func NewAuthRepository(client *Client) repository.AuthRepository {
	return &AuthRepository{client: client}
}

// Login exchanges credentials for an access token. The refresh token is
// set by the server as an HTTP-only cookie and lands in the cookie jar.
func (r *AuthRepository) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	var out struct {
		Access string `json:"access"`
	}
	if err := r.client.post(ctx, "/auth/login/", payload, &out, nil); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", apperror.NewAuthError("Login returned no access token")
	}
	return out.Access, nil
}

// Logout invalidates the refresh cookie server-side.
func (r *AuthRepository) Logout(ctx context.Context) error {
	return r.client.post(ctx, "/auth/logout/", nil, nil, nil)
}

// Me returns the current user with its shop profile.
func (r *AuthRepository) Me(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := r.client.get(ctx, "/me/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
