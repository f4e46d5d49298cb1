package service

import (
	"context"
	"log"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/internal/infrastructure/session"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// AuthService handles login, logout and session bootstrap. Login primes
// the shop cache from the profile endpoint so billing and receipts work
// offline immediately after signing in.
type AuthService struct {
	authRepo     repository.AuthRepository
	tokens       *session.TokenStore
	shopCache    repository.ShopCache
	productCache repository.ProductCache
}

// NewAuthService creates a new auth service.
func NewAuthService(
	authRepo repository.AuthRepository,
	tokens *session.TokenStore,
	shopCache repository.ShopCache,
	productCache repository.ProductCache,
) *AuthService {
	return &AuthService{
		authRepo:     authRepo,
		tokens:       tokens,
		shopCache:    shopCache,
		productCache: productCache,
	}
}

// Login exchanges credentials for a session, then fetches the profile and
// stores the embedded shop locally.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	access, err := s.authRepo.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(access); err != nil {
		return nil, err
	}

	user, err := s.authRepo.Me(ctx)
	if err != nil {
		return nil, err
	}
	if user.Shop != nil {
		if err := s.shopCache.Put(user.Shop); err != nil {
			log.Printf("auth: failed to cache shop profile: %v", err)
		}
	}
	return user, nil
}

// Logout tears the session down. The server call is best effort; local
// state is always cleared so the device ends up signed out either way.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.authRepo.Logout(ctx); err != nil {
		log.Printf("auth: server logout failed: %v", err)
	}
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	if err := s.shopCache.Clear(); err != nil {
		log.Printf("auth: failed to clear shop cache: %v", err)
	}
	if err := s.productCache.Clear(); err != nil {
		log.Printf("auth: failed to clear product cache: %v", err)
	}
	return nil
}

// LoggedIn reports whether a token is stored locally. It says nothing
// about server-side validity; an expired token surfaces on first use.
func (s *AuthService) LoggedIn() bool {
	return s.tokens.Token() != ""
}

// Me returns the current user's profile and refreshes the cached shop.
func (s *AuthService) Me(ctx context.Context) (*entity.User, error) {
	if !s.LoggedIn() {
		return nil, apperror.ErrNotLoggedIn
	}
	user, err := s.authRepo.Me(ctx)
	if err != nil {
		return nil, err
	}
	if user.Shop != nil {
		if err := s.shopCache.Put(user.Shop); err != nil {
			log.Printf("auth: failed to cache shop profile: %v", err)
		}
	}
	return user, nil
}

// OnSessionExpired is installed as the transport's expiry hook. The token
// is already cleared by the transport; this drops cached state tied to
// the dead session.
func (s *AuthService) OnSessionExpired() {
	log.Print("auth: session expired, clearing local session state")
	if err := s.shopCache.Clear(); err != nil {
		log.Printf("auth: failed to clear shop cache: %v", err)
	}
}
