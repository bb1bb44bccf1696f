package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/otp-auth-api/internal/domain"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"golang.org/x/crypto/bcrypt"
)

const fieldIsActive = "is_active"

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required,mobile"`
	Password string `json:"password" validate:"required"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*domain.User, *jwtinfra.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (*jwtinfra.Pair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type userStore interface {
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type allowList interface {
	IsAllowed(ctx context.Context, mobile string) (bool, error)
}

type tokenProvider interface {
	IssuePair(userID, role string) (*jwtinfra.Pair, error)
	Verify(tokenStr, expectedType string) (*jwtinfra.Claims, error)
}

type revocationList interface {
	Revoke(ctx context.Context, jti string, remaining time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type service struct {
	users     userStore
	allowList allowList
	tokens    tokenProvider
	revoked   revocationList
}

type ServiceDeps struct {
	UserRepo    userStore
	AllowList   allowList
	JWTProvider tokenProvider
	Blacklist   revocationList
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:     deps.UserRepo,
		allowList: deps.AllowList,
		tokens:    deps.JWTProvider,
		revoked:   deps.Blacklist,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*domain.User, *jwtinfra.Pair, error) {
	u, err := s.users.GetByMobile(ctx, req.Mobile)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, nil, err
	}
	if !u.Verified {
		return nil, nil, fmt.Errorf("account not verified: %w", domain.ErrForbidden)
	}
	activate := false
	if !u.Active {
		allowed, err := s.allowList.IsAllowed(ctx, req.Mobile)
		if err != nil {
			return nil, nil, err
		}
		if !allowed {
			return nil, nil, fmt.Errorf("account not active: %w", domain.ErrForbidden)
		}
		activate = true
	}
	// Implicitly provisioned accounts have no password hash; bcrypt would
	// reject anyway, but fail explicitly before touching it.
	if u.PasswordHash == "" {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	// Activation is a side effect of a successful login, never of a failed one.
	if activate {
		if err := s.users.Update(ctx, u.UserID, map[string]interface{}{fieldIsActive: true}); err != nil {
			return nil, nil, err
		}
		u.Active = true
	}

	pair, err := s.tokens.IssuePair(u.UserID, u.Role)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*jwtinfra.Pair, error) {
	claims, err := s.tokens.Verify(refreshToken, jwtinfra.TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("refresh token revoked: %w", domain.ErrUnauthorized)
	}
	// Rotation: the presented token dies with this exchange.
	if err := s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return nil, err
	}
	return s.tokens.IssuePair(claims.UserID, claims.Role)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.Verify(refreshToken, jwtinfra.TokenTypeRefresh)
	if err != nil {
		return fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	return s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}
