package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// avatarURLTTL bounds how long a minted avatar link stays valid. Links are
// regenerated on every profile read, so a short life is fine.
const avatarURLTTL = time.Hour

// DynamoDB attribute names used in partial update maps.
const (
	fieldEmail        = "email"
	fieldFirstName    = "first_name"
	fieldLastName     = "last_name"
	fieldGender       = "gender"
	fieldRole         = "role"
	fieldIsActive     = "is_active"
	fieldAvatarURL    = "avatar_url"
	fieldPasswordHash = "password_hash"
)

type ChangePasswordRequest struct {
	OldPassword   string `json:"old_password" validate:"required"`
	NewPassword   string `json:"new_password" validate:"required,min=8"`
	ReNewPassword string `json:"re_new_password" validate:"required"`
}

type Service interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	UpdateAvatar(ctx context.Context, userID string, r io.Reader, contentType string) (string, error)
	List(ctx context.Context, limit int, cursor, role string) ([]domain.User, string, error)
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
	ScanPage(ctx context.Context, limit int32, cursor, role string) ([]domain.User, string, error)
}

type avatarStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo    userStore
	avatars avatarStore
}

type ServiceDeps struct {
	UserRepo    userStore
	AvatarStore avatarStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo, avatars: deps.AvatarStore}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAvatarLink(ctx, u), nil
}

// withAvatarLink swaps the stored object key for a presigned URL the client
// can actually fetch. A presign failure degrades to no avatar, not an error.
func (s *service) withAvatarLink(ctx context.Context, u *domain.User) *domain.User {
	if u.AvatarURL == "" {
		return u
	}
	url, err := s.avatars.PresignedURL(ctx, u.AvatarURL, avatarURLTTL)
	if err != nil {
		slog.Error("presign avatar", "user_id", u.UserID, "err", err)
		u.AvatarURL = ""
		return u
	}
	u.AvatarURL = url
	return u
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Gender != nil {
		updates[fieldGender] = *req.Gender
	}
	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if req.NewPassword != req.ReNewPassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}

func (s *service) UpdateAvatar(ctx context.Context, userID string, r io.Reader, contentType string) (string, error) {
	key := "avatars/" + userID
	if err := s.avatars.Upload(ctx, key, r, contentType); err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldAvatarURL: key}); err != nil {
		return "", err
	}
	return s.avatars.PresignedURL(ctx, key, avatarURLTTL)
}

func (s *service) List(ctx context.Context, limit int, cursor, role string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor, role)
}

// Create provisions an account on behalf of an operator. A random password is
// generated and returned once; the account starts verified and active.
func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, string, error) {
	if _, err := s.repo.GetByMobile(ctx, req.Mobile); err == nil {
		return nil, "", fmt.Errorf("mobile already registered: %w", domain.ErrConflict)
	}
	password, err := generatePassword(12)
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Mobile:       req.Mobile,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Verified:     true,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, "", err
	}
	return u, password, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAvatarLink(ctx, u), nil
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Gender != nil {
		updates[fieldGender] = *req.Gender
	}
	if req.Role != nil {
		updates[fieldRole] = *req.Role
	}
	if req.Active != nil {
		updates[fieldIsActive] = *req.Active
	}
	if len(updates) == 0 {
		return s.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Delete retires the account (soft delete, deactivated) and removes its
// avatar object. A failed object cleanup is logged, not surfaced: the account
// removal already took effect.
func (s *service) Delete(ctx context.Context, userID string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	if u.AvatarURL != "" {
		if err := s.avatars.Delete(ctx, u.AvatarURL); err != nil {
			slog.Error("delete avatar object", "user_id", userID, "err", err)
		}
	}
	return nil
}

func generatePassword(n int) (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}
