package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/otp-auth-api/internal/domain"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/otp-auth-api/internal/pkg/id"
	"github.com/otp-auth-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPasswordHash = "password_hash"
	fieldIsVerified   = "is_verified"
	fieldIsActive     = "is_active"
)

type RegisterRequest struct {
	Mobile     string `json:"mobile" validate:"required,mobile"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
	Password   string `json:"password" validate:"required,min=8"`
	RePassword string `json:"re_password" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
}

type ResetPasswordRequest struct {
	Mobile     string `json:"mobile" validate:"required,mobile"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
	Password   string `json:"password" validate:"required,min=8"`
	RePassword string `json:"re_password" validate:"required"`
}

type Service interface {
	RequestRegisterCode(ctx context.Context, mobile string) error
	Register(ctx context.Context, req RegisterRequest) (*domain.User, *jwtinfra.Pair, error)
	RequestLoginCode(ctx context.Context, mobile string) error
	LoginWithCode(ctx context.Context, mobile, code string) (*domain.User, *jwtinfra.Pair, error)
	RequestPasswordReset(ctx context.Context, mobile string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type codeStore interface {
	Issue(ctx context.Context, purpose domain.Purpose, mobile, code string) error
	CheckAndConsume(ctx context.Context, purpose domain.Purpose, mobile, candidate string) (bool, error)
}

type userStore interface {
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type allowList interface {
	IsAllowed(ctx context.Context, mobile string) (bool, error)
}

type codeSender interface {
	SendCode(ctx context.Context, mobile, code string) error
}

type tokenIssuer interface {
	IssuePair(userID, role string) (*jwtinfra.Pair, error)
}

type service struct {
	codes     codeStore
	users     userStore
	allowList allowList
	sender    codeSender
	tokens    tokenIssuer
}

type ServiceDeps struct {
	CodeStore   codeStore
	UserRepo    userStore
	AllowList   allowList
	CodeSender  codeSender
	JWTProvider tokenIssuer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		codes:     deps.CodeStore,
		users:     deps.UserRepo,
		allowList: deps.AllowList,
		sender:    deps.CodeSender,
		tokens:    deps.JWTProvider,
	}
}

func (s *service) RequestRegisterCode(ctx context.Context, mobile string) error {
	if err := s.ensureMobileFree(ctx, mobile); err != nil {
		return err
	}
	return s.issueAndSend(ctx, domain.PurposeRegister, mobile)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *jwtinfra.Pair, error) {
	if req.Password != req.RePassword {
		return nil, nil, fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	if err := s.ensureMobileFree(ctx, req.Mobile); err != nil {
		return nil, nil, err
	}

	ok, err := s.codes.CheckAndConsume(ctx, domain.PurposeRegister, req.Mobile, req.Code)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, domain.ErrInvalidCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	allowed, err := s.allowList.IsAllowed(ctx, req.Mobile)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Verified:     true,
		Active:       allowed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, nil, err
	}

	// The account is kept even when activation is denied, so the mobile stays
	// claimed; the caller just gets no credentials.
	if !allowed {
		return nil, nil, fmt.Errorf("mobile not permitted to activate: %w", domain.ErrForbidden)
	}

	pair, err := s.tokens.IssuePair(u.UserID, u.Role)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *service) RequestLoginCode(ctx context.Context, mobile string) error {
	u, err := s.users.GetByMobile(ctx, mobile)
	if err != nil {
		return err
	}
	if !domain.Allow(u.Role, domain.ActionLoginOTP) {
		return fmt.Errorf("role not permitted to log in with a code: %w", domain.ErrForbidden)
	}
	return s.issueAndSend(ctx, domain.PurposeLogin, mobile)
}

func (s *service) LoginWithCode(ctx context.Context, mobile, code string) (*domain.User, *jwtinfra.Pair, error) {
	ok, err := s.codes.CheckAndConsume(ctx, domain.PurposeLogin, mobile, code)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, domain.ErrInvalidCode
	}

	u, err := s.users.GetByMobile(ctx, mobile)
	if errors.Is(err, domain.ErrNotFound) {
		u, err = s.provisionImplicitAccount(ctx, mobile)
	}
	if err != nil {
		return nil, nil, err
	}

	updates := map[string]interface{}{}
	if !u.Verified {
		// A validated code proves possession of the mobile number.
		updates[fieldIsVerified] = true
		u.Verified = true
	}
	if !u.Active {
		allowed, err := s.allowList.IsAllowed(ctx, mobile)
		if err != nil {
			return nil, nil, err
		}
		if !allowed {
			return nil, nil, fmt.Errorf("account not active and mobile not permitted to activate: %w", domain.ErrForbidden)
		}
		updates[fieldIsActive] = true
		u.Active = true
	}
	if len(updates) > 0 {
		if err := s.users.Update(ctx, u.UserID, updates); err != nil {
			return nil, nil, err
		}
	}

	pair, err := s.tokens.IssuePair(u.UserID, u.Role)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, mobile string) error {
	if _, err := s.users.GetByMobile(ctx, mobile); err != nil {
		return err
	}
	return s.issueAndSend(ctx, domain.PurposeForgotPassword, mobile)
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.Password != req.RePassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	u, err := s.users.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return err
	}

	ok, err := s.codes.CheckAndConsume(ctx, domain.PurposeForgotPassword, req.Mobile, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, u.UserID, map[string]interface{}{fieldPasswordHash: string(hash)})
}

// ensureMobileFree distinguishes "mobile taken" from a store failure. Only a
// definite not-found answer lets registration proceed; an unreachable store
// must never look like a free mobile.
func (s *service) ensureMobileFree(ctx context.Context, mobile string) error {
	_, err := s.users.GetByMobile(ctx, mobile)
	if err == nil {
		return fmt.Errorf("mobile already registered: %w", domain.ErrConflict)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (s *service) issueAndSend(ctx context.Context, purpose domain.Purpose, mobile string) error {
	code, err := otp.New()
	if err != nil {
		return err
	}
	if err := s.codes.Issue(ctx, purpose, mobile, code); err != nil {
		return err
	}
	// Delivery is fire-and-forget; the worker owns retries.
	if err := s.sender.SendCode(ctx, mobile, code); err != nil {
		return err
	}
	return nil
}

// provisionImplicitAccount materializes an account for a mobile that passed
// code validation without ever registering. The account has no password, so
// password login stays impossible until a reset.
func (s *service) provisionImplicitAccount(ctx context.Context, mobile string) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		UserID:    id.New(),
		Mobile:    mobile,
		Role:      domain.RoleUser,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("implicitly provisioned account", "user_id", u.UserID, "mobile", mobile)
	return u, nil
}
