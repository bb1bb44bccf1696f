package allowlist

import (
	"context"
	"time"

	"github.com/otp-auth-api/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.AllowListEntry, error)
	Add(ctx context.Context, req domain.CreateAllowListRequest) (*domain.AllowListEntry, error)
	Remove(ctx context.Context, mobile string) error
}

type entryStore interface {
	List(ctx context.Context) ([]domain.AllowListEntry, error)
	Put(ctx context.Context, e *domain.AllowListEntry) error
	Delete(ctx context.Context, mobile string) error
}

type service struct {
	repo entryStore
}

type ServiceDeps struct {
	AllowListRepo entryStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.AllowListRepo}
}

func (s *service) List(ctx context.Context) ([]domain.AllowListEntry, error) {
	return s.repo.List(ctx)
}

func (s *service) Add(ctx context.Context, req domain.CreateAllowListRequest) (*domain.AllowListEntry, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	e := &domain.AllowListEntry{
		Mobile:    req.Mobile,
		Active:    active,
		Note:      req.Note,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Remove(ctx context.Context, mobile string) error {
	return s.repo.Delete(ctx, mobile)
}
