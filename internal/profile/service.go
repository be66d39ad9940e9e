package profile

import (
	"context"
	"strings"
)

// Service resolves profiles for the booking core.
type Service interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	// GetByExternalID maps an authenticated subject to its profile.
	GetByExternalID(ctx context.Context, externalID string) (*Profile, error)
}

type service struct {
	repo Repository
}

// NewService creates a new profile Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByExternalID(ctx context.Context, externalID string) (*Profile, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByExternalID(ctx, externalID)
}
