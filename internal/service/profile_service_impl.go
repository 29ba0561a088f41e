package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/repository"
)

type profileService struct {
	repo repository.PriorityProfileRepo
}

func NewProfileService(repo repository.PriorityProfileRepo) ProfileService {
	return &profileService{repo: repo}
}

// Get returns the stored weights, or the defaults when none are stored.
func (s *profileService) Get(ctx context.Context) (*domain.PriorityProfile, error) {
	p, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewDefaultPriorityProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading priority profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p *domain.PriorityProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.Upsert(ctx, p)
}
