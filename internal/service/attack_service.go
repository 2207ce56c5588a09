package service

import (
	"context"
	"errors"
	"fmt"

	"darkops-lab/internal/catalog"
	"darkops-lab/internal/models"
)

type AttackService struct {
	Catalog AttackCatalog
}

func NewAttackService(c AttackCatalog) *AttackService {
	return &AttackService{Catalog: c}
}

// ListAttacks returns the catalog, optionally narrowed to one category.
func (s *AttackService) ListAttacks(ctx context.Context, category string) ([]models.Attack, error) {
	attacks, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return attacks, nil
	}
	filtered := make([]models.Attack, 0, len(attacks))
	for i := range attacks {
		if attacks[i].InCategory(category) {
			filtered = append(filtered, attacks[i])
		}
	}
	return filtered, nil
}

func (s *AttackService) GetAttack(ctx context.Context, id string) (*models.Attack, error) {
	return lookupAttack(ctx, s.Catalog, id)
}

func (s *AttackService) Reload(ctx context.Context) error {
	return s.Catalog.Invalidate(ctx)
}

func lookupAttack(ctx context.Context, c AttackCatalog, id string) (*models.Attack, error) {
	attack, err := c.Get(ctx, id)
	if errors.Is(err, catalog.ErrAttackNotFound) {
		return nil, fmt.Errorf("%w: attack %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return attack, nil
}
