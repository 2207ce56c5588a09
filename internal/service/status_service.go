package service

import (
	"context"
	"time"

	"darkops-lab/internal/models"

	"github.com/google/uuid"
)

type StatusService struct {
	Repo StatusStore
	now  func() time.Time
}

func NewStatusService(repo StatusStore) *StatusService {
	return &StatusService{Repo: repo, now: utcNow}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	check := &models.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Timestamp:  s.now(),
	}
	if err := s.Repo.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (s *StatusService) ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	return s.Repo.FindAll(ctx)
}
