package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"darkops-lab/internal/event"
	"darkops-lab/internal/metrics"
	"darkops-lab/internal/models"
	"darkops-lab/internal/repository"

	"github.com/google/uuid"
)

// maxUpsertAttempts bounds the retry after losing an insert race for the
// same (session, attack) pair.
const maxUpsertAttempts = 3

type ProgressService struct {
	Repo      ProgressStore
	Sessions  SessionStore
	Catalog   AttackCatalog
	Publisher event.Publisher
	now       func() time.Time
}

func NewProgressService(repo ProgressStore, sessions SessionStore, c AttackCatalog, publisher event.Publisher) *ProgressService {
	return &ProgressService{
		Repo:      repo,
		Sessions:  sessions,
		Catalog:   c,
		Publisher: publisher,
		now:       utcNow,
	}
}

// RecordProgress upserts the learner's position in one attack walkthrough.
//
// An incomplete record that reaches its total_steps is completed exactly
// once, and only that transition bumps the session's completed-attacks
// total. Completed records keep is_completed and completed_at on later
// updates. A new record snapshots total_steps from the catalog and fails
// with ErrNotFound for unknown attacks.
func (s *ProgressService) RecordProgress(ctx context.Context, sessionID, attackID string, step, timeSpent int) (*models.AttackProgress, error) {
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		now := s.now()

		progress, err := s.Repo.Complete(ctx, sessionID, attackID, step, timeSpent, now)
		if err == nil {
			return progress, s.completed(ctx, progress)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		progress, err = s.Repo.Advance(ctx, sessionID, attackID, step, timeSpent, now)
		if err == nil {
			s.updated(progress, "updated")
			return progress, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		attack, err := lookupAttack(ctx, s.Catalog, attackID)
		if err != nil {
			return nil, err
		}

		progress = &models.AttackProgress{
			ID:          uuid.New().String(),
			SessionID:   sessionID,
			AttackID:    attackID,
			StartedAt:   now,
			LastUpdated: now,
			CurrentStep: step,
			TotalSteps:  len(attack.Steps),
			TimeSpent:   timeSpent,
		}
		if progress.ReachedEnd(step) {
			completedAt := now
			progress.IsCompleted = true
			progress.CompletedAt = &completedAt
		}

		err = s.Repo.Insert(ctx, progress)
		if errors.Is(err, repository.ErrDuplicate) {
			// Another request created the record first; apply as an update.
			continue
		}
		if err != nil {
			return nil, err
		}

		if progress.IsCompleted {
			return progress, s.completed(ctx, progress)
		}
		s.updated(progress, "created")
		return progress, nil
	}
	return nil, fmt.Errorf("progress for session %s attack %s did not settle after %d attempts", sessionID, attackID, maxUpsertAttempts)
}

func (s *ProgressService) GetProgress(ctx context.Context, sessionID string) ([]models.AttackProgress, error) {
	return s.Repo.FindBySession(ctx, sessionID)
}

func (s *ProgressService) completed(ctx context.Context, progress *models.AttackProgress) error {
	if err := s.Sessions.IncrementStats(ctx, progress.SessionID, 1, 0); err != nil {
		return err
	}
	metrics.ProgressUpdates.WithLabelValues(progress.AttackID, "completed").Inc()

	publish(s.Publisher, &models.LabEvent{
		EventType: models.EventTypeAttackCompleted,
		SessionID: progress.SessionID,
		AttackID:  progress.AttackID,
		Timestamp: progress.LastUpdated,
		Data: map[string]any{
			"total_steps": progress.TotalSteps,
			"time_spent":  progress.TimeSpent,
		},
	})
	return nil
}

func (s *ProgressService) updated(progress *models.AttackProgress, result string) {
	metrics.ProgressUpdates.WithLabelValues(progress.AttackID, result).Inc()

	publish(s.Publisher, &models.LabEvent{
		EventType: models.EventTypeProgressUpdated,
		SessionID: progress.SessionID,
		AttackID:  progress.AttackID,
		Timestamp: progress.LastUpdated,
		Data: map[string]any{
			"current_step": progress.CurrentStep,
			"total_steps":  progress.TotalSteps,
			"time_spent":   progress.TimeSpent,
		},
	})
}
