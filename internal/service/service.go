package service

import (
	"context"
	"errors"
	"log"
	"time"

	"darkops-lab/internal/event"
	"darkops-lab/internal/models"
)

// ErrNotFound is returned for unknown session or attack ids.
var ErrNotFound = errors.New("not found")

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Touch(ctx context.Context, id string, at time.Time) (*models.Session, error)
	IncrementStats(ctx context.Context, id string, attacksCompleted, quizScore int) error
}

type ProgressStore interface {
	Insert(ctx context.Context, progress *models.AttackProgress) error
	Complete(ctx context.Context, sessionID, attackID string, step, timeSpent int, at time.Time) (*models.AttackProgress, error)
	Advance(ctx context.Context, sessionID, attackID string, step, timeSpent int, at time.Time) (*models.AttackProgress, error)
	FindBySession(ctx context.Context, sessionID string) ([]models.AttackProgress, error)
}

type QuizStore interface {
	InsertSubmissions(ctx context.Context, submissions []models.QuizSubmission) error
	InsertScore(ctx context.Context, score *models.QuizScore) error
	FindScoresBySession(ctx context.Context, sessionID string) ([]models.QuizScore, error)
	FindSubmissions(ctx context.Context, sessionID, attackID string) ([]models.QuizSubmission, error)
}

type StatusStore interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	FindAll(ctx context.Context) ([]models.StatusCheck, error)
}

type AttackCatalog interface {
	List(ctx context.Context) ([]models.Attack, error)
	Get(ctx context.Context, id string) (*models.Attack, error)
	Invalidate(ctx context.Context) error
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func publish(p event.Publisher, e *models.LabEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(e); err != nil {
		log.Printf("Warning: failed to publish %s event for session %s: %v", e.EventType, e.SessionID, err)
	}
}
