package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"darkops-lab/internal/event"
	"darkops-lab/internal/metrics"
	"darkops-lab/internal/models"
	"darkops-lab/internal/repository"

	"github.com/google/uuid"
)

type SessionService struct {
	Repo      SessionStore
	Publisher event.Publisher
	now       func() time.Time
}

func NewSessionService(repo SessionStore, publisher event.Publisher) *SessionService {
	return &SessionService{Repo: repo, Publisher: publisher, now: utcNow}
}

// CreateSession starts an anonymous session with zeroed totals. A blank
// nickname is stored as no nickname.
func (s *SessionService) CreateSession(ctx context.Context, nickname *string) (*models.Session, error) {
	now := s.now()
	session := &models.Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		LastActive: now,
	}
	if nickname != nil {
		if trimmed := strings.TrimSpace(*nickname); trimmed != "" {
			session.Nickname = &trimmed
		}
	}

	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()

	publish(s.Publisher, &models.LabEvent{
		EventType: models.EventTypeSessionCreated,
		SessionID: session.ID,
		Timestamp: now,
	})
	return session, nil
}

// GetSession returns the session and refreshes its last_active as a side
// effect of every read.
func (s *SessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.Repo.Touch(ctx, id, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}
