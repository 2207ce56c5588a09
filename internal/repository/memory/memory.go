// Package memory holds in-process stores with the same semantics as the
// MongoDB repositories. They back STORAGE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"darkops-lab/internal/models"
	"darkops-lab/internal/repository"
)

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]models.Session)}
}

func (s *SessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return repository.ErrDuplicate
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *SessionStore) FindByID(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (s *SessionStore) Touch(_ context.Context, id string, at time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	session.LastActive = at
	s.sessions[id] = session
	return &session, nil
}

func (s *SessionStore) IncrementStats(_ context.Context, id string, attacksCompleted, quizScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	session.TotalAttacksCompleted += attacksCompleted
	session.TotalQuizScore += quizScore
	s.sessions[id] = session
	return nil
}

type progressKey struct {
	sessionID string
	attackID  string
}

type ProgressStore struct {
	mu      sync.Mutex
	records map[progressKey]models.AttackProgress
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{records: make(map[progressKey]models.AttackProgress)}
}

func (s *ProgressStore) Insert(_ context.Context, progress *models.AttackProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey{progress.SessionID, progress.AttackID}
	if _, exists := s.records[key]; exists {
		return repository.ErrDuplicate
	}
	s.records[key] = *progress
	return nil
}

func (s *ProgressStore) Complete(_ context.Context, sessionID, attackID string, step, timeSpent int, at time.Time) (*models.AttackProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey{sessionID, attackID}
	p, ok := s.records[key]
	if !ok || p.IsCompleted || !p.ReachedEnd(step) {
		return nil, repository.ErrNotFound
	}
	completedAt := at
	p.CurrentStep = step
	p.TimeSpent = timeSpent
	p.LastUpdated = at
	p.IsCompleted = true
	p.CompletedAt = &completedAt
	s.records[key] = p
	return &p, nil
}

func (s *ProgressStore) Advance(_ context.Context, sessionID, attackID string, step, timeSpent int, at time.Time) (*models.AttackProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey{sessionID, attackID}
	p, ok := s.records[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.CurrentStep = step
	p.TimeSpent = timeSpent
	p.LastUpdated = at
	s.records[key] = p
	return &p, nil
}

func (s *ProgressStore) FindBySession(_ context.Context, sessionID string) ([]models.AttackProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.AttackProgress, 0)
	for key, p := range s.records {
		if key.sessionID == sessionID {
			records = append(records, p)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].StartedAt.Equal(records[j].StartedAt) {
			return records[i].AttackID < records[j].AttackID
		}
		return records[i].StartedAt.Before(records[j].StartedAt)
	})
	return records, nil
}

type QuizStore struct {
	mu          sync.Mutex
	submissions []models.QuizSubmission
	scores      []models.QuizScore
}

func NewQuizStore() *QuizStore {
	return &QuizStore{}
}

func (s *QuizStore) InsertSubmissions(_ context.Context, submissions []models.QuizSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, submissions...)
	return nil
}

func (s *QuizStore) InsertScore(_ context.Context, score *models.QuizScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, *score)
	return nil
}

func (s *QuizStore) FindScoresBySession(_ context.Context, sessionID string) ([]models.QuizScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scores := make([]models.QuizScore, 0)
	for _, score := range s.scores {
		if score.SessionID == sessionID {
			scores = append(scores, score)
		}
	}
	return scores, nil
}

func (s *QuizStore) FindSubmissions(_ context.Context, sessionID, attackID string) ([]models.QuizSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	submissions := make([]models.QuizSubmission, 0)
	for _, sub := range s.submissions {
		if sub.SessionID != sessionID {
			continue
		}
		if attackID != "" && sub.AttackID != attackID {
			continue
		}
		submissions = append(submissions, sub)
	}
	return submissions, nil
}

type StatusStore struct {
	mu     sync.Mutex
	checks []models.StatusCheck
}

func NewStatusStore() *StatusStore {
	return &StatusStore{}
}

func (s *StatusStore) Create(_ context.Context, check *models.StatusCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, *check)
	return nil
}

func (s *StatusStore) FindAll(_ context.Context) ([]models.StatusCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checks := make([]models.StatusCheck, len(s.checks))
	copy(checks, s.checks)
	return checks, nil
}
