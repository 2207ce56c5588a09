package service

import (
	"context"
	"testing"
	"time"

	"darkops-lab/internal/catalog"
	"darkops-lab/internal/event"
	"darkops-lab/internal/models"
	"darkops-lab/internal/repository/memory"
)

func testCatalog() *catalog.Catalog {
	attacks := []models.Attack{
		{
			ID:       "ddos_attack",
			Category: "Network",
			Steps:    []models.Step{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}, {ID: "s4"}},
			Quiz: models.Quiz{Questions: []models.QuizQuestion{
				{ID: "q1", CorrectAnswer: 1},
				{ID: "q2", CorrectAnswer: 2},
			}},
		},
		{
			ID:       "mitm_attack",
			Category: "Network",
			Steps:    []models.Step{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}},
			Quiz: models.Quiz{Questions: []models.QuizQuestion{
				{ID: "q1", CorrectAnswer: 2},
			}},
		},
		{
			ID:       "sql_injection",
			Category: "Web Application",
			Steps:    []models.Step{{ID: "s1"}, {ID: "s2"}},
		},
	}
	load := func() ([]models.Attack, error) { return attacks, nil }
	return catalog.New(load, catalog.NewMemoryCache(), time.Minute)
}

type fixture struct {
	sessions  *memory.SessionStore
	progress  *memory.ProgressStore
	quiz      *memory.QuizStore
	publisher *event.MockPublisher

	sessionSvc  *SessionService
	progressSvc *ProgressService
	quizSvc     *QuizService
	attackSvc   *AttackService
}

func newFixture() *fixture {
	c := testCatalog()
	f := &fixture{
		sessions:  memory.NewSessionStore(),
		progress:  memory.NewProgressStore(),
		quiz:      memory.NewQuizStore(),
		publisher: event.NewMockPublisher(),
	}
	f.sessionSvc = NewSessionService(f.sessions, f.publisher)
	f.progressSvc = NewProgressService(f.progress, f.sessions, c, f.publisher)
	f.quizSvc = NewQuizService(f.quiz, f.sessions, c, f.publisher)
	f.attackSvc = NewAttackService(c)
	return f
}

func (f *fixture) newSession(t *testing.T) *models.Session {
	t.Helper()
	session, err := f.sessionSvc.CreateSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return session
}

func (f *fixture) stats(t *testing.T, id string) *models.Session {
	t.Helper()
	session, err := f.sessions.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID(%s) failed: %v", id, err)
	}
	return session
}
