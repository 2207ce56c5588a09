package service

import (
	"context"
	"time"

	"darkops-lab/internal/event"
	"darkops-lab/internal/metrics"
	"darkops-lab/internal/models"

	"github.com/google/uuid"
)

type QuizService struct {
	Repo      QuizStore
	Sessions  SessionStore
	Catalog   AttackCatalog
	Publisher event.Publisher
	now       func() time.Time
}

func NewQuizService(repo QuizStore, sessions SessionStore, c AttackCatalog, publisher event.Publisher) *QuizService {
	return &QuizService{
		Repo:      repo,
		Sessions:  sessions,
		Catalog:   c,
		Publisher: publisher,
		now:       utcNow,
	}
}

// gradeAnswers marks each answer against the attack's quiz. Answers to
// unknown question ids are incorrect.
func gradeAnswers(attack *models.Attack, answers []models.QuizAnswer) ([]bool, int) {
	graded := make([]bool, len(answers))
	score := 0
	for i, answer := range answers {
		question, ok := attack.Question(answer.QuestionID)
		if ok && question.CorrectAnswer == answer.SelectedAnswer {
			graded[i] = true
			score++
		}
	}
	return graded, score
}

// SubmitQuiz grades one batch of answers, stores every graded answer and a
// new QuizScore, and adds the score to the session total. Retries append;
// nothing is deduplicated. total_questions is the catalog's question count.
func (s *QuizService) SubmitQuiz(ctx context.Context, sessionID, attackID string, answers []models.QuizAnswer) (*models.QuizScore, error) {
	attack, err := lookupAttack(ctx, s.Catalog, attackID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	graded, score := gradeAnswers(attack, answers)

	submissions := make([]models.QuizSubmission, len(answers))
	for i, answer := range answers {
		submissions[i] = models.QuizSubmission{
			ID:             uuid.New().String(),
			SessionID:      sessionID,
			AttackID:       attackID,
			QuestionID:     answer.QuestionID,
			SelectedAnswer: answer.SelectedAnswer,
			IsCorrect:      graded[i],
			SubmittedAt:    now,
		}
	}
	if err := s.Repo.InsertSubmissions(ctx, submissions); err != nil {
		return nil, err
	}

	result := &models.QuizScore{
		ID:             uuid.New().String(),
		SessionID:      sessionID,
		AttackID:       attackID,
		Score:          score,
		TotalQuestions: len(attack.Quiz.Questions),
		CompletedAt:    now,
	}
	if err := s.Repo.InsertScore(ctx, result); err != nil {
		return nil, err
	}
	if err := s.Sessions.IncrementStats(ctx, sessionID, 0, score); err != nil {
		return nil, err
	}

	metrics.QuizSubmissions.WithLabelValues(attackID).Inc()
	metrics.QuizAnswersCorrect.WithLabelValues(attackID).Add(float64(score))
	publish(s.Publisher, &models.LabEvent{
		EventType: models.EventTypeQuizSubmitted,
		SessionID: sessionID,
		AttackID:  attackID,
		Timestamp: now,
		Data: map[string]any{
			"score":           result.Score,
			"total_questions": result.TotalQuestions,
		},
	})
	return result, nil
}

func (s *QuizService) GetQuizScores(ctx context.Context, sessionID string) ([]models.QuizScore, error) {
	return s.Repo.FindScoresBySession(ctx, sessionID)
}

func (s *QuizService) GetSubmissions(ctx context.Context, sessionID, attackID string) ([]models.QuizSubmission, error) {
	return s.Repo.FindSubmissions(ctx, sessionID, attackID)
}
