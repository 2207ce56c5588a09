package service

import (
	"context"
	"errors"
	"testing"

	"darkops-lab/internal/models"
)

func TestGradeAnswers(t *testing.T) {
	attack := &models.Attack{Quiz: models.Quiz{Questions: []models.QuizQuestion{
		{ID: "q1", CorrectAnswer: 1},
		{ID: "q2", CorrectAnswer: 2},
	}}}

	testCases := []struct {
		name      string
		answers   []models.QuizAnswer
		wantScore int
		wantMarks []bool
	}{
		{"all correct", []models.QuizAnswer{{QuestionID: "q1", SelectedAnswer: 1}, {QuestionID: "q2", SelectedAnswer: 2}}, 2, []bool{true, true}},
		{"one wrong", []models.QuizAnswer{{QuestionID: "q1", SelectedAnswer: 0}, {QuestionID: "q2", SelectedAnswer: 2}}, 1, []bool{false, true}},
		{"unknown question", []models.QuizAnswer{{QuestionID: "q9", SelectedAnswer: 1}}, 0, []bool{false}},
		{"repeated question", []models.QuizAnswer{{QuestionID: "q1", SelectedAnswer: 1}, {QuestionID: "q1", SelectedAnswer: 1}}, 2, []bool{true, true}},
		{"empty", nil, 0, []bool{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			marks, score := gradeAnswers(attack, tc.answers)
			if score != tc.wantScore {
				t.Errorf("score = %d, want %d", score, tc.wantScore)
			}
			if len(marks) != len(tc.wantMarks) {
				t.Fatalf("marks = %v, want %v", marks, tc.wantMarks)
			}
			for i := range marks {
				if marks[i] != tc.wantMarks[i] {
					t.Errorf("marks[%d] = %v, want %v", i, marks[i], tc.wantMarks[i])
				}
			}
		})
	}
}

func TestSubmitQuizScenarios(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.newSession(t)

	score, err := f.quizSvc.SubmitQuiz(ctx, session.ID, "ddos_attack", []models.QuizAnswer{
		{QuestionID: "q1", SelectedAnswer: 1},
		{QuestionID: "q2", SelectedAnswer: 2},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if score.Score != 2 || score.TotalQuestions != 2 {
		t.Errorf("ddos score = %d/%d, want 2/2", score.Score, score.TotalQuestions)
	}

	score, err = f.quizSvc.SubmitQuiz(ctx, session.ID, "mitm_attack", []models.QuizAnswer{
		{QuestionID: "q1", SelectedAnswer: 0},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if score.Score != 0 || score.TotalQuestions != 1 {
		t.Errorf("mitm score = %d/%d, want 0/1", score.Score, score.TotalQuestions)
	}

	if got := f.stats(t, session.ID).TotalQuizScore; got != 2 {
		t.Errorf("TotalQuizScore = %d, want 2", got)
	}
}

func TestSubmitQuizPartialUsesCatalogCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.newSession(t)

	score, err := f.quizSvc.SubmitQuiz(ctx, session.ID, "ddos_attack", []models.QuizAnswer{
		{QuestionID: "q2", SelectedAnswer: 2},
		{QuestionID: "bogus", SelectedAnswer: 2},
		{QuestionID: "q1", SelectedAnswer: 3},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if score.Score != 1 || score.TotalQuestions != 2 {
		t.Errorf("score = %d/%d, want 1/2", score.Score, score.TotalQuestions)
	}

	submissions, _ := f.quizSvc.GetSubmissions(ctx, session.ID, "ddos_attack")
	if len(submissions) != 3 {
		t.Fatalf("Expected every answer to be stored, got %d", len(submissions))
	}
	if submissions[1].QuestionID != "bogus" || submissions[1].IsCorrect {
		t.Errorf("Expected unknown question stored as incorrect, got %+v", submissions[1])
	}
}

func TestSubmitQuizRetriesAccumulate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.newSession(t)

	answers := []models.QuizAnswer{{QuestionID: "q1", SelectedAnswer: 1}}
	for i := 0; i < 3; i++ {
		if _, err := f.quizSvc.SubmitQuiz(ctx, session.ID, "ddos_attack", answers); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	scores, _ := f.quizSvc.GetQuizScores(ctx, session.ID)
	if len(scores) != 3 {
		t.Errorf("Expected 3 appended scores, got %d", len(scores))
	}
	if got := f.stats(t, session.ID).TotalQuizScore; got != 3 {
		t.Errorf("TotalQuizScore = %d, want 3", got)
	}
}

func TestSubmitQuizUnknownAttackWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.newSession(t)

	_, err := f.quizSvc.SubmitQuiz(ctx, session.ID, "non-existent-attack", []models.QuizAnswer{
		{QuestionID: "q1", SelectedAnswer: 0},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	submissions, _ := f.quizSvc.GetSubmissions(ctx, session.ID, "")
	scores, _ := f.quizSvc.GetQuizScores(ctx, session.ID)
	if len(submissions) != 0 || len(scores) != 0 {
		t.Errorf("Expected no writes, got %d submissions and %d scores", len(submissions), len(scores))
	}
	if got := f.stats(t, session.ID).TotalQuizScore; got != 0 {
		t.Errorf("TotalQuizScore = %d, want 0", got)
	}
}
