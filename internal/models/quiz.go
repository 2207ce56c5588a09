package models

import "time"

type QuizSubmission struct {
	ID             string    `bson:"_id" json:"id"`
	SessionID      string    `bson:"session_id" json:"session_id"`
	AttackID       string    `bson:"attack_id" json:"attack_id"`
	QuestionID     string    `bson:"question_id" json:"question_id"`
	SelectedAnswer int       `bson:"selected_answer" json:"selected_answer"`
	IsCorrect      bool      `bson:"is_correct" json:"is_correct"`
	SubmittedAt    time.Time `bson:"submitted_at" json:"submitted_at"`
}

// QuizScore is the result of one graded batch. Retries append new scores.
type QuizScore struct {
	ID             string    `bson:"_id" json:"id"`
	SessionID      string    `bson:"session_id" json:"session_id"`
	AttackID       string    `bson:"attack_id" json:"attack_id"`
	Score          int       `bson:"score" json:"score"`
	TotalQuestions int       `bson:"total_questions" json:"total_questions"`
	CompletedAt    time.Time `bson:"completed_at" json:"completed_at"`
}

// QuizAnswer is one answer of a submitted batch, before grading.
type QuizAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer int    `json:"selected_answer"`
}
