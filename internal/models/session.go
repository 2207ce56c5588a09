package models

import "time"

// Session is the anonymous identity of one visitor plus its running totals.
type Session struct {
	ID                    string    `bson:"_id" json:"id"`
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
	LastActive            time.Time `bson:"last_active" json:"last_active"`
	Nickname              *string   `bson:"nickname" json:"nickname"`
	TotalAttacksCompleted int       `bson:"total_attacks_completed" json:"total_attacks_completed"`
	TotalQuizScore        int       `bson:"total_quiz_score" json:"total_quiz_score"`
}
