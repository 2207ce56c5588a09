package models

import "time"

// AttackProgress tracks one session's walkthrough of one attack.
// (SessionID, AttackID) is unique.
type AttackProgress struct {
	ID          string     `bson:"_id" json:"id"`
	SessionID   string     `bson:"session_id" json:"session_id"`
	AttackID    string     `bson:"attack_id" json:"attack_id"`
	StartedAt   time.Time  `bson:"started_at" json:"started_at"`
	LastUpdated time.Time  `bson:"last_updated" json:"last_updated"`
	CompletedAt *time.Time `bson:"completed_at" json:"completed_at"`
	CurrentStep int        `bson:"current_step" json:"current_step"`
	TotalSteps  int        `bson:"total_steps" json:"total_steps"`
	IsCompleted bool       `bson:"is_completed" json:"is_completed"`
	TimeSpent   int        `bson:"time_spent" json:"time_spent"` // seconds
}

// ReachedEnd reports whether step covers every step of the walkthrough.
func (p *AttackProgress) ReachedEnd(step int) bool {
	return step >= p.TotalSteps
}
