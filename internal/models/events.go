package models

import "time"

type EventType string

const (
	EventTypeSessionCreated  EventType = "session.created"
	EventTypeProgressUpdated EventType = "progress.updated"
	EventTypeAttackCompleted EventType = "attack.completed"
	EventTypeQuizSubmitted   EventType = "quiz.submitted"
)

type LabEvent struct {
	EventType EventType      `json:"eventType"`
	SessionID string         `json:"sessionId"`
	AttackID  string         `json:"attackId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}
