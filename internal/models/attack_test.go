package models

import (
	"testing"
)

func TestAttackQuestionLookup(t *testing.T) {
	attack := &Attack{
		ID: "ddos_attack",
		Quiz: Quiz{Questions: []QuizQuestion{
			{ID: "q1", CorrectAnswer: 1},
			{ID: "q2", CorrectAnswer: 2},
		}},
	}

	testCases := []struct {
		id        string
		found     bool
		wantIndex int
	}{
		{"q1", true, 1},
		{"q2", true, 2},
		{"q3", false, 0},
		{"", false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			q, ok := attack.Question(tc.id)
			if ok != tc.found {
				t.Fatalf("Question(%q) found = %v, want %v", tc.id, ok, tc.found)
			}
			if ok && q.CorrectAnswer != tc.wantIndex {
				t.Errorf("Question(%q).CorrectAnswer = %d, want %d", tc.id, q.CorrectAnswer, tc.wantIndex)
			}
		})
	}
}

func TestAttackInCategory(t *testing.T) {
	attack := &Attack{Category: "Network"}
	if !attack.InCategory("network") {
		t.Error("Expected case-insensitive category match")
	}
	if attack.InCategory("web") {
		t.Error("Expected no match for a different category")
	}
}

func TestProgressReachedEnd(t *testing.T) {
	progress := &AttackProgress{TotalSteps: 4}

	if progress.ReachedEnd(3) {
		t.Error("Step 3 of 4 should not reach the end")
	}
	if !progress.ReachedEnd(4) {
		t.Error("Step 4 of 4 should reach the end")
	}
	if !progress.ReachedEnd(7) {
		t.Error("Steps past the total should reach the end")
	}
}
