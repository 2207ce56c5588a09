package models

import "strings"

type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Technical   string `json:"technical,omitempty"`
	Duration    int    `json:"duration,omitempty"`
}

type Defense struct {
	Strategy       string `json:"strategy"`
	Description    string `json:"description"`
	Effectiveness  string `json:"effectiveness"`
	Implementation string `json:"implementation,omitempty"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// Attack is one lesson of the static catalog. Read-only at runtime.
type Attack struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Category        string         `json:"category"`
	Description     string         `json:"description"`
	Difficulty      string         `json:"difficulty"`
	EstimatedTime   int            `json:"estimated_time"`
	AnimationConfig map[string]any `json:"animation_config"`
	Steps           []Step         `json:"steps"`
	Defenses        []Defense      `json:"defenses"`
	Quiz            Quiz           `json:"quiz"`
}

// Question returns the quiz question with the given id.
func (a *Attack) Question(id string) (*QuizQuestion, bool) {
	for i := range a.Quiz.Questions {
		if a.Quiz.Questions[i].ID == id {
			return &a.Quiz.Questions[i], true
		}
	}
	return nil, false
}

func (a *Attack) InCategory(category string) bool {
	return strings.EqualFold(a.Category, category)
}
