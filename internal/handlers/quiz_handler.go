package handlers

import (
	"net/http"

	"darkops-lab/internal/models"
	"darkops-lab/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

type answerRequest struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedAnswer *int   `json:"selected_answer" binding:"required"`
}

type submitQuizRequest struct {
	SessionID string          `json:"session_id" binding:"required"`
	AttackID  string          `json:"attack_id" binding:"required"`
	Answers   []answerRequest `json:"answers" binding:"required,dive"`
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	answers := make([]models.QuizAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = models.QuizAnswer{QuestionID: a.QuestionID, SelectedAnswer: *a.SelectedAnswer}
	}

	score, err := h.Service.SubmitQuiz(c.Request.Context(), req.SessionID, req.AttackID, answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *QuizHandler) GetQuizScores(c *gin.Context) {
	scores, err := h.Service.GetQuizScores(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *QuizHandler) GetSubmissions(c *gin.Context) {
	submissions, err := h.Service.GetSubmissions(c.Request.Context(), c.Param("session_id"), c.Query("attack_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
