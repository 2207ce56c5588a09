package handlers

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Sessions *SessionHandler
	Attacks  *AttackHandler
	Progress *ProgressHandler
	Quiz     *QuizHandler
	Status   *StatusHandler
}

// RegisterRoutes mounts the lab API under /api plus /health. The write
// middleware (rate limiting) wraps only routes that persist data.
func (h *Handlers) RegisterRoutes(r *gin.Engine, write ...gin.HandlerFunc) {
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(write[:len(write):len(write)], handler)
	}

	r.GET("/health", h.Status.Health)

	api := r.Group("/api")
	{
		api.GET("/", h.Status.Root)
		api.GET("/status", h.Status.ListStatusChecks)
		api.POST("/status", guarded(h.Status.CreateStatusCheck)...)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", guarded(h.Sessions.CreateSession)...)
			sessions.GET("/:id", h.Sessions.GetSession)
		}

		attacks := api.Group("/attacks")
		{
			attacks.GET("", h.Attacks.ListAttacks)
			attacks.GET("/:id", h.Attacks.GetAttack)
			attacks.POST("/reload", guarded(h.Attacks.ReloadCatalog)...)
		}

		progress := api.Group("/progress")
		{
			progress.POST("", guarded(h.Progress.RecordProgress)...)
			progress.GET("/:session_id", h.Progress.GetProgress)
		}

		quiz := api.Group("/quiz")
		{
			quiz.POST("/submit", guarded(h.Quiz.SubmitQuiz)...)
			quiz.GET("/scores/:session_id", h.Quiz.GetQuizScores)
			quiz.GET("/submissions/:session_id", h.Quiz.GetSubmissions)
		}
	}
}
