package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/hrut1234/quizapi/internal/quiz"
)

// Mount registers the quiz API on r. Callers that want the reference
// trailing-slash paths should also install middleware.StripSlashes.
func Mount(r chi.Router, svc *quiz.Service) {
	r.Post("/quiz", CreateQuizHandler(svc))
	r.Get("/quiz/{quizID}", GetQuizHandler(svc))
	r.Get("/question/{questionID}", GetQuestionHandler(svc))
	r.Post("/quiz/{quizID}/question/{questionID}/answer", SubmitAnswerHandler(svc))
	r.Get("/quiz/{quizID}/result/{userID}", GetResultsHandler(svc))
	r.Get("/quiz/{quizID}/progress/{userID}", GetUserProgressHandler(svc))
	r.Get("/user/{userID}/scores", GetUserScoresHandler(svc))
	r.Get("/quizzes", ListQuizzesHandler(svc))
}
