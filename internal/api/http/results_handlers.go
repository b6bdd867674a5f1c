package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrut1234/quizapi/internal/quiz"
)

// GetResultsHandler is the strict read: a pair that never answered is a 404.
func GetResultsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.GetResults(r.Context(), chi.URLParam(r, "quizID"), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GetUserProgressHandler always answers 200; a pair that never answered gets
// the zero-value result.
func GetUserProgressHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.GetUserProgress(r.Context(), chi.URLParam(r, "quizID"), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func GetUserScoresHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		scores, err := svc.GetUserScores(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(scores) == 0 {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "no scores found for user"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "scores": scores})
	}
}
