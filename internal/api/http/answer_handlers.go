package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hrut1234/quizapi/internal/quiz"
)

type answerResponse struct {
	Correct       bool `json:"correct"`
	CorrectAnswer *int `json:"correct_answer"`
}

// SubmitAnswerHandler records one answer for the user named by the User-ID
// header. A repeat submission for the same question comes back as 409.
func SubmitAnswerHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("User-ID")
		if strings.TrimSpace(userID) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "User-ID header is required"})
			return
		}
		var req struct {
			SelectedOption *int `json:"selected_option"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SelectedOption == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "selected_option is required"})
			return
		}
		out, err := svc.SubmitAnswer(r.Context(),
			chi.URLParam(r, "quizID"), chi.URLParam(r, "questionID"), userID, *req.SelectedOption)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answerResponse{Correct: out.Correct, CorrectAnswer: out.CorrectOption})
	}
}
