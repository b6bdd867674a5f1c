package http

import (
	"encoding/json"
	"net/http"

	"github.com/hrut1234/quizapi/internal/quiz"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case quiz.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case quiz.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case quiz.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "an unexpected error occurred"})
	}
}
