package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	api "github.com/hrut1234/quizapi/internal/api/http"
	"github.com/hrut1234/quizapi/internal/quiz"
)

func newTestRouter() http.Handler {
	svc := quiz.NewService(quiz.NewMemoryStore())
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	api.Mount(r, svc)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, userID, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("User-ID", userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: bad response body %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, decoded
}

const geoQuizBody = `{
	"title": "Geo",
	"questions": [
		{"text": "Capital of France", "options": ["Paris", "Rome"], "correct_option": 0},
		{"text": "Capital of Italy", "options": ["Paris", "Rome"], "correct_option": 1}
	]
}`

func createGeoQuiz(t *testing.T, h http.Handler) string {
	t.Helper()
	rec, body := doJSON(t, h, "POST", "/quiz/", "", geoQuizBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create quiz: status %d body %s", rec.Code, rec.Body.String())
	}
	id, _ := body["quiz_id"].(string)
	if id == "" {
		t.Fatalf("create quiz: no quiz_id in %v", body)
	}
	return id
}

func quizQuestionIDs(t *testing.T, h http.Handler, quizID string) []string {
	t.Helper()
	rec, body := doJSON(t, h, "GET", "/quiz/"+quizID+"/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get quiz: status %d", rec.Code)
	}
	questions, _ := body["questions"].([]any)
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		m := q.(map[string]any)
		if _, leaked := m["correct_option"]; leaked {
			t.Fatal("quiz view must not expose correct_option")
		}
		ids = append(ids, m["id"].(string))
	}
	return ids
}

func TestCreateAndGetQuiz(t *testing.T) {
	h := newTestRouter()
	quizID := createGeoQuiz(t, h)

	rec, body := doJSON(t, h, "GET", "/quiz/"+quizID+"/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get quiz: status %d", rec.Code)
	}
	if body["id"] != quizID || body["title"] != "Geo" {
		t.Fatalf("unexpected quiz payload: %v", body)
	}
	if ids := quizQuestionIDs(t, h, quizID); len(ids) != 2 {
		t.Fatalf("expected 2 questions, got %v", ids)
	}

	// Identical content dedupes to the same id.
	rec, body = doJSON(t, h, "POST", "/quiz/", "", geoQuizBody)
	if rec.Code != http.StatusCreated || body["quiz_id"] != quizID {
		t.Fatalf("duplicate create: status %d body %v", rec.Code, body)
	}

	rec, _ = doJSON(t, h, "GET", "/quiz/missing/", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown quiz: status %d", rec.Code)
	}
}

func TestCreateQuizValidationAndBadJSON(t *testing.T) {
	h := newTestRouter()

	rec, _ := doJSON(t, h, "POST", "/quiz/", "", `{"title": "  ", "questions": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid quiz: status %d", rec.Code)
	}
	rec, _ = doJSON(t, h, "POST", "/quiz/", "", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", rec.Code)
	}
}

func TestSubmitAnswerFlow(t *testing.T) {
	h := newTestRouter()
	quizID := createGeoQuiz(t, h)
	qids := quizQuestionIDs(t, h, quizID)
	answerPath := "/quiz/" + quizID + "/question/" + qids[0] + "/answer/"

	// Missing user header.
	rec, _ := doJSON(t, h, "POST", answerPath, "", `{"selected_option": 0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing header: status %d", rec.Code)
	}
	// Missing selected_option.
	rec, _ = doJSON(t, h, "POST", answerPath, "alice", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing option: status %d", rec.Code)
	}
	// Out-of-range option.
	rec, _ = doJSON(t, h, "POST", answerPath, "alice", `{"selected_option": 7}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range option: status %d", rec.Code)
	}

	// Correct answer: correct=true, correct_answer=null.
	rec, body := doJSON(t, h, "POST", answerPath, "alice", `{"selected_option": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status %d body %s", rec.Code, rec.Body.String())
	}
	if body["correct"] != true || body["correct_answer"] != nil {
		t.Fatalf("expected correct=true, correct_answer=null, got %v", body)
	}

	// Duplicate submission conflicts.
	rec, _ = doJSON(t, h, "POST", answerPath, "alice", `{"selected_option": 1}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: status %d", rec.Code)
	}

	// Wrong answer reveals the correct index.
	wrongPath := "/quiz/" + quizID + "/question/" + qids[1] + "/answer/"
	rec, body = doJSON(t, h, "POST", wrongPath, "alice", `{"selected_option": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("wrong answer: status %d", rec.Code)
	}
	if body["correct"] != false || body["correct_answer"] != float64(1) {
		t.Fatalf("expected correct=false, correct_answer=1, got %v", body)
	}

	// Unknown quiz / question map to 404.
	rec, _ = doJSON(t, h, "POST", "/quiz/missing/question/"+qids[0]+"/answer/", "alice", `{"selected_option": 0}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown quiz: status %d", rec.Code)
	}
	rec, _ = doJSON(t, h, "POST", "/quiz/"+quizID+"/question/missing/answer/", "alice", `{"selected_option": 0}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown question: status %d", rec.Code)
	}
}

func TestResultsProgressAndScores(t *testing.T) {
	h := newTestRouter()
	quizID := createGeoQuiz(t, h)
	qids := quizQuestionIDs(t, h, quizID)

	// Before any answer: results 404, progress 200 with zero score, scores 404.
	rec, _ := doJSON(t, h, "GET", "/quiz/"+quizID+"/result/alice/", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("results before answers: status %d", rec.Code)
	}
	rec, body := doJSON(t, h, "GET", "/quiz/"+quizID+"/progress/alice/", "", "")
	if rec.Code != http.StatusOK || body["score"] != float64(0) {
		t.Fatalf("progress before answers: status %d body %v", rec.Code, body)
	}
	rec, _ = doJSON(t, h, "GET", "/user/alice/scores/", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("scores before answers: status %d", rec.Code)
	}

	doJSON(t, h, "POST", "/quiz/"+quizID+"/question/"+qids[0]+"/answer/", "alice", `{"selected_option": 0}`)

	rec, body = doJSON(t, h, "GET", "/quiz/"+quizID+"/result/alice/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("results: status %d", rec.Code)
	}
	if body["quiz_id"] != quizID || body["user_id"] != "alice" || body["score"] != float64(1) {
		t.Fatalf("unexpected results payload: %v", body)
	}
	answers, _ := body["answers"].([]any)
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %v", body["answers"])
	}

	rec, body = doJSON(t, h, "GET", "/user/alice/scores/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("scores: status %d", rec.Code)
	}
	scores, _ := body["scores"].([]any)
	if body["user_id"] != "alice" || len(scores) != 1 {
		t.Fatalf("unexpected scores payload: %v", body)
	}
}

func TestListQuizzes(t *testing.T) {
	h := newTestRouter()

	rec, body := doJSON(t, h, "GET", "/quizzes/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	if ids, _ := body["quiz_ids"].([]any); len(ids) != 0 {
		t.Fatalf("expected empty listing, got %v", body)
	}

	quizID := createGeoQuiz(t, h)
	rec, body = doJSON(t, h, "GET", "/quizzes/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	ids, _ := body["quiz_ids"].([]any)
	if len(ids) != 1 || ids[0] != quizID {
		t.Fatalf("unexpected listing: %v", body)
	}
}
