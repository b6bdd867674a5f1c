package quiz

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MinOptions is the uniform lower bound on answer options per question.
	MinOptions = 2

	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

// Service implements the core operations on top of an injected Store:
// dedup-aware creation, conflict-checked answer submission and the read-side
// views. It owns all input validation; stores only enforce atomicity.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func validateQuestion(text string, options []string, correctOption int) error {
	if strings.TrimSpace(text) == "" {
		return validationf("question text must not be empty")
	}
	if len(options) < MinOptions {
		return validationf("question needs at least %d options", MinOptions)
	}
	if correctOption < 0 || correctOption >= len(options) {
		return validationf("correct_option %d out of range for %d options", correctOption, len(options))
	}
	return nil
}

// CreateQuestion is a get-or-insert keyed by content hash. When a question
// with the same text and options already exists its id is returned and the
// new correct option is ignored: existing content wins.
func (s *Service) CreateQuestion(ctx context.Context, text string, options []string, correctOption int) (string, error) {
	if err := validateQuestion(text, options, correctOption); err != nil {
		return "", err
	}
	stored, err := s.store.PutQuestion(ctx, Question{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       options,
		CorrectOption: correctOption,
		ContentHash:   HashQuestion(text, options),
	})
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

// CreateQuiz validates every payload up front, returns the existing quiz id
// when the content hash matches (without touching the question store), and
// otherwise creates-or-reuses each question in payload order before inserting
// the quiz itself.
func (s *Service) CreateQuiz(ctx context.Context, title string, questions []QuestionInput) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", validationf("quiz title must not be empty")
	}
	if len(questions) == 0 {
		return "", validationf("quiz needs at least one question")
	}
	for i, q := range questions {
		if err := validateQuestion(q.Text, q.Options, q.CorrectOption); err != nil {
			return "", validationf("question %d: %v", i, err)
		}
	}

	hash := HashQuiz(title, questions)
	existing, err := s.store.GetQuizByHash(ctx, hash)
	if err == nil {
		return existing.ID, nil
	}
	if !IsNotFound(err) {
		return "", err
	}

	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		id, err := s.CreateQuestion(ctx, q.Text, q.Options, q.CorrectOption)
		if err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	stored, err := s.store.PutQuiz(ctx, Quiz{
		ID:          uuid.NewString(),
		Title:       title,
		QuestionIDs: ids,
		ContentHash: hash,
	})
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

// SubmitAnswer checks its preconditions in a fixed order (quiz, question,
// user, option, not-already-answered), then grades and appends atomically via
// the store. A second submission for the same question fails with
// ConflictError and leaves the first record untouched.
func (s *Service) SubmitAnswer(ctx context.Context, quizID, questionID, userID string, selectedOption int) (SubmitOutcome, error) {
	if _, err := s.store.GetQuiz(ctx, quizID); err != nil {
		return SubmitOutcome{}, err
	}
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return SubmitOutcome{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return SubmitOutcome{}, validationf("user id must not be empty")
	}
	if selectedOption < 0 || selectedOption >= len(q.Options) {
		return SubmitOutcome{}, validationf("selected_option %d out of range for %d options", selectedOption, len(q.Options))
	}
	rec := scoreAnswer(q, selectedOption)
	if _, err := s.store.AppendAnswer(ctx, quizID, userID, rec); err != nil {
		return SubmitOutcome{}, err
	}
	return outcomeFor(rec, q), nil
}

// QuizView is a quiz resolved for display. Correct answers are stripped.
type QuizView struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Questions []QuestionView `json:"questions"`
}

type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

func (s *Service) GetQuiz(ctx context.Context, quizID string) (QuizView, error) {
	var qz Quiz
	err := s.readRetry(ctx, func(ctx context.Context) error {
		var e error
		qz, e = s.store.GetQuiz(ctx, quizID)
		return e
	})
	if err != nil {
		return QuizView{}, err
	}
	view := QuizView{ID: qz.ID, Title: qz.Title, Questions: make([]QuestionView, 0, len(qz.QuestionIDs))}
	for _, id := range qz.QuestionIDs {
		q, err := s.store.GetQuestion(ctx, id)
		if err != nil {
			return QuizView{}, err
		}
		view.Questions = append(view.Questions, QuestionView{ID: q.ID, Text: q.Text, Options: q.Options})
	}
	return view, nil
}

func (s *Service) GetQuestion(ctx context.Context, questionID string) (QuestionView, error) {
	var q Question
	err := s.readRetry(ctx, func(ctx context.Context) error {
		var e error
		q, e = s.store.GetQuestion(ctx, questionID)
		return e
	})
	if err != nil {
		return QuestionView{}, err
	}
	return QuestionView{ID: q.ID, Text: q.Text, Options: q.Options}, nil
}

func (s *Service) ListQuizIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.readRetry(ctx, func(ctx context.Context) error {
		var e error
		ids, e = s.store.ListQuizIDs(ctx)
		return e
	})
	return ids, err
}

// GetUserProgress reads the ledger leniently: a pair that never answered gets
// a zero-value result, not an error.
func (s *Service) GetUserProgress(ctx context.Context, quizID, userID string) (UserQuizResult, error) {
	res, err := s.GetResults(ctx, quizID, userID)
	if IsNotFound(err) {
		return UserQuizResult{QuizID: quizID, UserID: userID, Answers: []AnswerRecord{}}, nil
	}
	return res, err
}

// GetResults is the strict ledger read: absence is NotFoundError.
func (s *Service) GetResults(ctx context.Context, quizID, userID string) (UserQuizResult, error) {
	var res UserQuizResult
	err := s.readRetry(ctx, func(ctx context.Context) error {
		var e error
		res, e = s.store.GetResult(ctx, quizID, userID)
		return e
	})
	return res, err
}

// GetUserScores lists (quiz, score) pairs across every quiz the user answered
// in. An unknown user yields an empty slice; the transport decides whether
// that is a 404.
func (s *Service) GetUserScores(ctx context.Context, userID string) ([]QuizScore, error) {
	var results []UserQuizResult
	err := s.readRetry(ctx, func(ctx context.Context) error {
		var e error
		results, e = s.store.ListUserResults(ctx, userID)
		return e
	})
	if err != nil {
		return nil, err
	}
	scores := make([]QuizScore, 0, len(results))
	for _, r := range results {
		scores = append(scores, QuizScore{QuizID: r.QuizID, Score: r.Score})
	}
	return scores, nil
}

// readRetry runs fn up to readAttempts times with backoff, but only while the
// failure is transient. Validation, not-found and conflict outcomes return on
// the first try. Writes are never routed through here; their transaction is
// the unit that either fully applies or not at all.
func (s *Service) readRetry(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if err = fn(ctx); err == nil || !IsTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(readBackoff << attempt):
		}
	}
	return err
}
