package quiz

import "context"

// Store is the persistence boundary for quizzes, questions and results.
//
// Implementations must make PutQuestion/PutQuiz an atomic get-or-insert per
// content hash (two concurrent creators of identical content both observe the
// winner), and AppendAnswer an atomic read-modify-write per (quiz_id, user_id)
// key.
type Store interface {
	// PutQuestion inserts q unless a question with the same content hash
	// already exists, and returns the stored question either way.
	PutQuestion(ctx context.Context, q Question) (Question, error)
	GetQuestion(ctx context.Context, id string) (Question, error)

	// PutQuiz inserts qz unless a quiz with the same content hash already
	// exists, and returns the stored quiz either way.
	PutQuiz(ctx context.Context, qz Quiz) (Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	// GetQuizByHash returns NotFoundError{Kind: "quiz"} when no quiz has the
	// given content hash.
	GetQuizByHash(ctx context.Context, hash string) (Quiz, error)
	ListQuizIDs(ctx context.Context) ([]string, error)

	// AppendAnswer appends rec to the (quizID, userID) result, creating the
	// result on first use, bumping the score when rec.IsCorrect, and failing
	// with ConflictError when rec.QuestionID was already answered. The whole
	// check-append-replace is atomic.
	AppendAnswer(ctx context.Context, quizID, userID string, rec AnswerRecord) (UserQuizResult, error)
	// GetResult returns NotFoundError{Kind: "result"} when the pair has never
	// answered anything.
	GetResult(ctx context.Context, quizID, userID string) (UserQuizResult, error)
	ListUserResults(ctx context.Context, userID string) ([]UserQuizResult, error)
}
