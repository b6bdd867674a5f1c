package quiz

// Question is immutable once stored. Its identity is ContentHash, computed
// from text and options only: CorrectOption is deliberately excluded, so the
// same prompt with a different answer key dedupes to the first stored version.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	ContentHash   string   `json:"content_hash"`
}

// Quiz is immutable once stored. QuestionIDs keep the authoring order for
// display; identity is ContentHash, which is order-insensitive.
type Quiz struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	QuestionIDs []string `json:"question_ids"`
	ContentHash string   `json:"content_hash"`
}

// AnswerRecord is one accepted submission. Records are append-only.
type AnswerRecord struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// UserQuizResult is the ledger for one (quiz, user) pair. Answers hold at
// most one record per question, in submission order; Score always equals the
// number of correct records.
type UserQuizResult struct {
	QuizID  string         `json:"quiz_id"`
	UserID  string         `json:"user_id"`
	Score   int            `json:"score"`
	Answers []AnswerRecord `json:"answers"`
}

// QuestionInput is one question payload of a create-quiz request.
type QuestionInput struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// QuizScore is one row of a user's score listing.
type QuizScore struct {
	QuizID string `json:"quiz_id"`
	Score  int    `json:"score"`
}
