package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists quizzes, questions and results in sqlite or postgres.
// Dedup relies on the UNIQUE(content_hash) constraints: PutQuestion/PutQuiz
// insert with ON CONFLICT DO NOTHING and then read back whichever row owns
// the hash, so concurrent creators of identical content agree on one id.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) (Question, error) {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, storeErr("put question", q.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (id,text,options_json,correct_option,content_hash,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (content_hash) DO NOTHING`,
		q.ID, q.Text, string(oj), q.CorrectOption, q.ContentHash, time.Now().Unix())
	if err != nil {
		return Question{}, storeErr("put question", q.ID, err)
	}
	row := s.db.QueryRowContext(ctx, `SELECT id,text,options_json,correct_option,content_hash FROM questions WHERE content_hash=$1`, q.ContentHash)
	return scanQuestion(row, q.ContentHash)
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,text,options_json,correct_option,content_hash FROM questions WHERE id=$1`, id)
	return scanQuestion(row, id)
}

func scanQuestion(row *sql.Row, key string) (Question, error) {
	var q Question
	var oj string
	if err := row.Scan(&q.ID, &q.Text, &oj, &q.CorrectOption, &q.ContentHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, &NotFoundError{Kind: "question", Key: key}
		}
		return Question{}, storeErr("get question", key, err)
	}
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return Question{}, storeErr("get question", key, err)
	}
	return q, nil
}

func (s *SQLStore) PutQuiz(ctx context.Context, qz Quiz) (Quiz, error) {
	qj, err := json.Marshal(qz.QuestionIDs)
	if err != nil {
		return Quiz{}, storeErr("put quiz", qz.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,question_ids_json,content_hash,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (content_hash) DO NOTHING`,
		qz.ID, qz.Title, string(qj), qz.ContentHash, time.Now().Unix())
	if err != nil {
		return Quiz{}, storeErr("put quiz", qz.ID, err)
	}
	return s.GetQuizByHash(ctx, qz.ContentHash)
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,question_ids_json,content_hash FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row, id)
}

func (s *SQLStore) GetQuizByHash(ctx context.Context, hash string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,question_ids_json,content_hash FROM quizzes WHERE content_hash=$1`, hash)
	return scanQuiz(row, hash)
}

func scanQuiz(row *sql.Row, key string) (Quiz, error) {
	var qz Quiz
	var qj string
	if err := row.Scan(&qz.ID, &qz.Title, &qj, &qz.ContentHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, &NotFoundError{Kind: "quiz", Key: key}
		}
		return Quiz{}, storeErr("get quiz", key, err)
	}
	if err := json.Unmarshal([]byte(qj), &qz.QuestionIDs); err != nil {
		return Quiz{}, storeErr("get quiz", key, err)
	}
	return qz, nil
}

func (s *SQLStore) ListQuizIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM quizzes ORDER BY created_at, id`)
	if err != nil {
		return nil, storeErr("list quizzes", "", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("list quizzes", "", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list quizzes", "", err)
	}
	return ids, nil
}

// AppendAnswer runs the check-append-replace cycle in one transaction.
// Postgres takes a row lock on the result; sqlite serializes writers on its
// own. The stored record is replaced wholesale, never patched.
func (s *SQLStore) AppendAnswer(ctx context.Context, quizID, userID string, rec AnswerRecord) (UserQuizResult, error) {
	key := quizID + "/" + userID
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO results (quiz_id,user_id,score,answers_json,updated_at)
		VALUES ($1,$2,0,'[]',$3)
		ON CONFLICT (quiz_id,user_id) DO NOTHING`, quizID, userID, time.Now().Unix())
	if err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}

	sel := `SELECT score, answers_json FROM results WHERE quiz_id=$1 AND user_id=$2`
	if s.driver == "postgres" {
		sel += " FOR UPDATE"
	}
	res := UserQuizResult{QuizID: quizID, UserID: userID}
	var aj string
	if err := tx.QueryRowContext(ctx, sel, quizID, userID).Scan(&res.Score, &aj); err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}
	if err := json.Unmarshal([]byte(aj), &res.Answers); err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}

	for _, a := range res.Answers {
		if a.QuestionID == rec.QuestionID {
			return UserQuizResult{}, &ConflictError{QuizID: quizID, UserID: userID, QuestionID: rec.QuestionID}
		}
	}
	res.Answers = append(res.Answers, rec)
	if rec.IsCorrect {
		res.Score++
	}

	buf, err := json.Marshal(res.Answers)
	if err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}
	_, err = tx.ExecContext(ctx, `UPDATE results SET score=$3, answers_json=$4, updated_at=$5 WHERE quiz_id=$1 AND user_id=$2`,
		quizID, userID, res.Score, string(buf), time.Now().Unix())
	if err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}
	if err := tx.Commit(); err != nil {
		return UserQuizResult{}, storeErr("append answer", key, err)
	}
	return res, nil
}

func (s *SQLStore) GetResult(ctx context.Context, quizID, userID string) (UserQuizResult, error) {
	key := quizID + "/" + userID
	res := UserQuizResult{QuizID: quizID, UserID: userID}
	var aj string
	err := s.db.QueryRowContext(ctx, `SELECT score, answers_json FROM results WHERE quiz_id=$1 AND user_id=$2`, quizID, userID).
		Scan(&res.Score, &aj)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserQuizResult{}, &NotFoundError{Kind: "result", Key: key}
		}
		return UserQuizResult{}, storeErr("get result", key, err)
	}
	if err := json.Unmarshal([]byte(aj), &res.Answers); err != nil {
		return UserQuizResult{}, storeErr("get result", key, err)
	}
	return res, nil
}

func (s *SQLStore) ListUserResults(ctx context.Context, userID string) ([]UserQuizResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT quiz_id, score, answers_json FROM results WHERE user_id=$1 ORDER BY quiz_id`, userID)
	if err != nil {
		return nil, storeErr("list results", userID, err)
	}
	defer rows.Close()
	var out []UserQuizResult
	for rows.Next() {
		res := UserQuizResult{UserID: userID}
		var aj string
		if err := rows.Scan(&res.QuizID, &res.Score, &aj); err != nil {
			return nil, storeErr("list results", userID, err)
		}
		if err := json.Unmarshal([]byte(aj), &res.Answers); err != nil {
			return nil, storeErr("list results", userID, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list results", userID, err)
	}
	return out, nil
}
