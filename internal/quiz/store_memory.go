package quiz

import (
	"context"
	"sort"
	"sync"
)

// memoryStore keeps everything behind one mutex. Good enough for tests and
// single-process dev use; the mutex makes the get-or-insert and the answer
// append trivially atomic.
type memoryStore struct {
	mu             sync.RWMutex
	questions      map[string]Question
	quizzes        map[string]Quiz
	questionByHash map[string]string // content_hash -> question id
	quizByHash     map[string]string // content_hash -> quiz id
	quizOrder      []string          // insertion order for stable enumeration
	results        map[string]UserQuizResult
}

func NewMemoryStore() Store {
	return &memoryStore{
		questions:      map[string]Question{},
		quizzes:        map[string]Quiz{},
		questionByHash: map[string]string{},
		quizByHash:     map[string]string{},
		results:        map[string]UserQuizResult{},
	}
}

func resultKey(quizID, userID string) string { return quizID + "\x00" + userID }

func (m *memoryStore) PutQuestion(_ context.Context, q Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.questionByHash[q.ContentHash]; ok {
		return m.questions[id], nil
	}
	m.questions[q.ID] = q
	m.questionByHash[q.ContentHash] = q.ID
	return q, nil
}

func (m *memoryStore) GetQuestion(_ context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, &NotFoundError{Kind: "question", Key: id}
	}
	return q, nil
}

func (m *memoryStore) PutQuiz(_ context.Context, qz Quiz) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.quizByHash[qz.ContentHash]; ok {
		return m.quizzes[id], nil
	}
	m.quizzes[qz.ID] = qz
	m.quizByHash[qz.ContentHash] = qz.ID
	m.quizOrder = append(m.quizOrder, qz.ID)
	return qz, nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qz, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, &NotFoundError{Kind: "quiz", Key: id}
	}
	return qz, nil
}

func (m *memoryStore) GetQuizByHash(_ context.Context, hash string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.quizByHash[hash]
	if !ok {
		return Quiz{}, &NotFoundError{Kind: "quiz", Key: hash}
	}
	return m.quizzes[id], nil
}

func (m *memoryStore) ListQuizIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.quizOrder))
	copy(out, m.quizOrder)
	return out, nil
}

func (m *memoryStore) AppendAnswer(_ context.Context, quizID, userID string, rec AnswerRecord) (UserQuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := resultKey(quizID, userID)
	res, ok := m.results[key]
	if !ok {
		res = UserQuizResult{QuizID: quizID, UserID: userID}
	}
	for _, a := range res.Answers {
		if a.QuestionID == rec.QuestionID {
			return UserQuizResult{}, &ConflictError{QuizID: quizID, UserID: userID, QuestionID: rec.QuestionID}
		}
	}
	res.Answers = append(append([]AnswerRecord{}, res.Answers...), rec)
	if rec.IsCorrect {
		res.Score++
	}
	m.results[key] = res
	return res, nil
}

func (m *memoryStore) GetResult(_ context.Context, quizID, userID string) (UserQuizResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.results[resultKey(quizID, userID)]
	if !ok {
		return UserQuizResult{}, &NotFoundError{Kind: "result", Key: quizID + "/" + userID}
	}
	return res, nil
}

func (m *memoryStore) ListUserResults(_ context.Context, userID string) ([]UserQuizResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []UserQuizResult
	for _, res := range m.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuizID < out[j].QuizID })
	return out, nil
}
