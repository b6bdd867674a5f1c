package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrut1234/quizapi/internal/quiz"
)

// ContentCache decorates a quiz.Store with a redis read-through cache for
// questions and quizzes. Both are immutable once created, so cached entries
// can never go stale; the TTL only bounds memory. Writes and the answer
// ledger pass straight through to the inner store.
type ContentCache struct {
	quiz.Store
	rdb *redis.Client
	ttl time.Duration
}

func NewContentCache(inner quiz.Store, rdb *redis.Client, ttl time.Duration) *ContentCache {
	return &ContentCache{Store: inner, rdb: rdb, ttl: ttl}
}

// New initializes the redis client behind a ContentCache.
func New(inner quiz.Store, addr, password string, ttl time.Duration) *ContentCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return NewContentCache(inner, rdb, ttl)
}

func (c *ContentCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *ContentCache) GetQuiz(ctx context.Context, id string) (quiz.Quiz, error) {
	key := "quiz:" + id
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var qz quiz.Quiz
		if json.Unmarshal(raw, &qz) == nil {
			return qz, nil
		}
	}
	qz, err := c.Store.GetQuiz(ctx, id)
	if err != nil {
		return quiz.Quiz{}, err
	}
	c.put(ctx, key, qz)
	return qz, nil
}

func (c *ContentCache) GetQuestion(ctx context.Context, id string) (quiz.Question, error) {
	key := "question:" + id
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var q quiz.Question
		if json.Unmarshal(raw, &q) == nil {
			return q, nil
		}
	}
	q, err := c.Store.GetQuestion(ctx, id)
	if err != nil {
		return quiz.Question{}, err
	}
	c.put(ctx, key, q)
	return q, nil
}

// put is best effort: a cache write failure never fails the read.
func (c *ContentCache) put(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}
