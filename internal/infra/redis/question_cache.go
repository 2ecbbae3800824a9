package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"daily-trivia-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionSource fetches day-scoped questions from a backing store.
type QuestionSource interface {
	QuestionsForDay(ctx context.Context, day domain.Day) ([]domain.Question, error)
}

// QuestionCache caches each day's question set in Redis and falls back to a
// source on cache miss.
// Sets are stored as: SET questions:day:{YYYY-MM-DD} {json} EX {ttl}
type QuestionCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) QuestionsForDay(ctx context.Context, day domain.Day) ([]domain.Question, error) {
	key := c.dayKey(day)

	if questions, ok := c.fromCache(ctx, key); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(string(day), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.fromCache(ctx, key); ok {
			return questions, nil
		}

		questions, err := c.source.QuestionsForDay(ctx, day)
		if err != nil {
			return nil, err
		}

		// Empty days stay uncached so newly seeded questions show up
		// without waiting out the TTL.
		if len(questions) > 0 {
			if data, err := json.Marshal(questions); err == nil {
				_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
			}
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) fromCache(ctx context.Context, key string) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (c *QuestionCache) dayKey(day domain.Day) string {
	return "questions:day:" + string(day)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
