package questionbank

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bosserz/ged-assessment/models"
	"github.com/redis/rueidis"
)

const redisQuestionsKey = "questions:set"

// CachedSource serves a Source through Redis. Redis errors are logged and
// fall through to the wrapped source.
type CachedSource struct {
	source Source
	redis  rueidis.Client
	ttl    time.Duration
}

func NewCachedSource(source Source, redis rueidis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, redis: redis, ttl: ttl}
}

func (s *CachedSource) Questions(ctx context.Context) ([]models.Question, error) {
	ctx, span := tracer.Start(ctx, "CachedSource.Questions")
	defer span.End()

	cached, err := s.redis.Do(ctx, s.redis.B().Get().Key(redisQuestionsKey).Build()).AsBytes()
	switch {
	case err == nil:
		var questions []models.Question
		if err := json.Unmarshal(cached, &questions); err == nil {
			return questions, nil
		}
		slog.Warn("discarding malformed cached questions", "error", err)
	case !rueidis.IsRedisNil(err):
		slog.Warn("question cache unavailable", "error", err)
	}

	questions, err := s.source.Questions(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(questions)
	if err != nil {
		return questions, nil
	}

	if err := s.redis.Do(ctx, s.redis.B().Set().Key(redisQuestionsKey).Value(rueidis.BinaryString(encoded)).Ex(s.ttl).Build()).Error(); err != nil {
		slog.Warn("failed to cache questions", "error", err)
	}

	return questions, nil
}

// Invalidate drops the cached question set.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.redis.Do(ctx, s.redis.B().Del().Key(redisQuestionsKey).Build()).Error()
}
