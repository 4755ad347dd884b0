package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// Redis key prefixes
	quizKeyPrefix   = "quiz:"
	rateLimitPrefix = "ratelimit:"
)

// Manager keeps per-quiz history and request counters in Redis
type Manager struct {
	redis      *redis.Client
	historyTTL time.Duration
}

// Ensure Manager implements the history interface.
var _ domain.QuizHistory = (*Manager)(nil)

// NewManager creates a new session manager. Quiz histories expire
// historyTTL after the last recorded question.
func NewManager(redis *redis.Client, historyTTL time.Duration) *Manager {
	return &Manager{redis: redis, historyTTL: historyTTL}
}

// Asked returns the question IDs already served for a quiz
func (m *Manager) Asked(ctx context.Context, quizID string) ([]int, error) {
	members, err := m.redis.SMembers(ctx, quizKeyPrefix+quizID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz history: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("corrupt quiz history entry %q: %w", member, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Record marks a question as served for a quiz and refreshes its expiry
func (m *Manager) Record(ctx context.Context, quizID string, questionID int) error {
	key := quizKeyPrefix + quizID
	_, err := m.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, questionID)
		pipe.Expire(ctx, key, m.historyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record quiz history: %w", err)
	}
	return nil
}

// Forget drops the history of a quiz
func (m *Manager) Forget(ctx context.Context, quizID string) error {
	if err := m.redis.Del(ctx, quizKeyPrefix+quizID).Err(); err != nil {
		return fmt.Errorf("failed to delete quiz history: %w", err)
	}
	return nil
}

// RateLimit counts a request from client and reports whether it exceeds
// limit within the current window.
func (m *Manager) RateLimit(ctx context.Context, client string, limit int, window time.Duration) (bool, error) {
	key := rateLimitPrefix + client
	count, err := m.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		m.redis.Expire(ctx, key, window)
	}

	return count > int64(limit), nil
}
