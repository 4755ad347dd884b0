package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager connects to the Redis named by TRIVIA_TEST_REDIS_ADDR
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	addr := os.Getenv("TRIVIA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRIVIA_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	return NewManager(client, time.Minute)
}

func TestManager_History(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	quizID := uuid.NewString()
	t.Cleanup(func() { m.Forget(ctx, quizID) })

	asked, err := m.Asked(ctx, quizID)
	require.NoError(t, err)
	assert.Empty(t, asked)

	require.NoError(t, m.Record(ctx, quizID, 3))
	require.NoError(t, m.Record(ctx, quizID, 7))
	require.NoError(t, m.Record(ctx, quizID, 3))

	asked, err = m.Asked(ctx, quizID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{3, 7}, asked)

	ttl, err := m.redis.TTL(ctx, quizKeyPrefix+quizID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestManager_Forget(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	quizID := uuid.NewString()

	require.NoError(t, m.Record(ctx, quizID, 1))
	require.NoError(t, m.Forget(ctx, quizID))

	asked, err := m.Asked(ctx, quizID)
	require.NoError(t, err)
	assert.Empty(t, asked)
}

func TestManager_RateLimit(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	client := uuid.NewString()
	t.Cleanup(func() { m.redis.Del(ctx, rateLimitPrefix+client) })

	for i := 0; i < 3; i++ {
		limited, err := m.RateLimit(ctx, client, 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, limited, "request %d", i+1)
	}

	limited, err := m.RateLimit(ctx, client, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, limited)
}
