package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNudgeKey(t *testing.T) {
	assert.Equal(t, "sender:1:notified:2", BuildNudgeKey(1, 2))
	assert.Equal(t, "sender:2:notified:1", BuildNudgeKey(2, 1))
}

func TestEndOfDay(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   time.Time
		loc  *time.Location
		want time.Time
	}{
		{
			name: "utc midday",
			in:   time.Date(2024, 1, 22, 12, 30, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "seoul already next day",
			in:   time.Date(2024, 1, 22, 16, 0, 0, 0, time.UTC),
			loc:  seoul,
			want: time.Date(2024, 1, 24, 0, 0, 0, 0, seoul),
		},
		{
			name: "month rollover",
			in:   time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC),
			loc:  nil,
			want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(EndOfDay(tt.in, tt.loc)), "got %v", EndOfDay(tt.in, tt.loc))
		})
	}
}

func TestTTLUntilEndOfDay(t *testing.T) {
	now := time.Date(2024, 1, 22, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Hour, ttlUntilEndOfDay(now, time.UTC))

	almost := time.Date(2024, 1, 22, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Second, ttlUntilEndOfDay(almost, time.UTC))
}

// setupTestRedis 连接测试 Redis，不可用时跳过
func setupTestRedis(t *testing.T) *redis.Client {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("跳过集成测试: 无法连接 Redis: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestDedupRepository_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	repo := NewDedupRepository(rdb, time.UTC)
	ctx := context.Background()

	sender := time.Now().UnixNano()
	receiver := sender + 1
	t.Cleanup(func() { rdb.Del(context.Background(), BuildNudgeKey(sender, receiver)) })

	can, err := repo.CanNotify(ctx, sender, receiver)
	require.NoError(t, err)
	assert.True(t, can)

	now := time.Now()
	ok, err := repo.CheckAndMark(ctx, sender, receiver, now)
	require.NoError(t, err)
	assert.True(t, ok, "first nudge of the day should be accepted")

	ok, err = repo.CheckAndMark(ctx, sender, receiver, now)
	require.NoError(t, err)
	assert.False(t, ok, "second nudge of the day should be rejected")

	can, err = repo.CanNotify(ctx, sender, receiver)
	require.NoError(t, err)
	assert.False(t, can)

	// 反方向是独立的 Key
	can, err = repo.CanNotify(ctx, receiver, sender)
	require.NoError(t, err)
	assert.True(t, can)

	ttl, err := rdb.TTL(ctx, BuildNudgeKey(sender, receiver)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 24*time.Hour)

	require.NoError(t, repo.Unmark(ctx, sender, receiver))
	can, err = repo.CanNotify(ctx, sender, receiver)
	require.NoError(t, err)
	assert.True(t, can, fmt.Sprintf("key %s should be gone", BuildNudgeKey(sender, receiver)))
}
