package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// nudgeKeyFormat 提醒去重Key: sender:{sender_id}:notified:{receiver_id}
const nudgeKeyFormat = "sender:%d:notified:%d"

// DedupRepository 提醒去重（每天每对发送者/接收者一次）
type DedupRepository struct {
	rdb *redis.Client
	loc *time.Location
}

// NewDedupRepository 创建去重仓库，loc 决定"一天"的边界
func NewDedupRepository(rdb *redis.Client, loc *time.Location) *DedupRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &DedupRepository{rdb: rdb, loc: loc}
}

// BuildNudgeKey 构建提醒去重Key
func BuildNudgeKey(senderID, receiverID int64) string {
	return fmt.Sprintf(nudgeKeyFormat, senderID, receiverID)
}

// EndOfDay 返回 t 所在日（loc 时区）的下一个零点
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// ttlUntilEndOfDay 到当日结束的剩余时间，至少 1 秒
func ttlUntilEndOfDay(now time.Time, loc *time.Location) time.Duration {
	ttl := EndOfDay(now, loc).Sub(now)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

// CanNotify 今天是否还未提醒过（只读）
func (r *DedupRepository) CanNotify(ctx context.Context, senderID, receiverID int64) (bool, error) {
	n, err := r.rdb.Exists(ctx, BuildNudgeKey(senderID, receiverID)).Result()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// CheckAndMark 原子地检查并标记，day 所在日结束时自动过期
// 返回 true 表示本次标记成功（今天第一次提醒）
func (r *DedupRepository) CheckAndMark(ctx context.Context, senderID, receiverID int64, day time.Time) (bool, error) {
	key := BuildNudgeKey(senderID, receiverID)
	ok, err := r.rdb.SetNX(ctx, key, day.Unix(), ttlUntilEndOfDay(day, r.loc)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark nudge: %w", err)
	}
	return ok, nil
}

// Unmark 撤销标记，通知落库失败时使用
func (r *DedupRepository) Unmark(ctx context.Context, senderID, receiverID int64) error {
	return r.rdb.Del(ctx, BuildNudgeKey(senderID, receiverID)).Err()
}
