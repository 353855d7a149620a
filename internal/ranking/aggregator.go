package ranking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"sudooom.score/internal/model"
	"sudooom.score/internal/repository"
)

// GroupDirectory 群组目录
type GroupDirectory interface {
	FindGroup(ctx context.Context, id int64) (*model.Group, error)
	CurrentMembers(ctx context.Context, groupID int64) ([]int64, error)
}

// ActivitySource 运动记录来源，返回 [start, end) 内每个用户的得分合计
type ActivitySource interface {
	ScoresInRange(ctx context.Context, groupID int64, start, end time.Time) (map[int64]float64, error)
}

// Entry 排行榜条目
type Entry struct {
	UserID int64   `json:"userId,string"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

// Aggregator 按当前成员汇总窗口内得分并排名
type Aggregator struct {
	groups   GroupDirectory
	activity ActivitySource
	logger   *slog.Logger
}

// NewAggregator 创建排名聚合器
func NewAggregator(groups GroupDirectory, activity ActivitySource) *Aggregator {
	return &Aggregator{
		groups:   groups,
		activity: activity,
		logger:   slog.Default(),
	}
}

// Aggregate 生成群组在窗口 w 内的排行榜，覆盖且仅覆盖当前成员
func (a *Aggregator) Aggregate(ctx context.Context, groupID int64, w Window) ([]Entry, error) {
	members, err := a.groups.CurrentMembers(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, fmt.Errorf("group %d: %w", groupID, ErrGroupNotFound)
		}
		return nil, fmt.Errorf("%w: load members of group %d: %w", ErrUnavailable, groupID, err)
	}

	scores, err := a.activity.ScoresInRange(ctx, groupID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("%w: load scores of group %d: %w", ErrUnavailable, groupID, err)
	}

	entries, orphans := RankEntries(scores, members)
	if orphans > 0 {
		a.logger.Debug("dropped scores of non-members",
			"groupId", groupID,
			"window", w.String(),
			"count", orphans)
	}
	return entries, nil
}

// RankEntries 成员为准：无记录补 0，非成员的得分丢弃（返回丢弃数）
// 按得分降序、用户ID升序排序，并列共享名次，下一名次跳过并列人数（1,1,3）
func RankEntries(scores map[int64]float64, members []int64) ([]Entry, int) {
	entries := make([]Entry, 0, len(members))
	seen := make(map[int64]struct{}, len(members))
	for _, userID := range members {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		entries = append(entries, Entry{UserID: userID, Score: scores[userID]})
	}

	orphans := 0
	for userID := range scores {
		if _, ok := seen[userID]; !ok {
			orphans++
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries, orphans
}
