package ranking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sudooom.score/internal/repository"
)

// Leaderboard 群组周排行榜
type Leaderboard struct {
	GroupID int64   `json:"groupId,string"`
	Window  Window  `json:"window"`
	Entries []Entry `json:"entries"`
}

// Service 周排名查询入口，只读，可并发调用
type Service struct {
	groups     GroupDirectory
	aggregator *Aggregator
	loc        *time.Location
	logger     *slog.Logger
}

// NewService 创建排名服务，loc 为计算自然周的时区
func NewService(groups GroupDirectory, activity ActivitySource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		groups:     groups,
		aggregator: NewAggregator(groups, activity),
		loc:        loc,
		logger:     slog.Default(),
	}
}

// Location 排名时区
func (s *Service) Location() *time.Location {
	return s.loc
}

// GetWeeklyRanking 获取群组在 ref 之前最近完整周的排行榜
// 错误可用 Classify 归类：ErrGroupNotFound / ErrTooNew / ErrUnavailable
func (s *Service) GetWeeklyRanking(ctx context.Context, groupID int64, ref time.Time) (*Leaderboard, error) {
	w := LastCompletedWeek(ref, s.loc)

	group, err := s.groups.FindGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, fmt.Errorf("group %d: %w", groupID, ErrGroupNotFound)
		}
		return nil, fmt.Errorf("%w: find group %d: %w", ErrUnavailable, groupID, err)
	}

	if err := CheckEligibility(group.CreateAt, w); err != nil {
		return nil, fmt.Errorf("group %d created %s, window %s: %w",
			groupID, group.CreateAt.In(s.loc).Format(time.DateOnly), w, err)
	}

	entries, err := s.aggregator.Aggregate(ctx, groupID, w)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("weekly ranking computed",
		"groupId", groupID,
		"window", w.String(),
		"members", len(entries))

	return &Leaderboard{
		GroupID: groupID,
		Window:  w,
		Entries: entries,
	}, nil
}
