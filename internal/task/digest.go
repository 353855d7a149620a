package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	scoreNats "sudooom.score/internal/nats"
	"sudooom.score/internal/ranking"
)

// GroupLister 列出需要出周榜的群组
type GroupLister interface {
	ListActiveGroupIDs(ctx context.Context) ([]int64, error)
}

// Ranker 周排名计算
type Ranker interface {
	GetWeeklyRanking(ctx context.Context, groupID int64, ref time.Time) (*ranking.Leaderboard, error)
}

// RankingPublisher 周榜事件发布
type RankingPublisher interface {
	PublishWeeklyRanking(event *scoreNats.WeeklyRankingEvent) error
}

// DigestReport 一次周榜任务的结果
type DigestReport struct {
	Window    ranking.Window
	Total     int
	Published int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// DigestOptions 周榜任务配置
type DigestOptions struct {
	Schedule    string
	Concurrency int
	Location    *time.Location
	// OnReport 每次运行结束后回调，用于指标上报
	OnReport func(*DigestReport)
}

// WeeklyDigest 周榜任务：每周计算所有群组上周排行并发布事件
type WeeklyDigest struct {
	groups    GroupLister
	ranker    Ranker
	publisher RankingPublisher
	opts      DigestOptions
	cron      *cron.Cron
	now       func() time.Time
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger
	running   bool
	runningMu sync.Mutex
}

// NewWeeklyDigest 创建周榜任务
func NewWeeklyDigest(groups GroupLister, ranker Ranker, publisher RankingPublisher, opts DigestOptions) *WeeklyDigest {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &WeeklyDigest{
		groups:    groups,
		ranker:    ranker,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
		logger:    slog.Default(),
	}
}

// Run 计算 ref 对应窗口内所有群组的周榜，最多 Concurrency 个并发
// 新建群组跳过，单个群组失败不影响其他群组
func (d *WeeklyDigest) Run(ctx context.Context, ref time.Time) (*DigestReport, error) {
	start := d.now()
	report := &DigestReport{Window: ranking.LastCompletedWeek(ref, d.opts.Location)}

	groupIDs, err := d.groups.ListActiveGroupIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	report.Total = len(groupIDs)

	var published, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)
	for _, groupID := range groupIDs {
		groupID := groupID // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			board, err := d.ranker.GetWeeklyRanking(gctx, groupID, ref)
			switch ranking.Classify(err) {
			case ranking.OutcomeOK:
			case ranking.OutcomeTooNew, ranking.OutcomeNotFound:
				skipped.Add(1)
				return nil
			default:
				// 上层取消时整体退出
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return ctx.Err()
				}
				failed.Add(1)
				d.logger.Warn("Weekly ranking failed", "groupId", groupID, "error", err)
				return nil
			}

			event := &scoreNats.WeeklyRankingEvent{
				GroupID:   board.GroupID,
				Window:    board.Window,
				Entries:   board.Entries,
				Timestamp: d.now().UnixMilli(),
			}
			if err := d.publisher.PublishWeeklyRanking(event); err != nil {
				failed.Add(1)
				d.logger.Warn("Weekly ranking publish failed", "groupId", groupID, "error", err)
				return nil
			}
			published.Add(1)
			return nil
		})
	}
	waitErr := g.Wait()

	report.Published = int(published.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())
	report.Duration = d.now().Sub(start)

	if d.opts.OnReport != nil {
		d.opts.OnReport(report)
	}

	d.logger.Info("Weekly digest finished",
		"window", report.Window.String(),
		"total", report.Total,
		"published", report.Published,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration)

	if waitErr != nil {
		return report, waitErr
	}
	return report, nil
}

// Start 按 Schedule 启动定时任务
func (d *WeeklyDigest) Start() error {
	d.runningMu.Lock()
	defer d.runningMu.Unlock()
	if d.running {
		return errors.New("weekly digest already running")
	}

	c := cron.New(cron.WithLocation(d.opts.Location))
	if _, err := c.AddFunc(d.opts.Schedule, d.runScheduled); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", d.opts.Schedule, err)
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.cron = c
	d.running = true
	c.Start()

	d.logger.Info("Weekly digest scheduled",
		"schedule", d.opts.Schedule,
		"location", d.opts.Location.String())
	return nil
}

// Stop 停止调度并等待正在执行的任务结束（或 ctx 超时）
func (d *WeeklyDigest) Stop(ctx context.Context) error {
	d.runningMu.Lock()
	if !d.running {
		d.runningMu.Unlock()
		return nil
	}
	d.running = false
	c, cancel := d.cron, d.cancel
	d.runningMu.Unlock()

	done := c.Stop()
	select {
	case <-done.Done():
		cancel()
		d.logger.Info("Weekly digest stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

func (d *WeeklyDigest) runScheduled() {
	if _, err := d.Run(d.ctx, d.now()); err != nil {
		d.logger.Error("Weekly digest aborted", "error", err)
	}
}
