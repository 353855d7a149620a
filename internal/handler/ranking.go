package handler

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sudooom.score/internal/metrics"
	"sudooom.score/internal/ranking"
	appErrors "sudooom.score/pkg/errors"
	"sudooom.score/pkg/response"
)

// RankingService 周排名查询
type RankingService interface {
	GetWeeklyRanking(ctx context.Context, groupID int64, ref time.Time) (*ranking.Leaderboard, error)
	Location() *time.Location
}

// RankingHandler 排名处理器
type RankingHandler struct {
	rankingService RankingService
	now            func() time.Time
	logger         *slog.Logger
}

// NewRankingHandler 创建排名处理器
func NewRankingHandler(rankingService RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
		now:            time.Now,
		logger:         slog.Default(),
	}
}

// GetWeeklyRanking 获取群组上周排行榜
// GET /api/v1/groups/:id/ranking?date=2024-01-22
func (h *RankingHandler) GetWeeklyRanking(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || groupID <= 0 {
		response.ErrorWithMsg(c, response.CodeInvalidParams, "invalid group id")
		return
	}

	ref := h.now()
	if date := c.Query("date"); date != "" {
		ref, err = time.ParseInLocation(time.DateOnly, date, h.rankingService.Location())
		if err != nil {
			response.ErrorWithMsg(c, response.CodeInvalidParams, "date must be YYYY-MM-DD")
			return
		}
	}

	board, err := h.rankingService.GetWeeklyRanking(c.Request.Context(), groupID, ref)
	outcome := ranking.Classify(err)
	metrics.RecordRanking(outcome.String())

	switch outcome {
	case ranking.OutcomeOK:
		response.Success(c, board)
	case ranking.OutcomeNotFound:
		response.Error(c, response.CodeGroupNotFound)
	case ranking.OutcomeTooNew:
		response.Error(c, response.CodeGroupTooNew)
	default:
		h.logger.Error("Weekly ranking unavailable", "groupId", groupID, "error", err)
		response.ErrorFromAppError(c, appErrors.ErrServiceUnavailable.Wrap(err))
	}
}
