package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sudooom.score/internal/metrics"
	"sudooom.score/internal/middleware"
	"sudooom.score/internal/model"
	"sudooom.score/internal/repository"
	"sudooom.score/internal/service"
	appErrors "sudooom.score/pkg/errors"
	"sudooom.score/pkg/response"
)

// NudgeService 提醒服务
type NudgeService interface {
	Send(ctx context.Context, senderID, receiverID int64, now time.Time) (*model.Notification, error)
	CanSend(ctx context.Context, senderID, receiverID int64) (bool, error)
}

// SendNudgeRequest 发送提醒请求
type SendNudgeRequest struct {
	ReceiverID int64 `json:"receiverId,string" binding:"required" example:"2"` // 接收者用户ID
}

// NudgeHandler 提醒处理器
type NudgeHandler struct {
	nudgeService NudgeService
	now          func() time.Time
	logger       *slog.Logger
}

// NewNudgeHandler 创建提醒处理器
func NewNudgeHandler(nudgeService NudgeService) *NudgeHandler {
	return &NudgeHandler{
		nudgeService: nudgeService,
		now:          time.Now,
		logger:       slog.Default(),
	}
}

// CanSend 今天是否还能提醒对方
// GET /api/v1/nudges/:receiverId
func (h *NudgeHandler) CanSend(c *gin.Context) {
	userID := middleware.GetUserID(c)

	receiverID, err := strconv.ParseInt(c.Param("receiverId"), 10, 64)
	if err != nil || receiverID <= 0 {
		response.ErrorWithMsg(c, response.CodeInvalidParams, "invalid receiver id")
		return
	}

	canSend, err := h.nudgeService.CanSend(c.Request.Context(), userID, receiverID)
	if err != nil {
		h.logger.Error("Nudge check failed", "senderId", userID, "receiverId", receiverID, "error", err)
		response.Error(c, response.CodeServiceUnavailable)
		return
	}

	response.Success(c, gin.H{"canSend": canSend})
}

// Send 发送提醒
// POST /api/v1/nudges
func (h *NudgeHandler) Send(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SendNudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordNudge("invalid")
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	n, err := h.nudgeService.Send(c.Request.Context(), userID, req.ReceiverID, h.now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotNudgeSelf):
			metrics.RecordNudge("self")
			response.Error(c, response.CodeCannotNudgeSelf)
		case errors.Is(err, repository.ErrUserNotFound):
			metrics.RecordNudge("receiver_not_found")
			response.Error(c, response.CodeUserNotFound)
		case errors.Is(err, service.ErrAlreadyNudged):
			metrics.RecordNudge("duplicate")
			response.Error(c, response.CodeAlreadyNudged)
		default:
			metrics.RecordNudge("error")
			h.logger.Error("Send nudge failed", "senderId", userID, "receiverId", req.ReceiverID, "error", err)
			response.ErrorFromAppError(c, appErrors.ErrServiceUnavailable.Wrap(err))
		}
		return
	}

	metrics.RecordNudge("sent")
	response.Success(c, n)
}
