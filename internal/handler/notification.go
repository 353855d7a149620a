package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"sudooom.score/internal/middleware"
	"sudooom.score/internal/model"
	"sudooom.score/internal/repository"
	appErrors "sudooom.score/pkg/errors"
	"sudooom.score/pkg/response"
)

// NotificationService 通知收件箱服务
type NotificationService interface {
	List(ctx context.Context, userID int64, page int) ([]*model.Notification, error)
	Get(ctx context.Context, userID, id int64) (*model.Notification, error)
	Delete(ctx context.Context, userID, id int64) error
}

// NotificationHandler 通知处理器
type NotificationHandler struct {
	notificationService NotificationService
	logger              *slog.Logger
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(notificationService NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              slog.Default(),
	}
}

// List 获取当前用户的通知列表
// GET /api/v1/notifications?page=1
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		response.ErrorWithMsg(c, response.CodeInvalidParams, "invalid page")
		return
	}

	list, err := h.notificationService.List(c.Request.Context(), userID, page)
	if err != nil {
		h.logger.Error("List notifications failed", "userId", userID, "page", page, "error", err)
		response.ErrorFromAppError(c, appErrors.ErrServiceUnavailable.Wrap(err))
		return
	}

	response.Success(c, gin.H{
		"list":     list,
		"page":     page,
		"pageSize": repository.NotificationPageSize,
	})
}

// Get 获取单条通知
// GET /api/v1/notifications/:id
func (h *NotificationHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseNotificationID(c)
	if !ok {
		return
	}

	n, err := h.notificationService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, "Get notification failed", userID, id, err)
		return
	}

	response.Success(c, n)
}

// Delete 删除通知，只有接收者可以删除
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseNotificationID(c)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, "Delete notification failed", userID, id, err)
		return
	}

	response.Success(c, nil)
}

func (h *NotificationHandler) handleError(c *gin.Context, msg string, userID, id int64, err error) {
	if errors.Is(err, repository.ErrNotificationNotFound) {
		response.Error(c, response.CodeNotificationNotFound)
		return
	}
	h.logger.Error(msg, "userId", userID, "notificationId", id, "error", err)
	response.ErrorFromAppError(c, appErrors.ErrServiceUnavailable.Wrap(err))
}

func parseNotificationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ErrorWithMsg(c, response.CodeInvalidParams, "invalid notification id")
		return 0, false
	}
	return id, true
}
