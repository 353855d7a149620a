package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sudooom.score/internal/model"
	"sudooom.score/internal/repository"
	"sudooom.score/pkg/snowflake"
)

var (
	ErrCannotNudgeSelf = errors.New("cannot nudge yourself")
	ErrAlreadyNudged   = errors.New("already nudged today")
)

// DedupStore 提醒去重
type DedupStore interface {
	CanNotify(ctx context.Context, senderID, receiverID int64) (bool, error)
	CheckAndMark(ctx context.Context, senderID, receiverID int64, day time.Time) (bool, error)
	Unmark(ctx context.Context, senderID, receiverID int64) error
}

// NotificationStore 通知持久化
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

// UserDirectory 用户查询
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// PushPublisher 推送事件发布
type PushPublisher interface {
	PublishNudge(event *model.PushEvent) error
}

// NudgeContent 提醒文案
type NudgeContent struct {
	Title string
	Body  string
}

// NudgeService 提醒服务
type NudgeService struct {
	dedup         DedupStore
	notifications NotificationStore
	users         UserDirectory
	publisher     PushPublisher
	snowflake     *snowflake.Node
	content       NudgeContent
	logger        *slog.Logger
}

// NewNudgeService 创建提醒服务
func NewNudgeService(dedup DedupStore, notifications NotificationStore, users UserDirectory,
	publisher PushPublisher, sf *snowflake.Node, content NudgeContent) *NudgeService {
	return &NudgeService{
		dedup:         dedup,
		notifications: notifications,
		users:         users,
		publisher:     publisher,
		snowflake:     sf,
		content:       content,
		logger:        slog.Default(),
	}
}

// CanSend 今天是否还可以提醒对方（只读）
func (s *NudgeService) CanSend(ctx context.Context, senderID, receiverID int64) (bool, error) {
	if senderID == receiverID {
		return false, nil
	}
	return s.dedup.CanNotify(ctx, senderID, receiverID)
}

// Send 发送提醒：去重标记 -> 保存通知 -> 发布推送事件
// 推送发布失败只记录日志，通知已保存即视为成功
func (s *NudgeService) Send(ctx context.Context, senderID, receiverID int64, now time.Time) (*model.Notification, error) {
	// 不能提醒自己
	if senderID == receiverID {
		return nil, ErrCannotNudgeSelf
	}

	// 检查接收者是否存在
	exists, err := s.users.Exists(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrUserNotFound
	}

	marked, err := s.dedup.CheckAndMark(ctx, senderID, receiverID, now)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, ErrAlreadyNudged
	}

	n := &model.Notification{
		ID:         s.snowflake.Generate().Int64(),
		Type:       model.NotificationTypeNudge,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Title:      s.content.Title,
		Body:       s.content.Body,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		// 保存失败时撤销标记，允许重试
		if unmarkErr := s.dedup.Unmark(ctx, senderID, receiverID); unmarkErr != nil {
			s.logger.Error("Failed to unmark nudge",
				"senderId", senderID,
				"receiverId", receiverID,
				"error", unmarkErr)
		}
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	event := &model.PushEvent{
		NotificationID: n.ID,
		Type:           n.Type,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Title:          n.Title,
		Body:           n.Body,
		Timestamp:      now.UnixMilli(),
	}
	if err := s.publisher.PublishNudge(event); err != nil {
		s.logger.Warn("Nudge saved but push not published",
			"notificationId", n.ID,
			"receiverId", receiverID,
			"error", err)
	}

	return n, nil
}
