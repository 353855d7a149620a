package service

import (
	"context"

	"sudooom.score/internal/model"
	"sudooom.score/internal/repository"
)

// NotificationInbox 通知收件箱存储
type NotificationInbox interface {
	ListByReceiver(ctx context.Context, receiverID int64, page int) ([]*model.Notification, error)
	FindByID(ctx context.Context, id int64) (*model.Notification, error)
	Delete(ctx context.Context, id, receiverID int64) error
}

// NotificationService 通知收件箱服务
type NotificationService struct {
	inbox NotificationInbox
}

// NewNotificationService 创建通知服务
func NewNotificationService(inbox NotificationInbox) *NotificationService {
	return &NotificationService{inbox: inbox}
}

// List 分页获取用户收到的通知
func (s *NotificationService) List(ctx context.Context, userID int64, page int) ([]*model.Notification, error) {
	return s.inbox.ListByReceiver(ctx, userID, page)
}

// Get 获取单条通知，只有接收者可见
func (s *NotificationService) Get(ctx context.Context, userID, id int64) (*model.Notification, error) {
	n, err := s.inbox.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.ReceiverID != userID {
		return nil, repository.ErrNotificationNotFound
	}
	return n, nil
}

// Delete 删除用户自己的通知
func (s *NotificationService) Delete(ctx context.Context, userID, id int64) error {
	return s.inbox.Delete(ctx, id, userID)
}
