package model

import "time"

// NotificationType 通知类型
const (
	NotificationTypeNudge = "nudge"
)

// Notification 站内通知
type Notification struct {
	ID         int64     `json:"id,string" db:"id"`
	Type       string    `json:"type" db:"type"`
	SenderID   int64     `json:"senderId,string" db:"sender_id"`
	ReceiverID int64     `json:"receiverId,string" db:"receiver_id"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	CreateAt   time.Time `json:"createAt" db:"create_at"`
}

// PushEvent 推送事件，由推送网关消费后投递到设备
type PushEvent struct {
	NotificationID int64  `json:"notificationId,string"`
	Type           string `json:"type"`
	SenderID       int64  `json:"senderId,string"`
	ReceiverID     int64  `json:"receiverId,string"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	Timestamp      int64  `json:"timestamp"`
}
