package nats

import (
	"encoding/json"
	"log/slog"

	"sudooom.score/internal/model"
	"sudooom.score/internal/ranking"
)

// Conn 发布所需的最小连接接口，*nats.Conn 满足
type Conn interface {
	Publish(subject string, data []byte) error
}

// WeeklyRankingEvent 周排行榜事件
type WeeklyRankingEvent struct {
	GroupID   int64           `json:"groupId,string"`
	Window    ranking.Window  `json:"window"`
	Entries   []ranking.Entry `json:"entries"`
	Timestamp int64           `json:"timestamp"`
}

// EventPublisher 事件发布器
type EventPublisher struct {
	nc     Conn
	logger *slog.Logger
}

// NewEventPublisher 创建事件发布器
func NewEventPublisher(nc Conn) *EventPublisher {
	return &EventPublisher{
		nc:     nc,
		logger: slog.Default(),
	}
}

// PublishNudge 发布提醒推送事件
func (p *EventPublisher) PublishNudge(event *model.PushEvent) error {
	if err := p.publish(SubjectPushNudge, event); err != nil {
		p.logger.Error("Failed to publish nudge",
			"notificationId", event.NotificationID,
			"receiverId", event.ReceiverID,
			"error", err)
		return err
	}
	p.logger.Debug("Published nudge", "notificationId", event.NotificationID, "subject", SubjectPushNudge)
	return nil
}

// PublishWeeklyRanking 发布周排行榜事件
func (p *EventPublisher) PublishWeeklyRanking(event *WeeklyRankingEvent) error {
	if err := p.publish(SubjectRankingWeekly, event); err != nil {
		p.logger.Error("Failed to publish weekly ranking", "groupId", event.GroupID, "error", err)
		return err
	}
	p.logger.Debug("Published weekly ranking", "groupId", event.GroupID, "entries", len(event.Entries))
	return nil
}

func (p *EventPublisher) publish(subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}
