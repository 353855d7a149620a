package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sudooom.score/internal/model"
)

// NotificationPageSize 通知列表每页条数
const NotificationPageSize = 25

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationRepository 通知数据访问
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 保存通知
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, type, sender_id, receiver_id, title, body, create_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING create_at
	`
	return r.db.QueryRow(ctx, query,
		n.ID,
		n.Type,
		n.SenderID,
		n.ReceiverID,
		n.Title,
		n.Body,
	).Scan(&n.CreateAt)
}

// ListByReceiver 分页获取接收者的通知，按创建时间倒序，page 从 1 开始
func (r *NotificationRepository) ListByReceiver(ctx context.Context, receiverID int64, page int) ([]*model.Notification, error) {
	if page < 1 {
		page = 1
	}
	query := `
		SELECT id, type, sender_id, receiver_id, title, body, create_at
		FROM notifications
		WHERE receiver_id = $1
		ORDER BY create_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, receiverID, NotificationPageSize, (page-1)*NotificationPageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*model.Notification, 0)
	for rows.Next() {
		n := &model.Notification{}
		if err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.SenderID,
			&n.ReceiverID,
			&n.Title,
			&n.Body,
			&n.CreateAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// FindByID 通过 ID 获取通知
func (r *NotificationRepository) FindByID(ctx context.Context, id int64) (*model.Notification, error) {
	query := `
		SELECT id, type, sender_id, receiver_id, title, body, create_at
		FROM notifications WHERE id = $1
	`
	n := &model.Notification{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.Type,
		&n.SenderID,
		&n.ReceiverID,
		&n.Title,
		&n.Body,
		&n.CreateAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

// Delete 删除接收者自己的通知，不存在或不属于该接收者时返回 ErrNotificationNotFound
func (r *NotificationRepository) Delete(ctx context.Context, id, receiverID int64) error {
	query := `DELETE FROM notifications WHERE id = $1 AND receiver_id = $2`
	result, err := r.db.Exec(ctx, query, id, receiverID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
