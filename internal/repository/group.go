package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sudooom.score/internal/model"
)

var (
	ErrGroupNotFound = errors.New("group not found")
)

// GroupRepository 群组数据访问（只读）
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository 创建群组仓库
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// FindGroup 通过 ID 获取群组
func (r *GroupRepository) FindGroup(ctx context.Context, id int64) (*model.Group, error) {
	query := `
		SELECT id, name, admin_id, description, status, create_at, update_at
		FROM groups WHERE id = $1 AND deleted = 0
	`
	group := &model.Group{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.AdminID,
		&group.Description,
		&group.Status,
		&group.CreateAt,
		&group.UpdateAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// CurrentMembers 获取群当前成员ID，群组不存在时返回 ErrGroupNotFound
func (r *GroupRepository) CurrentMembers(ctx context.Context, groupID int64) ([]int64, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1 AND deleted = 0)`, groupID,
	).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM group_members WHERE group_id = $1 AND deleted = 0 ORDER BY user_id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userIDs := make([]int64, 0)
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

// ListActiveGroupIDs 获取所有正常状态的群组ID
func (r *GroupRepository) ListActiveGroupIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM groups WHERE deleted = 0 AND status = $1 ORDER BY id`, model.GroupStatusNormal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
