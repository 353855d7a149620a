package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository 运动记录数据访问（只读）
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository 创建运动记录仓库
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ScoresInRange 汇总群成员在 [start, end) 内的得分
// 只返回有记录的用户，没有记录的成员由调用方补 0
func (r *ActivityRepository) ScoresInRange(ctx context.Context, groupID int64, start, end time.Time) (map[int64]float64, error) {
	query := `
		SELECT a.user_id, COALESCE(SUM(a.score), 0)
		FROM activity_records a
		JOIN group_members gm ON gm.user_id = a.user_id AND gm.group_id = $1 AND gm.deleted = 0
		WHERE a.recorded_at >= $2 AND a.recorded_at < $3
		GROUP BY a.user_id
	`
	rows, err := r.db.Query(ctx, query, groupID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]float64)
	for rows.Next() {
		var (
			userID int64
			total  float64
		)
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, err
		}
		totals[userID] = total
	}
	return totals, rows.Err()
}
