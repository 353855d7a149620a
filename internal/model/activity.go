package model

import "time"

// ActivityRecord 运动记录，由记录服务写入，排名只读
type ActivityRecord struct {
	ID         int64     `json:"id,string" db:"id"`
	UserID     int64     `json:"userId,string" db:"user_id"`
	Score      float64   `json:"score" db:"score"`
	RecordedAt time.Time `json:"recordedAt" db:"recorded_at"`
}
