package model

import "time"

// GroupStatus 群组状态
const (
	GroupStatusNormal    = 0 // 正常
	GroupStatusDissolved = 1 // 解散
)

// GroupMemberRole 群成员角色
const (
	GroupMemberRoleMember = 0 // 成员
	GroupMemberRoleAdmin  = 1 // 管理员（群主）
)

// Group 运动群组，由群组服务维护，本服务只读
type Group struct {
	ID          int64     `json:"id,string" db:"id"`
	Name        string    `json:"name" db:"name"`
	AdminID     int64     `json:"adminId,string" db:"admin_id"`
	Description string    `json:"description" db:"description"`
	Status      int       `json:"status" db:"status"`
	CreateAt    time.Time `json:"createAt" db:"create_at"`
	UpdateAt    time.Time `json:"updateAt" db:"update_at"`
	Deleted     int       `json:"-" db:"deleted"`
}

// GroupMember 群成员关系
type GroupMember struct {
	GroupID  int64     `json:"groupId,string" db:"group_id"`
	UserID   int64     `json:"userId,string" db:"user_id"`
	Role     int       `json:"role" db:"role"`
	CreateAt time.Time `json:"createAt" db:"create_at"`
	Deleted  int       `json:"-" db:"deleted"`
}
