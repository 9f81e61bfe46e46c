package domain

import "time"

// SupportGroup is a community support group
type SupportGroup struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name            string    `gorm:"column:name;type:varchar(200)" json:"name"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	Category        string    `gorm:"column:category;type:varchar(100)" json:"category,omitempty"`
	Location        string    `gorm:"column:location;type:varchar(200)" json:"location,omitempty"`
	MeetingSchedule string    `gorm:"column:meeting_schedule;type:varchar(200)" json:"meeting_schedule,omitempty"`
	CreatorID       string    `gorm:"column:creator_id;type:varchar(36);index" json:"creator_id"`
	MemberCount     int       `gorm:"column:member_count;default:0" json:"member_count"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SupportGroup) TableName() string { return "support_groups" }

// GroupMember records a user's membership in a group
type GroupMember struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GroupID   string    `gorm:"column:group_id;type:varchar(36);uniqueIndex:idx_group_member" json:"group_id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_group_member;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (GroupMember) TableName() string { return "group_members" }

// CreateGroupRequest group creation payload
type CreateGroupRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Category        string `json:"category"`
	Location        string `json:"location"`
	MeetingSchedule string `json:"meeting_schedule"`
}
