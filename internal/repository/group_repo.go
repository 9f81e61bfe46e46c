package repository

import (
	"github.com/gatorbitepcc/cindr/internal/domain"
	"gorm.io/gorm"
)

// GroupRepository support group data access interface
type GroupRepository interface {
	Create(group *domain.SupportGroup) error
	FindByID(id string) (*domain.SupportGroup, error)
	FindAll(page, limit int) ([]*domain.SupportGroup, int64, error)
	FindByMember(userID string) ([]*domain.SupportGroup, error)
	IsMember(groupID, userID string) (bool, error)
	AddMember(groupID, userID string) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create inserts the group and its creator's membership together
func (r *groupRepository) Create(group *domain.SupportGroup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		group.MemberCount = 1
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := &domain.GroupMember{GroupID: group.ID, UserID: group.CreatorID}
		return tx.Create(member).Error
	})
}

// FindByID finds a group by ID
func (r *groupRepository) FindByID(id string) (*domain.SupportGroup, error) {
	var group domain.SupportGroup
	if err := r.db.Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindAll returns groups, newest first
func (r *groupRepository) FindAll(page, limit int) ([]*domain.SupportGroup, int64, error) {
	var groups []*domain.SupportGroup
	var total int64

	r.db.Model(&domain.SupportGroup{}).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&groups).Error
	return groups, total, err
}

// FindByMember returns the groups a user belongs to
func (r *groupRepository) FindByMember(userID string) ([]*domain.SupportGroup, error) {
	var groups []*domain.SupportGroup
	err := r.db.
		Joins("JOIN group_members ON group_members.group_id = support_groups.id").
		Where("group_members.user_id = ?", userID).
		Order("support_groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

// IsMember checks membership
func (r *groupRepository) IsMember(groupID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMember adds a membership and bumps the denormalized member count
func (r *groupRepository) AddMember(groupID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		member := &domain.GroupMember{GroupID: groupID, UserID: userID}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Model(&domain.SupportGroup{}).
			Where("id = ?", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error
	})
}
