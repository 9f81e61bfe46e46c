package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/repository"
)

// GroupService support group business logic
type GroupService interface {
	Create(creatorID string, req *domain.CreateGroupRequest) (*domain.SupportGroup, error)
	List(page, limit int) ([]*domain.SupportGroup, int64, error)
	Get(groupID string) (*domain.SupportGroup, error)
	Join(groupID, userID string) error
	Mine(userID string) ([]*domain.SupportGroup, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

// Create registers a support group with the creator as its first member
func (s *groupService) Create(creatorID string, req *domain.CreateGroupRequest) (*domain.SupportGroup, error) {
	group := &domain.SupportGroup{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		MeetingSchedule: req.MeetingSchedule,
		CreatorID:       creatorID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// List returns support groups, newest first
func (s *groupService) List(page, limit int) ([]*domain.SupportGroup, int64, error) {
	return s.groupRepo.FindAll(page, limit)
}

// Get returns a single support group
func (s *groupService) Get(groupID string) (*domain.SupportGroup, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// Join adds the caller to a group
func (s *groupService) Join(groupID, userID string) error {
	if _, err := s.Get(groupID); err != nil {
		return err
	}

	member, err := s.groupRepo.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if member {
		return common.ErrAlreadyMember
	}

	return s.groupRepo.AddMember(groupID, userID)
}

// Mine returns the groups the caller belongs to
func (s *groupService) Mine(userID string) ([]*domain.SupportGroup, error) {
	return s.groupRepo.FindByMember(userID)
}
