package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
)

func TestGroupCreate(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := NewGroupService(repo)

	var created *domain.SupportGroup
	repo.On("Create", mock.AnythingOfType("*domain.SupportGroup")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*domain.SupportGroup)
	}).Return(nil)

	group, err := svc.Create("alice", &domain.CreateGroupRequest{
		Name:        "Young Survivors",
		Description: "Weekly check-ins",
		Category:    "support",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "alice", created.CreatorID)
	assert.Equal(t, "Young Survivors", created.Name)
}

func TestGroupJoin_Success(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := NewGroupService(repo)

	repo.On("FindByID", "group-1").Return(&domain.SupportGroup{ID: "group-1"}, nil)
	repo.On("IsMember", "group-1", "bob").Return(false, nil)
	repo.On("AddMember", "group-1", "bob").Return(nil)

	err := svc.Join("group-1", "bob")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGroupJoin_AlreadyMember(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := NewGroupService(repo)

	repo.On("FindByID", "group-1").Return(&domain.SupportGroup{ID: "group-1"}, nil)
	repo.On("IsMember", "group-1", "bob").Return(true, nil)

	err := svc.Join("group-1", "bob")
	assert.ErrorIs(t, err, common.ErrAlreadyMember)
	repo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
}

func TestGroupJoin_NotFound(t *testing.T) {
	repo := new(mockGroupRepo)
	svc := NewGroupService(repo)

	repo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Join("missing", "bob")
	assert.ErrorIs(t, err, common.ErrGroupNotFound)
}
