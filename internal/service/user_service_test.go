package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestGetProfile_NoEmailLeak(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	userRepo.On("FindByID", "user-1").Return(&domain.User{
		ID:    "user-1",
		Email: "private@cindr.app",
		Name:  "Tester",
	}, nil)

	profile, err := svc.GetProfile("user-1")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "Tester", profile.Name)
}

func TestGetProfile_NotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	profile, err := svc.GetProfile("ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	assert.Nil(t, profile)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	user := &domain.User{ID: "user-1", Name: "Old Name", Bio: "old bio", Role: domain.RoleSupporter}
	userRepo.On("FindByID", "user-1").Return(user, nil)
	userRepo.On("Update", mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.UpdateProfile("user-1", &domain.UpdateProfileRequest{
		Bio: strPtr("new bio"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", result.Bio)
	// Untouched fields survive
	assert.Equal(t, "Old Name", result.Name)
	assert.Equal(t, domain.RoleSupporter, result.Role)
}

func TestUpdateProfile_InvalidRole(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	userRepo.On("FindByID", "user-1").Return(&domain.User{ID: "user-1"}, nil)

	result, err := svc.UpdateProfile("user-1", &domain.UpdateProfileRequest{
		Role: strPtr("wizard"),
	})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Nil(t, result)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdatePhotos_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	userRepo.On("FindByID", "user-1").Return(&domain.User{ID: "user-1"}, nil)
	userRepo.On("Update", mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.UpdatePhotos("user-1", []string{"a.jpg", "b.jpg"})

	assert.NoError(t, err)
	assert.Len(t, result.Photos, 2)
}

func TestUpdatePhotos_OverCap(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	photos := make([]string, domain.MaxGalleryPhotos+1)
	for i := range photos {
		photos[i] = "photo.jpg"
	}

	result, err := svc.UpdatePhotos("user-1", photos)

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Nil(t, result)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestNextCandidate_ExcludesSelfAndPartners(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	connRepo.On("PartnerIDs", "bob").Return([]string{"alice", "carol"}, nil)

	var gotExclude []string
	userRepo.On("FindCandidates", mock.Anything, feedFetchLimit).Run(func(args mock.Arguments) {
		gotExclude = args.Get(0).([]string)
	}).Return([]*domain.User{{ID: "dave", Name: "Dave"}}, nil)

	profile, err := svc.NextCandidate("bob", []string{"erin"})

	assert.NoError(t, err)
	assert.Equal(t, "dave", profile.ID)
	assert.ElementsMatch(t, []string{"bob", "alice", "carol", "erin"}, gotExclude)
}

func TestNextCandidate_NoneLeft(t *testing.T) {
	userRepo := new(mockUserRepo)
	connRepo := new(mockConnectionRepo)
	svc := NewUserService(userRepo, connRepo, nil)

	connRepo.On("PartnerIDs", "bob").Return([]string{}, nil)
	userRepo.On("FindCandidates", mock.Anything, feedFetchLimit).Return([]*domain.User{}, nil)

	profile, err := svc.NextCandidate("bob", nil)

	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Nil(t, profile)
}
