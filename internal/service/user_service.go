package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"

	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/repository"
	"github.com/gatorbitepcc/cindr/pkg/cache"
	"github.com/gatorbitepcc/cindr/pkg/logger"
)

// feedFetchLimit bounds how many candidates a single feed query loads
const feedFetchLimit = 50

// UserService profile business logic
type UserService interface {
	GetMe(userID string) (*domain.UserResponse, error)
	GetProfile(userID string) (*domain.DisplayProfile, error)
	UpdateProfile(userID string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error)
	UpdatePhotos(userID string, photos []string) (*domain.UserResponse, error)
	NextCandidate(userID string, excludeIDs []string) (*domain.DisplayProfile, error)
}

type userService struct {
	userRepo       repository.UserRepository
	connectionRepo repository.ConnectionRepository
	cache          cache.Service
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, connectionRepo repository.ConnectionRepository, cacheService cache.Service) UserService {
	return &userService{
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
		cache:          cacheService,
	}
}

// GetMe returns the caller's own account
func (s *userService) GetMe(userID string) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetProfile returns a public profile, cache-first
func (s *userService) GetProfile(userID string) (*domain.DisplayProfile, error) {
	ctx := context.Background()

	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetUser(ctx, userID); err == nil && data != nil {
			var profile domain.DisplayProfile
			if err := json.Unmarshal(data, &profile); err == nil {
				return &profile, nil
			}
		}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	profile := user.ToDisplayProfile()

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetUser(ctx, userID, profile); err != nil {
			logger.GetLogger().Warn().Err(err).Str("user_id", userID).Msg("failed to cache profile")
		}
	}

	return profile, nil
}

// UpdateProfile applies settings edits; nil fields are left unchanged
func (s *userService) UpdateProfile(userID string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !domain.IsValidRole(*req.Role) {
			return nil, common.ErrInvalidInput
		}
		user.Role = *req.Role
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.invalidateProfile(userID)
	return user.ToResponse(), nil
}

// UpdatePhotos replaces the photo gallery, capped at MaxGalleryPhotos
func (s *userService) UpdatePhotos(userID string, photos []string) (*domain.UserResponse, error) {
	if len(photos) > domain.MaxGalleryPhotos {
		return nil, common.ErrInvalidInput
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	user.Photos = domain.PhotoList(photos)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.invalidateProfile(userID)
	return user.ToResponse(), nil
}

// NextCandidate picks a random swipe candidate, excluding the caller,
// everyone the caller already has a connection row with, and any client-side
// exclusions (already-seen cards)
func (s *userService) NextCandidate(userID string, excludeIDs []string) (*domain.DisplayProfile, error) {
	partnerIDs, err := s.connectionRepo.PartnerIDs(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(partnerIDs)+len(excludeIDs)+1)
	seen[userID] = true
	exclude := []string{userID}
	for _, id := range partnerIDs {
		if !seen[id] {
			seen[id] = true
			exclude = append(exclude, id)
		}
	}
	for _, id := range excludeIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			exclude = append(exclude, id)
		}
	}

	candidates, err := s.userRepo.FindCandidates(exclude, feedFetchLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, common.ErrNotFound
	}

	pick := candidates[rand.Intn(len(candidates))]
	return pick.ToDisplayProfile(), nil
}

func (s *userService) invalidateProfile(userID string) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateUser(context.Background(), userID); err != nil {
		logger.GetLogger().Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate profile cache")
	}
}
