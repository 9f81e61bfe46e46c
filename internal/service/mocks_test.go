package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/gatorbitepcc/cindr/internal/domain"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByIDs(ids []string) ([]*domain.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Update(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindCandidates(excludeIDs []string, limit int) ([]*domain.User, error) {
	args := m.Called(excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// --- Mock ConnectionRepository ---

type mockConnectionRepo struct {
	mock.Mock
}

func (m *mockConnectionRepo) Request(from, to *domain.User) (string, *domain.Connection, error) {
	args := m.Called(from, to)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Connection), args.Error(2)
}

func (m *mockConnectionRepo) FindByID(id string) (*domain.Connection, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}

func (m *mockConnectionRepo) Accept(id, acceptorID string) error {
	return m.Called(id, acceptorID).Error(0)
}

func (m *mockConnectionRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockConnectionRepo) FindPendingTo(userID string) ([]*domain.Connection, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Connection), args.Error(1)
}

func (m *mockConnectionRepo) FindAcceptedFrom(userID string) ([]*domain.Connection, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Connection), args.Error(1)
}

func (m *mockConnectionRepo) FindAcceptedTo(userID string) ([]*domain.Connection, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Connection), args.Error(1)
}

func (m *mockConnectionRepo) PartnerIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock MessageRepository ---

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(msg *domain.ChatMessage) error {
	return m.Called(msg).Error(0)
}

func (m *mockMessageRepo) FindByChat(chatID string, page, limit int) ([]*domain.ChatMessage, int64, error) {
	args := m.Called(chatID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Get(1).(int64), args.Error(2)
}

// --- Mock GroupRepository ---

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) Create(group *domain.SupportGroup) error {
	return m.Called(group).Error(0)
}

func (m *mockGroupRepo) FindByID(id string) (*domain.SupportGroup, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportGroup), args.Error(1)
}

func (m *mockGroupRepo) FindAll(page, limit int) ([]*domain.SupportGroup, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.SupportGroup), args.Get(1).(int64), args.Error(2)
}

func (m *mockGroupRepo) FindByMember(userID string) ([]*domain.SupportGroup, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupportGroup), args.Error(1)
}

func (m *mockGroupRepo) IsMember(groupID, userID string) (bool, error) {
	args := m.Called(groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) AddMember(groupID, userID string) error {
	return m.Called(groupID, userID).Error(0)
}
