package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
)

func testUsers() (*domain.User, *domain.User) {
	alice := &domain.User{ID: "alice", Email: "alice@cindr.app", Name: "Alice"}
	bob := &domain.User{ID: "bob", Email: "bob@cindr.app", Name: "Bob"}
	return alice, bob
}

func TestRequest_Sent(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	alice, bob := testUsers()
	userRepo.On("FindByID", "alice").Return(alice, nil)
	userRepo.On("FindByID", "bob").Return(bob, nil)

	conn := &domain.Connection{
		ID:         "conn-1",
		FromUserID: "alice",
		ToUserID:   "bob",
		Status:     domain.ConnectionPending,
	}
	connRepo.On("Request", alice, bob).Return(domain.ResultSent, conn, nil)

	result, err := svc.Request("alice", "bob")

	assert.NoError(t, err)
	assert.Equal(t, domain.ResultSent, result.Result)
	assert.Equal(t, domain.ConnectionPending, result.Connection.Status)
}

func TestRequest_AlreadySent(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	alice, bob := testUsers()
	userRepo.On("FindByID", "alice").Return(alice, nil)
	userRepo.On("FindByID", "bob").Return(bob, nil)

	conn := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionPending}
	connRepo.On("Request", alice, bob).Return(domain.ResultAlreadySent, conn, nil)

	result, err := svc.Request("alice", "bob")

	assert.NoError(t, err)
	assert.Equal(t, domain.ResultAlreadySent, result.Result)
}

func TestRequest_Matched(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	alice, bob := testUsers()
	userRepo.On("FindByID", "alice").Return(alice, nil)
	userRepo.On("FindByID", "bob").Return(bob, nil)

	// Bob swiped first; Alice's swipe resolves the reverse pending row
	conn := &domain.Connection{ID: "conn-1", FromUserID: "bob", ToUserID: "alice", Status: domain.ConnectionAccepted}
	connRepo.On("Request", alice, bob).Return(domain.ResultMatched, conn, nil)

	result, err := svc.Request("alice", "bob")

	assert.NoError(t, err)
	assert.Equal(t, domain.ResultMatched, result.Result)
	assert.Equal(t, domain.ConnectionAccepted, result.Connection.Status)
}

func TestRequest_Self(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	result, err := svc.Request("alice", "alice")

	assert.ErrorIs(t, err, common.ErrSelfConnection)
	assert.Nil(t, result)
	connRepo.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestRequest_TargetNotFound(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	alice, _ := testUsers()
	userRepo.On("FindByID", "alice").Return(alice, nil)
	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	result, err := svc.Request("alice", "ghost")

	assert.ErrorIs(t, err, common.ErrUserNotFound)
	assert.Nil(t, result)
}

func TestAccept_Success(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	pending := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionPending}
	accepted := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionAccepted}

	connRepo.On("FindByID", "conn-1").Return(pending, nil).Once()
	connRepo.On("Accept", "conn-1", "bob").Return(nil)
	connRepo.On("FindByID", "conn-1").Return(accepted, nil).Once()

	result, err := svc.Accept("conn-1", "bob")

	assert.NoError(t, err)
	assert.Equal(t, domain.ConnectionAccepted, result.Status)
	connRepo.AssertExpectations(t)
}

func TestAccept_NotRecipient(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	pending := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionPending}
	connRepo.On("FindByID", "conn-1").Return(pending, nil)

	// The sender cannot accept their own request
	result, err := svc.Accept("conn-1", "alice")
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, result)

	// Neither can a third party
	result, err = svc.Accept("conn-1", "mallory")
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, result)

	connRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestAccept_AlreadyAccepted(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	accepted := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionAccepted}
	connRepo.On("FindByID", "conn-1").Return(accepted, nil)

	result, err := svc.Accept("conn-1", "bob")
	assert.ErrorIs(t, err, common.ErrNotPending)
	assert.Nil(t, result)
}

func TestAccept_NotFound(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	connRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	result, err := svc.Accept("missing", "bob")
	assert.ErrorIs(t, err, common.ErrConnectionNotFound)
	assert.Nil(t, result)
}

func TestDecline_ByRecipient(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	pending := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionPending}
	connRepo.On("FindByID", "conn-1").Return(pending, nil)
	connRepo.On("Delete", "conn-1").Return(nil)

	err := svc.Decline("conn-1", "bob")
	assert.NoError(t, err)
	connRepo.AssertExpectations(t)
}

func TestDecline_BySender(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	pending := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionPending}
	connRepo.On("FindByID", "conn-1").Return(pending, nil)
	connRepo.On("Delete", "conn-1").Return(nil)

	err := svc.Decline("conn-1", "alice")
	assert.NoError(t, err)
}

func TestDecline_ByThirdParty(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	pending := &domain.Connection{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", Status: domain.ConnectionPending}
	connRepo.On("FindByID", "conn-1").Return(pending, nil)

	err := svc.Decline("conn-1", "mallory")
	assert.ErrorIs(t, err, common.ErrForbidden)
	connRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestPendingRequests(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	userRepo := new(mockUserRepo)
	svc := NewConnectionService(connRepo, userRepo, nil)

	now := time.Now()
	conns := []*domain.Connection{
		{ID: "conn-2", FromUserID: "carol", ToUserID: "bob", FromName: "Carol", Status: domain.ConnectionPending, CreatedAt: now},
		{ID: "conn-1", FromUserID: "alice", ToUserID: "bob", FromName: "Alice", Status: domain.ConnectionPending, CreatedAt: now.Add(-time.Hour)},
	}
	connRepo.On("FindPendingTo", "bob").Return(conns, nil)

	items, err := svc.PendingRequests("bob")

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "carol", items[0].FromID)
	assert.Equal(t, "Carol", items[0].FromName)
}
