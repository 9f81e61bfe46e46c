package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
)

func newChatService(connRepo *mockConnectionRepo, msgRepo *mockMessageRepo, userRepo *mockUserRepo) ChatService {
	return NewChatService(connRepo, msgRepo, userRepo, nil, nil)
}

func acceptedConn(id, from, to string, createdAt time.Time) *domain.Connection {
	return &domain.Connection{
		ID:         id,
		FromUserID: from,
		ToUserID:   to,
		FromName:   from,
		ToName:     to,
		Status:     domain.ConnectionAccepted,
		CreatedAt:  createdAt,
	}
}

func TestThreads_MergesBothDirections(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	now := time.Now()
	sent := []*domain.Connection{acceptedConn("conn-1", "bob", "alice", now.Add(-2*time.Hour))}
	received := []*domain.Connection{acceptedConn("conn-2", "carol", "bob", now.Add(-time.Hour))}

	connRepo.On("FindAcceptedFrom", "bob").Return(sent, nil)
	connRepo.On("FindAcceptedTo", "bob").Return(received, nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]*domain.User{
		{ID: "alice", Name: "Alice"},
		{ID: "carol", Name: "Carol"},
	}, nil)

	threads, err := svc.Threads("bob")

	assert.NoError(t, err)
	assert.Len(t, threads, 2)

	ids := []string{threads[0].ConnectionID, threads[1].ConnectionID}
	assert.Contains(t, ids, "conn-1")
	assert.Contains(t, ids, "conn-2")
}

func TestThreads_CounterpartIsOtherParty(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	sent := []*domain.Connection{acceptedConn("conn-1", "bob", "alice", time.Now())}
	connRepo.On("FindAcceptedFrom", "bob").Return(sent, nil)
	connRepo.On("FindAcceptedTo", "bob").Return([]*domain.Connection{}, nil)
	userRepo.On("FindByIDs", []string{"alice"}).Return([]*domain.User{{ID: "alice", Name: "Alice"}}, nil)

	threads, err := svc.Threads("bob")

	assert.NoError(t, err)
	assert.Len(t, threads, 1)
	assert.Equal(t, "alice", threads[0].Counterpart.ID)
	assert.Equal(t, "Alice", threads[0].Counterpart.Name)
}

func TestThreads_OrderedByLastActivity(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	now := time.Now()
	older := acceptedConn("conn-old", "bob", "alice", now.Add(-3*time.Hour))
	// The older connection has newer chat activity, so it sorts first
	lastMsg := now.Add(-10 * time.Minute)
	older.LastMessage = "hey"
	older.LastMessageAt = &lastMsg

	newer := acceptedConn("conn-new", "bob", "carol", now.Add(-time.Hour))

	connRepo.On("FindAcceptedFrom", "bob").Return([]*domain.Connection{older, newer}, nil)
	connRepo.On("FindAcceptedTo", "bob").Return([]*domain.Connection{}, nil)
	userRepo.On("FindByIDs", mock.Anything).Return([]*domain.User{
		{ID: "alice", Name: "Alice"},
		{ID: "carol", Name: "Carol"},
	}, nil)

	threads, err := svc.Threads("bob")

	assert.NoError(t, err)
	assert.Len(t, threads, 2)
	assert.Equal(t, "conn-old", threads[0].ConnectionID)
	assert.Equal(t, "conn-new", threads[1].ConnectionID)
}

func TestThreads_FallbackWhenCounterpartGone(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	conn := acceptedConn("conn-1", "ghost", "bob", time.Now())
	conn.FromName = "Ghost"
	connRepo.On("FindAcceptedFrom", "bob").Return([]*domain.Connection{}, nil)
	connRepo.On("FindAcceptedTo", "bob").Return([]*domain.Connection{conn}, nil)
	userRepo.On("FindByIDs", []string{"ghost"}).Return([]*domain.User{}, nil)

	threads, err := svc.Threads("bob")

	assert.NoError(t, err)
	assert.Len(t, threads, 1)
	assert.Equal(t, "ghost", threads[0].Counterpart.ID)
	assert.Equal(t, "Ghost", threads[0].Counterpart.Name)
}

func TestSendMessage_Success(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	conn := acceptedConn("conn-1", "alice", "bob", time.Now())
	connRepo.On("FindByID", "conn-1").Return(conn, nil)
	userRepo.On("FindByID", "alice").Return(&domain.User{ID: "alice", Name: "Alice"}, nil)
	msgRepo.On("Create", mock.AnythingOfType("*domain.ChatMessage")).Return(nil)

	msg, err := svc.SendMessage("conn-1", "alice", "hello there")

	assert.NoError(t, err)
	assert.Equal(t, "conn-1", msg.ChatID)
	assert.Equal(t, "alice", msg.SenderID)
	assert.Equal(t, "Alice", msg.SenderName)
	assert.Equal(t, "hello there", msg.Text)
	assert.NotEmpty(t, msg.ID)
	msgRepo.AssertExpectations(t)
}

func TestSendMessage_EmptyText(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	for _, text := range []string{"", "   ", "\n\t "} {
		msg, err := svc.SendMessage("conn-1", "alice", text)
		assert.ErrorIs(t, err, common.ErrEmptyMessage)
		assert.Nil(t, msg)
	}
	msgRepo.AssertNotCalled(t, "Create", mock.Anything)
	connRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestSendMessage_NotParty(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	conn := acceptedConn("conn-1", "alice", "bob", time.Now())
	connRepo.On("FindByID", "conn-1").Return(conn, nil)

	msg, err := svc.SendMessage("conn-1", "mallory", "let me in")
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, msg)
	msgRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSendMessage_PendingConnection(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	conn := acceptedConn("conn-1", "alice", "bob", time.Now())
	conn.Status = domain.ConnectionPending
	connRepo.On("FindByID", "conn-1").Return(conn, nil)

	msg, err := svc.SendMessage("conn-1", "alice", "too soon")
	assert.ErrorIs(t, err, common.ErrNotAccepted)
	assert.Nil(t, msg)
}

func TestMessages_Authorized(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	conn := acceptedConn("conn-1", "alice", "bob", time.Now())
	connRepo.On("FindByID", "conn-1").Return(conn, nil)

	msgs := []*domain.ChatMessage{
		{ID: "m1", ChatID: "conn-1", SenderID: "alice", Text: "hi"},
		{ID: "m2", ChatID: "conn-1", SenderID: "bob", Text: "hey"},
	}
	msgRepo.On("FindByChat", "conn-1", 1, 50).Return(msgs, int64(2), nil)

	result, total, err := svc.Messages("conn-1", "bob", 1, 50)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, result, 2)
	assert.Equal(t, "m1", result[0].ID)
}

func TestMessages_ThirdPartyForbidden(t *testing.T) {
	connRepo := new(mockConnectionRepo)
	msgRepo := new(mockMessageRepo)
	userRepo := new(mockUserRepo)
	svc := newChatService(connRepo, msgRepo, userRepo)

	conn := acceptedConn("conn-1", "alice", "bob", time.Now())
	connRepo.On("FindByID", "conn-1").Return(conn, nil)

	result, _, err := svc.Messages("conn-1", "mallory", 1, 50)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, result)
	msgRepo.AssertNotCalled(t, "FindByChat", mock.Anything, mock.Anything, mock.Anything)
}
