package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/repository"
	"github.com/gatorbitepcc/cindr/internal/ws"
)

// ConnectionService connection lifecycle business logic
type ConnectionService interface {
	Request(fromUserID, toUserID string) (*domain.RequestConnectionResponse, error)
	Accept(connectionID, userID string) (*domain.Connection, error)
	Decline(connectionID, userID string) error
	PendingRequests(userID string) ([]*domain.ConnectionRequestItem, error)
}

type connectionService struct {
	connectionRepo repository.ConnectionRepository
	userRepo       repository.UserRepository
	hub            *ws.Hub
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(connectionRepo repository.ConnectionRepository, userRepo repository.UserRepository, hub *ws.Hub) ConnectionService {
	return &connectionService{
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		hub:            hub,
	}
}

// Request records a swipe from fromUserID toward toUserID. Resolves to one of
// sent, already_sent or matched; the pair unique index guarantees at most one
// row per pair even under concurrent mutual swipes.
func (s *connectionService) Request(fromUserID, toUserID string) (*domain.RequestConnectionResponse, error) {
	if fromUserID == toUserID {
		return nil, common.ErrSelfConnection
	}

	from, err := s.userRepo.FindByID(fromUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	to, err := s.userRepo.FindByID(toUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	result, conn, err := s.connectionRepo.Request(from, to)
	if err != nil {
		return nil, err
	}

	switch result {
	case domain.ResultSent:
		s.notify(toUserID, ws.EventConnectionRequest, conn.ToRequestItem())
	case domain.ResultMatched:
		s.notify(fromUserID, ws.EventConnectionAccepted, conn)
		s.notify(toUserID, ws.EventConnectionAccepted, conn)
	}

	return &domain.RequestConnectionResponse{
		Result:     result,
		Connection: conn,
	}, nil
}

// Accept confirms a pending request. Only the request's recipient may accept.
func (s *connectionService) Accept(connectionID, userID string) (*domain.Connection, error) {
	conn, err := s.connectionRepo.FindByID(connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConnectionNotFound
		}
		return nil, err
	}

	if conn.ToUserID != userID {
		return nil, common.ErrForbidden
	}
	if conn.Status != domain.ConnectionPending {
		return nil, common.ErrNotPending
	}

	if err := s.connectionRepo.Accept(connectionID, userID); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return nil, common.ErrNotPending
		}
		return nil, err
	}

	conn, err = s.connectionRepo.FindByID(connectionID)
	if err != nil {
		return nil, err
	}

	s.notify(conn.FromUserID, ws.EventConnectionAccepted, conn)
	s.notify(conn.ToUserID, ws.EventConnectionAccepted, conn)
	return conn, nil
}

// Decline removes a connection. Either party may decline; declining an
// accepted connection dissolves the match and its thread.
func (s *connectionService) Decline(connectionID, userID string) error {
	conn, err := s.connectionRepo.FindByID(connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrConnectionNotFound
		}
		return err
	}

	if !conn.IsParty(userID) {
		return common.ErrForbidden
	}

	if err := s.connectionRepo.Delete(connectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrConnectionNotFound
		}
		return err
	}

	s.notify(conn.CounterpartID(userID), ws.EventConnectionRemoved, map[string]string{
		"connection_id": connectionID,
	})
	return nil
}

// PendingRequests returns the caller's incoming pending requests, newest first
func (s *connectionService) PendingRequests(userID string) ([]*domain.ConnectionRequestItem, error) {
	conns, err := s.connectionRepo.FindPendingTo(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.ConnectionRequestItem, 0, len(conns))
	for _, c := range conns {
		items = append(items, c.ToRequestItem())
	}
	return items, nil
}

func (s *connectionService) notify(userID, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.SendToUser(userID, &ws.Event{Type: eventType, Payload: payload})
}
