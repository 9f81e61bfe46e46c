package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/repository"
	"github.com/gatorbitepcc/cindr/internal/ws"
	"github.com/gatorbitepcc/cindr/pkg/cache"
	"github.com/gatorbitepcc/cindr/pkg/logger"
)

// ChatService chat thread and message business logic
type ChatService interface {
	Threads(userID string) ([]*domain.ChatThread, error)
	Messages(chatID, userID string, page, limit int) ([]*domain.ChatMessage, int64, error)
	SendMessage(chatID, senderID, text string) (*domain.ChatMessage, error)
}

type chatService struct {
	connectionRepo repository.ConnectionRepository
	messageRepo    repository.MessageRepository
	userRepo       repository.UserRepository
	cache          cache.Service
	hub            *ws.Hub
}

// NewChatService creates a new ChatService
func NewChatService(
	connectionRepo repository.ConnectionRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	cacheService cache.Service,
	hub *ws.Hub,
) ChatService {
	return &chatService{
		connectionRepo: connectionRepo,
		messageRepo:    messageRepo,
		userRepo:       userRepo,
		cache:          cacheService,
		hub:            hub,
	}
}

// Threads projects the caller's accepted connections into a chat thread list.
// Connections the caller initiated and ones they received are fetched
// separately, merged by connection ID, and ordered by most recent activity.
func (s *chatService) Threads(userID string) ([]*domain.ChatThread, error) {
	sent, err := s.connectionRepo.FindAcceptedFrom(userID)
	if err != nil {
		return nil, err
	}
	received, err := s.connectionRepo.FindAcceptedTo(userID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*domain.Connection, len(sent)+len(received))
	for _, c := range sent {
		merged[c.ID] = c
	}
	for _, c := range received {
		merged[c.ID] = c
	}

	counterpartIDs := make([]string, 0, len(merged))
	for _, c := range merged {
		counterpartIDs = append(counterpartIDs, c.CounterpartID(userID))
	}
	profiles := s.loadProfiles(counterpartIDs)

	threads := make([]*domain.ChatThread, 0, len(merged))
	for _, c := range merged {
		counterpartID := c.CounterpartID(userID)
		profile, ok := profiles[counterpartID]
		if !ok {
			// Counterpart account no longer resolvable; fall back to the
			// names denormalized onto the connection row.
			profile = s.fallbackProfile(c, counterpartID)
		}
		threads = append(threads, &domain.ChatThread{
			ConnectionID:        c.ID,
			Counterpart:         profile,
			LastMessage:         c.LastMessage,
			LastMessageAt:       c.LastMessageAt,
			LastMessageSenderID: c.LastMessageSenderID,
			CreatedAt:           c.CreatedAt,
		})
	}

	sort.Slice(threads, func(i, j int) bool {
		ti := lastActivity(threads[i])
		tj := lastActivity(threads[j])
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	return threads, nil
}

// Messages returns a chat's message log oldest first. Only the connection's
// parties may read it, and only once the connection is accepted.
func (s *chatService) Messages(chatID, userID string, page, limit int) ([]*domain.ChatMessage, int64, error) {
	if err := s.authorizeChat(chatID, userID); err != nil {
		return nil, 0, err
	}
	return s.messageRepo.FindByChat(chatID, page, limit)
}

// SendMessage appends a message to an accepted connection's chat and pushes
// it to the counterpart. Whitespace-only text is rejected before any write.
func (s *chatService) SendMessage(chatID, senderID, text string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyMessage
	}

	conn, err := s.findChat(chatID)
	if err != nil {
		return nil, err
	}
	if !conn.IsParty(senderID) {
		return nil, common.ErrForbidden
	}
	if conn.Status != domain.ConnectionAccepted {
		return nil, common.ErrNotAccepted
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:         uuid.New().String(),
		ChatID:     chatID,
		SenderID:   senderID,
		SenderName: sender.Name,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(conn.CounterpartID(senderID), &ws.Event{
			Type:    ws.EventChatMessage,
			Payload: msg,
		})
	}

	return msg, nil
}

func (s *chatService) authorizeChat(chatID, userID string) error {
	conn, err := s.findChat(chatID)
	if err != nil {
		return err
	}
	if !conn.IsParty(userID) {
		return common.ErrForbidden
	}
	if conn.Status != domain.ConnectionAccepted {
		return common.ErrNotAccepted
	}
	return nil
}

func (s *chatService) findChat(chatID string) (*domain.Connection, error) {
	conn, err := s.connectionRepo.FindByID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrConnectionNotFound
		}
		return nil, err
	}
	return conn, nil
}

// loadProfiles resolves counterpart display profiles, cache-first with a
// single batched DB query for the misses
func (s *chatService) loadProfiles(ids []string) map[string]*domain.DisplayProfile {
	ctx := context.Background()
	profiles := make(map[string]*domain.DisplayProfile, len(ids))
	misses := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := profiles[id]; ok {
			continue
		}
		if s.cache != nil && s.cache.IsAvailable() {
			if data, err := s.cache.GetUser(ctx, id); err == nil && data != nil {
				var p domain.DisplayProfile
				if err := json.Unmarshal(data, &p); err == nil {
					profiles[id] = &p
					continue
				}
			}
		}
		misses = append(misses, id)
	}

	if len(misses) > 0 {
		users, err := s.userRepo.FindByIDs(misses)
		if err != nil {
			logger.GetLogger().Warn().Err(err).Msg("failed to load counterpart profiles")
			return profiles
		}
		for _, u := range users {
			p := u.ToDisplayProfile()
			profiles[u.ID] = p
			if s.cache != nil && s.cache.IsAvailable() {
				s.cache.SetUser(ctx, u.ID, p) //nolint:errcheck
			}
		}
	}

	return profiles
}

func (s *chatService) fallbackProfile(c *domain.Connection, counterpartID string) *domain.DisplayProfile {
	name := c.FromName
	if c.FromUserID != counterpartID {
		name = c.ToName
	}
	return &domain.DisplayProfile{ID: counterpartID, Name: name}
}

func lastActivity(t *domain.ChatThread) *time.Time {
	if t.LastMessageAt != nil {
		return t.LastMessageAt
	}
	if !t.CreatedAt.IsZero() {
		ts := t.CreatedAt
		return &ts
	}
	return nil
}
