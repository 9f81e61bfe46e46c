package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionRepository connection data access interface
type ConnectionRepository interface {
	// Request runs the full connect sequence for from→to in one transaction
	// and returns the result label (sent | already_sent | matched) with the
	// surviving row.
	Request(from, to *domain.User) (string, *domain.Connection, error)
	FindByID(id string) (*domain.Connection, error)
	// Accept flips a pending row to accepted. Returns ErrNotPending via
	// RowsAffected when the row is missing or no longer pending.
	Accept(id, acceptorID string) error
	Delete(id string) error
	FindPendingTo(userID string) ([]*domain.Connection, error)
	FindAcceptedFrom(userID string) ([]*domain.Connection, error)
	FindAcceptedTo(userID string) ([]*domain.Connection, error)
	// PartnerIDs returns every user the given user already has a row with,
	// regardless of status or direction (used to exclude swipe candidates).
	PartnerIDs(userID string) ([]string, error)
}

// ErrNotPending is returned when an accept races a decline or a second accept
var ErrNotPending = errors.New("connection is not pending")

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// pairKey returns the lexical min/max of two user IDs
func pairKey(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// GORM only translates these for some dialects, so fall back to matching
// the MySQL and SQLite error texts.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// Request implements the connect sequence:
//  1. a row for this pair with from as sender exists -> already_sent
//  2. a reverse pending row exists -> flip it to accepted -> matched
//  3. otherwise insert a pending row -> sent
//
// The whole sequence runs inside a transaction, and the unique index on
// (pair_low, pair_high) closes the double-swipe race: when both users swipe
// at once, one insert loses with a duplicate key, and the retry observes the
// winner's row and lands in branch 1 or 2.
func (r *connectionRepository) Request(from, to *domain.User) (string, *domain.Connection, error) {
	for attempt := 0; attempt < 2; attempt++ {
		result, conn, err := r.tryRequest(from, to)
		if err != nil && isDuplicateKey(err) && attempt == 0 {
			continue
		}
		return result, conn, err
	}
	return "", nil, gorm.ErrDuplicatedKey
}

func (r *connectionRepository) tryRequest(from, to *domain.User) (string, *domain.Connection, error) {
	pairLow, pairHigh := pairKey(from.ID, to.ID)

	var result string
	var conn *domain.Connection

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Connection
		err := tx.Where("pair_low = ? AND pair_high = ?", pairLow, pairHigh).First(&existing).Error

		switch {
		case err == nil && existing.FromUserID == from.ID:
			// already requested (or already connected) in this direction
			result = domain.ResultAlreadySent
			conn = &existing
			return nil

		case err == nil && existing.Status == domain.ConnectionPending:
			// reverse pending request: it's a match
			now := time.Now()
			updates := map[string]interface{}{
				"status":      domain.ConnectionAccepted,
				"accepted_at": now,
				"accepted_by": from.ID,
			}
			if err := tx.Model(&domain.Connection{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
			existing.Status = domain.ConnectionAccepted
			existing.AcceptedAt = &now
			existing.AcceptedBy = from.ID
			result = domain.ResultMatched
			conn = &existing
			return nil

		case err == nil:
			// reverse row already accepted: the pair is connected
			result = domain.ResultMatched
			conn = &existing
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			row := &domain.Connection{
				ID:         uuid.New().String(),
				FromUserID: from.ID,
				ToUserID:   to.ID,
				FromName:   from.Name,
				ToName:     to.Name,
				FromEmail:  from.Email,
				ToEmail:    to.Email,
				Status:     domain.ConnectionPending,
				PairLow:    pairLow,
				PairHigh:   pairHigh,
				CreatedAt:  time.Now(),
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			result = domain.ResultSent
			conn = row
			return nil

		default:
			return err
		}
	})

	return result, conn, err
}

// FindByID finds a connection by ID
func (r *connectionRepository) FindByID(id string) (*domain.Connection, error) {
	var conn domain.Connection
	if err := r.db.Where("id = ?", id).First(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// Accept flips pending -> accepted, stamping accepted_at/accepted_by
func (r *connectionRepository) Accept(id, acceptorID string) error {
	result := r.db.Model(&domain.Connection{}).
		Where("id = ? AND status = ?", id, domain.ConnectionPending).
		Updates(map[string]interface{}{
			"status":      domain.ConnectionAccepted,
			"accepted_at": time.Now(),
			"accepted_by": acceptorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// Delete removes a connection outright (decline keeps no history)
func (r *connectionRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Connection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindPendingTo returns pending requests addressed to a user, newest first
func (r *connectionRepository) FindPendingTo(userID string) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	err := r.db.Where("to_user_id = ? AND status = ?", userID, domain.ConnectionPending).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}

// FindAcceptedFrom returns accepted connections where the user is the sender
func (r *connectionRepository) FindAcceptedFrom(userID string) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	err := r.db.Where("from_user_id = ? AND status = ?", userID, domain.ConnectionAccepted).
		Find(&conns).Error
	return conns, err
}

// FindAcceptedTo returns accepted connections where the user is the recipient
func (r *connectionRepository) FindAcceptedTo(userID string) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	err := r.db.Where("to_user_id = ? AND status = ?", userID, domain.ConnectionAccepted).
		Find(&conns).Error
	return conns, err
}

// PartnerIDs returns every counterpart the user has any row with
func (r *connectionRepository) PartnerIDs(userID string) ([]string, error) {
	var conns []*domain.Connection
	err := r.db.Select("from_user_id", "to_user_id").
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(conns))
	for _, c := range conns {
		ids = append(ids, c.CounterpartID(userID))
	}
	return ids, nil
}
