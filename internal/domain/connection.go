package domain

import "time"

// Connection statuses. "matched" is a request result label, never stored.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
)

// Request results
const (
	ResultSent        = "sent"
	ResultAlreadySent = "already_sent"
	ResultMatched     = "matched"
)

// Connection is a directed connection request between two users.
// PairLow/PairHigh hold the lexical min/max of the two user IDs; the unique
// index on the pair guarantees at most one row per unordered pair, which is
// what makes the concurrent double-swipe race resolvable.
type Connection struct {
	ID                  string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	FromUserID          string     `gorm:"column:from_user_id;type:varchar(36);index" json:"from_user_id"`
	ToUserID            string     `gorm:"column:to_user_id;type:varchar(36);index" json:"to_user_id"`
	FromName            string     `gorm:"column:from_name;type:varchar(100)" json:"from_name"`
	ToName              string     `gorm:"column:to_name;type:varchar(100)" json:"to_name"`
	FromEmail           string     `gorm:"column:from_email;type:varchar(255)" json:"from_email"`
	ToEmail             string     `gorm:"column:to_email;type:varchar(255)" json:"to_email"`
	Status              string     `gorm:"column:status;type:varchar(20);index" json:"status"`
	PairLow             string     `gorm:"column:pair_low;type:varchar(36);uniqueIndex:idx_connection_pair" json:"-"`
	PairHigh            string     `gorm:"column:pair_high;type:varchar(36);uniqueIndex:idx_connection_pair" json:"-"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	AcceptedAt          *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	AcceptedBy          string     `gorm:"column:accepted_by;type:varchar(36)" json:"accepted_by,omitempty"`
	LastMessage         string     `gorm:"column:last_message;type:text" json:"last_message,omitempty"`
	LastMessageAt       *time.Time `gorm:"column:last_message_at" json:"last_message_at,omitempty"`
	LastMessageSenderID string     `gorm:"column:last_message_sender_id;type:varchar(36)" json:"last_message_sender_id,omitempty"`
}

func (Connection) TableName() string { return "connections" }

// CounterpartID returns the other party relative to userID
func (c *Connection) CounterpartID(userID string) string {
	if c.FromUserID == userID {
		return c.ToUserID
	}
	return c.FromUserID
}

// IsParty reports whether userID is one of the two sides
func (c *Connection) IsParty(userID string) bool {
	return c.FromUserID == userID || c.ToUserID == userID
}

// LastActivityAt returns the timestamp the thread list orders by
func (c *Connection) LastActivityAt() *time.Time {
	if c.LastMessageAt != nil {
		return c.LastMessageAt
	}
	if !c.CreatedAt.IsZero() {
		t := c.CreatedAt
		return &t
	}
	return nil
}

// RequestConnectionRequest swipe-right payload
type RequestConnectionRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
}

// RequestConnectionResponse result of a connect action
type RequestConnectionResponse struct {
	Result     string      `json:"result"` // sent | already_sent | matched
	Connection *Connection `json:"connection,omitempty"`
}

// ConnectionRequestItem a pending inbox entry
type ConnectionRequestItem struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_user_id"`
	FromName  string    `json:"from_name"`
	FromEmail string    `json:"from_email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToRequestItem converts a pending connection to its inbox shape
func (c *Connection) ToRequestItem() *ConnectionRequestItem {
	return &ConnectionRequestItem{
		ID:        c.ID,
		FromID:    c.FromUserID,
		FromName:  c.FromName,
		FromEmail: c.FromEmail,
		CreatedAt: c.CreatedAt,
	}
}

// ChatThread is the derived per-viewer projection of an accepted connection
type ChatThread struct {
	ConnectionID        string          `json:"connection_id"`
	Counterpart         *DisplayProfile `json:"counterpart"`
	LastMessage         string          `json:"last_message,omitempty"`
	LastMessageAt       *time.Time      `json:"last_message_at,omitempty"`
	LastMessageSenderID string          `json:"last_message_sender_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}
