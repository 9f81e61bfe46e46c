package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MaxGalleryPhotos is the photo gallery cap per profile
const MaxGalleryPhotos = 12

// Profile roles
const (
	RolePatient   = "patient"
	RoleSurvivor  = "survivor"
	RoleCaregiver = "caregiver"
	RoleSupporter = "supporter"
	RoleFamily    = "family"
	RoleFriend    = "friend"
)

var validRoles = map[string]bool{
	RolePatient:   true,
	RoleSurvivor:  true,
	RoleCaregiver: true,
	RoleSupporter: true,
	RoleFamily:    true,
	RoleFriend:    true,
}

// IsValidRole reports whether role is a known profile role
func IsValidRole(role string) bool {
	return validRoles[role]
}

// PhotoList is an ordered list of photo URLs stored as a JSON column
type PhotoList []string

// Value implements driver.Valuer
func (p PhotoList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (p *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported photo list type %T", value)
	}
}

// User represents an account and its profile
type User struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password;type:varchar(255)" json:"-"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Role      string    `gorm:"column:role;type:varchar(50)" json:"role,omitempty"`
	Bio       string    `gorm:"column:bio;type:text" json:"bio,omitempty"`
	AvatarURL string    `gorm:"column:avatar_url;type:varchar(500)" json:"avatar_url,omitempty"`
	Photos    PhotoList `gorm:"column:photos;type:text" json:"photos,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// DisplayProfile is the public profile shape (no email leak)
type DisplayProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Photos    PhotoList `json:"photos,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDisplayProfile converts a User to its public shape
func (u *User) ToDisplayProfile() *DisplayProfile {
	return &DisplayProfile{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Photos:    u.Photos,
		CreatedAt: u.CreatedAt,
	}
}

// UserResponse is the owner-visible account shape
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Photos    PhotoList `json:"photos,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a User to the owner-visible shape
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Photos:    u.Photos,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateProfileRequest settings edits; nil fields are left unchanged
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdatePhotosRequest replaces the photo gallery
type UpdatePhotosRequest struct {
	Photos []string `json:"photos"`
}
