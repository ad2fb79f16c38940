package models

import (
	"time"

	"github.com/google/uuid"
)

// User statuses.
const (
	UserStatusActive   = 1
	UserStatusDisabled = 2
)

// SystemRoleAdmin marks accounts allowed into the admin console.
const SystemRoleAdmin = "admin"

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Username     string     `gorm:"column:username;not null"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	Phone        *string    `gorm:"column:phone"`
	AvatarURL    *string    `gorm:"column:avatar_url"`
	Status       int        `gorm:"column:status;not null;default:1"`
	SystemRole   *string    `gorm:"column:system_role"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// IsAdmin reports whether the user may access the admin console.
func (u User) IsAdmin() bool {
	return u.SystemRole != nil && *u.SystemRole == SystemRoleAdmin
}
