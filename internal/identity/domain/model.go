// Package domain contains core types for user identity.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Role classifies what a user account acts as. Fixed at account creation; a
// role change is modeled as a new account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleAgency   Role = "agency"
	RoleEmployee Role = "employee"
	RoleVisitor  Role = "visitor"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgency, RoleEmployee, RoleVisitor:
		return true
	default:
		return false
	}
}

// Status is the account lifecycle state. Stored as its raw numeric value;
// anything outside the known set must be treated as not active.
type Status int16

const (
	StatusActive  Status = 1
	StatusPending Status = 2
	StatusBlocked Status = 3
)

// Description returns the human-readable denial reason for a status.
func (s Status) Description() string {
	switch s {
	case StatusActive:
		return "account active"
	case StatusPending:
		return "account under review"
	case StatusBlocked:
		return "account blocked"
	default:
		return "access denied"
	}
}

// User represents a platform account.
type User struct {
	ID           snowflake.ID      `gorm:"primaryKey"`
	ExternalID   string            `gorm:"column:external_id;type:text;not null;uniqueIndex"`
	Email        string            `gorm:"column:email;uniqueIndex"`
	DisplayName  string            `gorm:"column:display_name;type:text"`
	Phone        string            `gorm:"column:phone;type:text"`
	PasswordHash *string           `gorm:"type:text"`
	Role         Role              `gorm:"type:text;not null"`
	Status       Status            `gorm:"type:smallint;not null;default:1"`
	AgencyID     *snowflake.ID     `gorm:"column:agency_id;index"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// AdminContact is the administrative contact surfaced on status denials.
type AdminContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
