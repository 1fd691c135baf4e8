// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Session represents a persisted login session. The selected agency/space
// pair is the session-scoped tenant selection; both columns are written and
// cleared together.
type Session struct {
	ID               snowflake.ID  `gorm:"primaryKey"`
	UserID           snowflake.ID  `gorm:"column:user_id;not null;index"`
	SessionTokenHash string        `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string        `gorm:"column:user_agent;type:text"`
	IPAddress        string        `gorm:"column:ip_address;type:text"`
	SelectedAgencyID *snowflake.ID `gorm:"column:selected_agency_id"`
	SelectedSpaceID  *snowflake.ID `gorm:"column:selected_space_id"`
	ExpiresAt        time.Time     `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time    `gorm:"column:revoked_at"`
	CreatedAt        time.Time     `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time     `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// Selection is the tenant choice stored on a session.
type Selection struct {
	AgencyID snowflake.ID
	SpaceID  snowflake.ID
}

// CurrentSelection returns the session's tenant selection, false when either
// half is missing.
func (s *Session) CurrentSelection() (Selection, bool) {
	if s.SelectedAgencyID == nil || s.SelectedSpaceID == nil {
		return Selection{}, false
	}
	return Selection{AgencyID: *s.SelectedAgencyID, SpaceID: *s.SelectedSpaceID}, true
}

// SessionView is returned to clients without exposing token values.
type SessionView struct {
	Metadata map[string]any `json:"metadata"`
}
