package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error

	// FindFirstActiveAdmin returns the contact admin surfaced on status
	// denials, or ErrUserNotFound when no active admin exists.
	FindFirstActiveAdmin(ctx context.Context) (*User, error)
}
