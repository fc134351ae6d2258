package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the account entity. The portfolio references it but never owns
// its lifecycle; this service only reads it and mirrors the profile image
// and portfolio link onto it.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"-"`
	ProfileImage string      `json:"profile_image"`
	PortfolioID  *uuid.UUID  `json:"portfolio"`
	Recommending []uuid.UUID `json:"recommending"`
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByIDs returns the users it could find; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	Save(ctx context.Context, u *User) error
}
