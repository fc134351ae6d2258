package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Comment lives in its own collection; portfolios keep references only.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorImage string    `json:"author_image"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	// FindByIDs resolves comment references; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Comment, error)
}
