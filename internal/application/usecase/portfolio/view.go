package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/panchofdez/portfolio-api/internal/domain/comment"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/internal/domain/user"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
)

// RecommendingUser is the projection used for both sides of the
// recommendation relation: user id, portfolio link, profile image, name.
type RecommendingUser struct {
	UserID       uuid.UUID  `json:"user_id"`
	PortfolioID  *uuid.UUID `json:"portfolio"`
	ProfileImage string     `json:"profile_image"`
	Name         string     `json:"name"`
}

// View is the assembled API response: the portfolio document with its
// comment and recommender references resolved into full objects, plus
// the owning user's `recommending` list.
type View struct {
	portfolio.Portfolio
	Comments        []*comment.Comment `json:"comments"`
	Recommendations []RecommendingUser `json:"recommendations"`
	Recommending    []RecommendingUser `json:"recommending"`
}

// Assembler performs the read-side joins explicitly: load portfolio,
// batch-load referenced comments and users, then shape the response.
type Assembler struct {
	users    user.Repository
	comments comment.Repository
}

func NewAssembler(users user.Repository, comments comment.Repository) *Assembler {
	return &Assembler{users: users, comments: comments}
}

// Assemble tolerates a nil portfolio: a caller without a portfolio gets a
// nil view, not an error.
func (a *Assembler) Assemble(ctx context.Context, p *portfolio.Portfolio) (*View, error) {
	if p == nil {
		return nil, nil
	}

	comments, err := a.comments.FindByIDs(ctx, p.Comments)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve portfolio comments", err)
	}

	recommenders, err := a.loadProjections(ctx, p.Recommendations)
	if err != nil {
		return nil, err
	}

	owner, err := a.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load portfolio owner", err)
	}

	recommending, err := a.loadProjections(ctx, owner.Recommending)
	if err != nil {
		return nil, err
	}

	return &View{
		Portfolio:       *p,
		Comments:        comments,
		Recommendations: recommenders,
		Recommending:    recommending,
	}, nil
}

func (a *Assembler) loadProjections(ctx context.Context, ids []uuid.UUID) ([]RecommendingUser, error) {
	users, err := a.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve recommendation users", err)
	}
	projections := make([]RecommendingUser, len(users))
	for i, u := range users {
		projections[i] = RecommendingUser{
			UserID:       u.ID,
			PortfolioID:  u.PortfolioID,
			ProfileImage: u.ProfileImage,
			Name:         u.Name,
		}
	}
	return projections, nil
}
