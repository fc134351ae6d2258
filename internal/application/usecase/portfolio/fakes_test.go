package portfolio

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/internal/domain/comment"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/internal/domain/user"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
)

type fakePortfolioRepo struct {
	byUser    map[uuid.UUID]*portfolio.Portfolio
	saveCount int
	saveErr   error
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{byUser: make(map[uuid.UUID]*portfolio.Portfolio)}
}

func (r *fakePortfolioRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*portfolio.Portfolio, error) {
	return r.byUser[userID], nil
}

func (r *fakePortfolioRepo) Save(_ context.Context, p *portfolio.Portfolio) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	for id, existing := range r.byUser {
		if id == p.UserID && existing.ID != p.ID {
			return apperror.NewConflict("portfolio", "user_id", p.UserID.String())
		}
	}
	r.saveCount++
	r.byUser[p.UserID] = p
	return nil
}

func (r *fakePortfolioRepo) Search(_ context.Context, _ string, _, _ int) ([]portfolio.Summary, error) {
	return nil, errors.New("not implemented")
}

type fakeUserRepo struct {
	byID map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*user.User, error) {
	users := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	r.byID[u.ID] = u
	return nil
}

type fakeCommentRepo struct {
	byID map[uuid.UUID]*comment.Comment
}

func newFakeCommentRepo(comments ...*comment.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{byID: make(map[uuid.UUID]*comment.Comment)}
	for _, c := range comments {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCommentRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*comment.Comment, error) {
	comments := make([]*comment.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// fakeUploader records delete calls and can fail selected public ids.
type fakeUploader struct {
	mu      sync.Mutex
	deleted []string
	failOn  map[string]error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{failOn: make(map[string]error)}
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, _, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func (u *fakeUploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err, ok := u.failOn[publicID]; ok {
		return err
	}
	u.deleted = append(u.deleted, publicID)
	return nil
}

func (u *fakeUploader) deletedIDs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.deleted))
	copy(out, u.deleted)
	return out
}

type fakePublisher struct {
	mu              sync.Mutex
	portfolioEvents []event.PortfolioEventPayload
	assetEvents     []event.AssetEventPayload
}

func (p *fakePublisher) PublishPortfolioEvent(_ context.Context, payload event.PortfolioEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.portfolioEvents = append(p.portfolioEvents, payload)
	return nil
}

func (p *fakePublisher) PublishAssetEvent(_ context.Context, payload event.AssetEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assetEvents = append(p.assetEvents, payload)
	return nil
}

func (p *fakePublisher) assetEventIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, len(p.assetEvents))
	for i, e := range p.assetEvents {
		ids[i] = e.PublicID
	}
	return ids
}
