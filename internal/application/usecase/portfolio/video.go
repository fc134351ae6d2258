package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

type VideoUseCase struct {
	portfolios portfolio.Repository
	events     EventPublisher
	assembler  *Assembler
	logger     logger.Logger
}

func NewVideoUseCase(portfolios portfolio.Repository, events EventPublisher, assembler *Assembler, log logger.Logger) *VideoUseCase {
	return &VideoUseCase{portfolios: portfolios, events: events, assembler: assembler, logger: log}
}

type VideoInput struct {
	Title       string
	Description string
	Link        string
}

func (uc *VideoUseCase) Add(ctx context.Context, userID uuid.UUID, input VideoInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	p.Videos = append(p.Videos, portfolio.Video{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
	})

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

// Update overwrites title, description and link in place; a miss is an
// idempotent no-op.
func (uc *VideoUseCase) Update(ctx context.Context, userID, videoID uuid.UUID, input VideoInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	for i := range p.Videos {
		if p.Videos[i].ID == videoID {
			p.Videos[i].Title = input.Title
			p.Videos[i].Description = input.Description
			p.Videos[i].Link = input.Link
			break
		}
	}

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

func (uc *VideoUseCase) Delete(ctx context.Context, userID, videoID uuid.UUID) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	kept := p.Videos[:0]
	for _, video := range p.Videos {
		if video.ID != videoID {
			kept = append(kept, video)
		}
	}
	p.Videos = kept

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}
