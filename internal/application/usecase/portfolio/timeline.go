package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

type TimelineUseCase struct {
	portfolios portfolio.Repository
	events     EventPublisher
	assembler  *Assembler
	logger     logger.Logger
}

func NewTimelineUseCase(portfolios portfolio.Repository, events EventPublisher, assembler *Assembler, log logger.Logger) *TimelineUseCase {
	return &TimelineUseCase{portfolios: portfolios, events: events, assembler: assembler, logger: log}
}

type TimelineEntryInput struct {
	Date  string
	Title string
	Text  string
}

// Add appends one entry; insertion order is the only ordering.
func (uc *TimelineUseCase) Add(ctx context.Context, userID uuid.UUID, input TimelineEntryInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	p.Timeline = append(p.Timeline, portfolio.TimelineEntry{
		ID:    uuid.New(),
		Date:  input.Date,
		Title: input.Title,
		Text:  input.Text,
	})

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

// Update replaces the matching entry wholesale. A miss is an idempotent
// no-op: the sequence is untouched and the save still succeeds.
func (uc *TimelineUseCase) Update(ctx context.Context, userID, entryID uuid.UUID, input TimelineEntryInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	for i := range p.Timeline {
		if p.Timeline[i].ID == entryID {
			p.Timeline[i] = portfolio.TimelineEntry{
				ID:    entryID,
				Date:  input.Date,
				Title: input.Title,
				Text:  input.Text,
			}
			break
		}
	}

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

// Delete removes the matching entry; a miss is an idempotent no-op.
func (uc *TimelineUseCase) Delete(ctx context.Context, userID, entryID uuid.UUID) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	kept := p.Timeline[:0]
	for _, entry := range p.Timeline {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	p.Timeline = kept

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}
