package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/internal/application/service"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

const assetDeleteConcurrency = 4

type CollectionUseCase struct {
	portfolios portfolio.Repository
	uploader   service.Uploader
	events     EventPublisher
	assembler  *Assembler
	// assetFolder is the namespace prefix; the single-photo delete route
	// derives the public id as "<assetFolder>/<photo_id>".
	assetFolder string
	logger      logger.Logger
}

func NewCollectionUseCase(
	portfolios portfolio.Repository,
	uploader service.Uploader,
	events EventPublisher,
	assembler *Assembler,
	assetFolder string,
	log logger.Logger,
) *CollectionUseCase {
	return &CollectionUseCase{
		portfolios:  portfolios,
		uploader:    uploader,
		events:      events,
		assembler:   assembler,
		assetFolder: assetFolder,
		logger:      log,
	}
}

type CreateCollectionInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Image       string
	ImageID     string
}

// Create adds a collection seeded with at most one photo, built from the
// optional image/imageID pair of the request.
func (uc *CollectionUseCase) Create(ctx context.Context, input CreateCollectionInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, input.UserID)
	if err != nil {
		return nil, err
	}

	photos := []portfolio.Photo{}
	if input.Image != "" {
		photos = append(photos, portfolio.Photo{Image: input.Image, ImageID: input.ImageID})
	}

	p.Collections = append(p.Collections, portfolio.Collection{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Photos:      photos,
	})

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

type UpdateCollectionInput struct {
	UserID       uuid.UUID
	CollectionID uuid.UUID
	Title        string
	Description  string
	Image        string
	ImageID      string
}

// Update overwrites title and description and appends any newly supplied
// photo. Photos are additive here; existing ones are never discarded.
func (uc *CollectionUseCase) Update(ctx context.Context, input UpdateCollectionInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, input.UserID)
	if err != nil {
		return nil, err
	}

	for i := range p.Collections {
		if p.Collections[i].ID == input.CollectionID {
			p.Collections[i].Title = input.Title
			p.Collections[i].Description = input.Description
			if input.Image != "" {
				p.Collections[i].Photos = append(p.Collections[i].Photos, portfolio.Photo{
					Image:   input.Image,
					ImageID: input.ImageID,
				})
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

// Delete removes a collection after requesting deletion of every photo's
// asset. Deletions fan out with bounded concurrency and are best-effort:
// a failed destroy is logged and republished for the cleanup worker, and
// the collection is removed either way.
func (uc *CollectionUseCase) Delete(ctx context.Context, userID, collectionID uuid.UUID) (*View, error) {
	ctx, span := tracer.Start(ctx, "DeleteCollection")
	defer span.End()

	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	target, ok := p.FindCollection(collectionID)
	if !ok {
		return nil, apperror.NewNotFound("collection", collectionID.String())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(assetDeleteConcurrency)
	for _, photo := range target.Photos {
		g.Go(func() error {
			if err := uc.uploader.Delete(gctx, photo.ImageID); err != nil {
				uc.logger.Warn("failed to delete collection photo asset, queueing retry",
					zap.String("public_id", photo.ImageID), zap.Error(err))
				uc.requestAssetCleanup(userID, photo.ImageID)
			}
			return nil
		})
	}
	g.Wait()

	kept := p.Collections[:0]
	for _, c := range p.Collections {
		if c.ID != collectionID {
			kept = append(kept, c)
		}
	}
	p.Collections = kept

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

// DeletePhoto removes one photo, matched by the derived public id. The
// asset is destroyed before the document is persisted; if the destroy
// fails nothing is saved, so the stored references never point at a
// half-deleted asset.
func (uc *CollectionUseCase) DeletePhoto(ctx context.Context, userID, collectionID uuid.UUID, photoID string) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	target, ok := p.FindCollection(collectionID)
	if !ok {
		return nil, apperror.NewNotFound("collection", collectionID.String())
	}
	if len(target.Photos) == 1 {
		return nil, apperror.NewInvalidInput("collection must have at least one photo", nil)
	}

	publicID := uc.assetFolder + "/" + photoID
	if err := uc.uploader.Delete(ctx, publicID); err != nil {
		return nil, apperror.NewUpstream("failed to delete photo asset", err)
	}

	kept := target.Photos[:0]
	for _, photo := range target.Photos {
		if photo.ImageID != publicID {
			kept = append(kept, photo)
		}
	}
	target.Photos = kept

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

func (uc *CollectionUseCase) requestAssetCleanup(userID uuid.UUID, publicID string) {
	if uc.events == nil {
		return
	}
	payload := event.AssetEventPayload{
		EventType: event.AssetEventTypeDeleteRequested,
		UserID:    userID,
		PublicID:  publicID,
	}
	if err := uc.events.PublishAssetEvent(context.Background(), payload); err != nil {
		uc.logger.Error("Failed to publish asset cleanup event", err, zap.String("public_id", publicID))
	}
}
