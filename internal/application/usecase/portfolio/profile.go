package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/panchofdez/portfolio-api/adapters/event"
	"github.com/panchofdez/portfolio-api/internal/application/service"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/internal/domain/user"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

// ProfileUseCase covers retrieval, profile creation and the full-replace
// field updates (profile, contact info, about, skills).
type ProfileUseCase struct {
	portfolios portfolio.Repository
	users      user.Repository
	uploader   service.Uploader
	events     EventPublisher
	assembler  *Assembler
	logger     logger.Logger
}

func NewProfileUseCase(
	portfolios portfolio.Repository,
	users user.Repository,
	uploader service.Uploader,
	events EventPublisher,
	assembler *Assembler,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		portfolios: portfolios,
		users:      users,
		uploader:   uploader,
		events:     events,
		assembler:  assembler,
		logger:     log,
	}
}

// loadOwned fetches the caller's portfolio for a mutating operation.
// Mutations require an existing document; only Get tolerates absence.
func loadOwned(ctx context.Context, repo portfolio.Repository, userID uuid.UUID) (*portfolio.Portfolio, error) {
	p, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("portfolio", userID.String())
	}
	return p, nil
}

// Get returns the assembled view, or nil when the caller has no
// portfolio yet. Absence is a valid outcome, not an error.
func (uc *ProfileUseCase) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	ctx, span := tracer.Start(ctx, "GetPortfolio")
	defer span.End()

	p, err := uc.portfolios.FindByUserID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return uc.assembler.Assemble(ctx, p)
}

type CreateProfileInput struct {
	UserID         uuid.UUID
	Name           string
	ProfileImage   string
	ProfileImageID string
	HeaderImage    string
	HeaderImageID  string
	Email          string
	Phone          string
	Facebook       string
	Instagram      string
	Birthday       string
	Location       string
	Type           string
	About          string
	Statement      string
	Skills         []string
}

// CreateProfile creates the caller's portfolio, mirrors the profile image
// onto the user account and links the new portfolio id back onto it. The
// store's unique key on user_id rejects a second portfolio with a
// conflict.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, input CreateProfileInput) (*View, error) {
	u, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p := &portfolio.Portfolio{
		ID:             uuid.New(),
		UserID:         input.UserID,
		Name:           input.Name,
		ProfileImage:   input.ProfileImage,
		ProfileImageID: input.ProfileImageID,
		HeaderImage:    input.HeaderImage,
		HeaderImageID:  input.HeaderImageID,
		Email:          input.Email,
		Phone:          input.Phone,
		Facebook:       input.Facebook,
		Instagram:      input.Instagram,
		Birthday:       input.Birthday,
		Location:       input.Location,
		Type:           input.Type,
		About:          input.About,
		Statement:      input.Statement,
		Skills:         input.Skills,
	}

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	u.ProfileImage = input.ProfileImage
	u.PortfolioID = &p.ID
	if err := uc.users.Save(ctx, u); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeCreated, p)
	return uc.assembler.Assemble(ctx, p)
}

type UpdateProfileInput struct {
	UserID         uuid.UUID
	Name           string
	ProfileImage   string
	ProfileImageID string
	HeaderImage    string
	HeaderImageID  string
}

// UpdateProfile overwrites the display name and replaces the profile and
// header images. When an incoming image differs from the stored one the
// previous asset is deleted first; a failed deletion aborts the whole
// operation so the document and the media host never diverge.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*View, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	p, err := loadOwned(ctx, uc.portfolios, input.UserID)
	if err != nil {
		return nil, err
	}
	u, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.ProfileImage != "" && input.ProfileImage != p.ProfileImage {
		if p.ProfileImageID != "" {
			if err := uc.uploader.Delete(ctx, p.ProfileImageID); err != nil {
				span.RecordError(err)
				return nil, apperror.NewUpstream("failed to delete previous profile image", err)
			}
		}
		p.ProfileImage = input.ProfileImage
		p.ProfileImageID = input.ProfileImageID
		u.ProfileImage = input.ProfileImage
	}

	if input.HeaderImage != "" && input.HeaderImage != p.HeaderImage {
		if p.HeaderImageID != "" {
			if err := uc.uploader.Delete(ctx, p.HeaderImageID); err != nil {
				span.RecordError(err)
				return nil, apperror.NewUpstream("failed to delete previous header image", err)
			}
		}
		p.HeaderImage = input.HeaderImage
		p.HeaderImageID = input.HeaderImageID
	}

	p.Name = input.Name

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.users.Save(ctx, u); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

type UpdateContactInfoInput struct {
	UserID    uuid.UUID
	Email     string
	Phone     string
	Facebook  string
	Instagram string
}

// UpdateContactInfo is a full replace: empty values overwrite stored ones.
func (uc *ProfileUseCase) UpdateContactInfo(ctx context.Context, input UpdateContactInfoInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, input.UserID)
	if err != nil {
		return nil, err
	}

	p.Email = input.Email
	p.Phone = input.Phone
	p.Facebook = input.Facebook
	p.Instagram = input.Instagram

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

type UpdateAboutInput struct {
	UserID   uuid.UUID
	Location string
	Type     string
	Birthday string
	About    string
}

func (uc *ProfileUseCase) UpdateAbout(ctx context.Context, input UpdateAboutInput) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, input.UserID)
	if err != nil {
		return nil, err
	}

	p.Location = input.Location
	p.Type = input.Type
	p.Birthday = input.Birthday
	p.About = input.About

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}

// ReplaceSkills swaps the whole skills list for the supplied one.
func (uc *ProfileUseCase) ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) (*View, error) {
	p, err := loadOwned(ctx, uc.portfolios, userID)
	if err != nil {
		return nil, err
	}

	p.Skills = skills

	if err := uc.portfolios.Save(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Debug("replaced skills", zap.String("user_id", userID.String()), zap.Int("count", len(skills)))
	publishPortfolioEvent(uc.events, uc.logger, event.PortfolioEventTypeUpdated, p)
	return uc.assembler.Assemble(ctx, p)
}
