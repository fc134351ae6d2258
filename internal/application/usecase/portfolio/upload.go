package portfolio

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/panchofdez/portfolio-api/internal/application/service"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

// UploadUseCase pushes an image to the media host and hands back the
// reference pair the document routes store: the hosted URL and the
// "<folder>/<photo_id>" public id.
type UploadUseCase struct {
	uploader    service.Uploader
	assetFolder string
	logger      logger.Logger
}

func NewUploadUseCase(uploader service.Uploader, assetFolder string, log logger.Logger) *UploadUseCase {
	return &UploadUseCase{uploader: uploader, assetFolder: assetFolder, logger: log}
}

type UploadOutput struct {
	Image   string `json:"image"`
	ImageID string `json:"image_id"`
}

func (uc *UploadUseCase) Execute(ctx context.Context, file io.Reader) (*UploadOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadImage")
	defer span.End()

	photoID := uuid.NewString()
	url, err := uc.uploader.Upload(ctx, file, uc.assetFolder, photoID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewUpstream("failed to upload image", err)
	}

	return &UploadOutput{
		Image:   url,
		ImageID: uc.assetFolder + "/" + photoID,
	}, nil
}
