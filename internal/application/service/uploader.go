package service

import (
	"context"
	"io"
)

// Uploader is the boundary to the image-hosting service. The portfolio
// CRUD core only ever deletes assets by public id; uploads arrive through
// the transport layer, which hands the handlers a stored reference plus
// public id.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
