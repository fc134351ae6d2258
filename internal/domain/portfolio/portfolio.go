package portfolio

import (
	"context"

	"github.com/google/uuid"
)

// Photo is a stored image reference plus the media host's public id.
type Photo struct {
	Image   string `json:"image"`
	ImageID string `json:"image_id"`
}

type TimelineEntry struct {
	ID    uuid.UUID `json:"id"`
	Date  string    `json:"date"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
}

// Collection groups photos under a title. Once created it must keep at
// least one photo; removal of the last photo is rejected by the usecase.
type Collection struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Photos      []Photo   `json:"photos"`
}

type Video struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
}

// Portfolio is the single aggregate document for one user's public
// profile. Embedded lists have no lifecycle of their own; every change
// goes through a load-mutate-save of the whole document.
type Portfolio struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	ProfileImage    string          `json:"profile_image"`
	ProfileImageID  string          `json:"profile_image_id"`
	HeaderImage     string          `json:"header_image"`
	HeaderImageID   string          `json:"header_image_id"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Facebook        string          `json:"facebook"`
	Instagram       string          `json:"instagram"`
	Birthday        string          `json:"birthday"`
	Location        string          `json:"location"`
	Type            string          `json:"type"`
	Name            string          `json:"name"`
	About           string          `json:"about"`
	Statement       string          `json:"statement"`
	Skills          []string        `json:"skills"`
	Collections     []Collection    `json:"collections"`
	Videos          []Video         `json:"videos"`
	Timeline        []TimelineEntry `json:"timeline"`
	Comments        []uuid.UUID     `json:"comments"`
	Recommendations []uuid.UUID     `json:"recommendations"`
}

// Summary is the projection used by the public search listing.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	ProfileImage string    `json:"profile_image"`
}

type Repository interface {
	// FindByUserID returns (nil, nil) when the user has no portfolio yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Portfolio, error)
	Save(ctx context.Context, p *Portfolio) error
	Search(ctx context.Context, query string, limit, offset int) ([]Summary, error)
}

func (c *Collection) FindPhotoByImageID(imageID string) (Photo, bool) {
	for _, photo := range c.Photos {
		if photo.ImageID == imageID {
			return photo, true
		}
	}
	return Photo{}, false
}

func (p *Portfolio) FindCollection(id uuid.UUID) (*Collection, bool) {
	for i := range p.Collections {
		if p.Collections[i].ID == id {
			return &p.Collections[i], true
		}
	}
	return nil, false
}
