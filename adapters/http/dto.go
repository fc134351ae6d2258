package http

// Request DTOs for the portfolio routes. Responses reuse the assembled
// view and summary types directly.

type CreateProfileRequest struct {
	Name           string   `json:"name"`
	ProfileImage   string   `json:"profile_image"`
	ProfileImageID string   `json:"profile_image_id"`
	HeaderImage    string   `json:"header_image"`
	HeaderImageID  string   `json:"header_image_id"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Facebook       string   `json:"facebook"`
	Instagram      string   `json:"instagram"`
	Birthday       string   `json:"birthday"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	About          string   `json:"about"`
	Statement      string   `json:"statement"`
	Skills         []string `json:"skills"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	ProfileImage   string `json:"profile_image"`
	ProfileImageID string `json:"profile_image_id"`
	HeaderImage    string `json:"header_image"`
	HeaderImageID  string `json:"header_image_id"`
}

type UpdateContactInfoRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

type UpdateAboutRequest struct {
	Location string `json:"location"`
	Type     string `json:"type"`
	Birthday string `json:"birthday"`
	About    string `json:"about"`
}

type ReplaceSkillsRequest struct {
	Skills []string `json:"skills"`
}

type TimelineEntryRequest struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type VideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link" binding:"required"`
}

type CreateCollectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageID     string `json:"image_id"`
}

type UpdateCollectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageID     string `json:"image_id"`
}
