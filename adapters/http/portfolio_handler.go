package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioUC "github.com/panchofdez/portfolio-api/internal/application/usecase/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

type PortfolioHandler struct {
	profileUC    *portfolioUC.ProfileUseCase
	timelineUC   *portfolioUC.TimelineUseCase
	videoUC      *portfolioUC.VideoUseCase
	collectionUC *portfolioUC.CollectionUseCase
	uploadUC     *portfolioUC.UploadUseCase
	logger       logger.Logger
}

func NewPortfolioHandler(
	profileUC *portfolioUC.ProfileUseCase,
	timelineUC *portfolioUC.TimelineUseCase,
	videoUC *portfolioUC.VideoUseCase,
	collectionUC *portfolioUC.CollectionUseCase,
	uploadUC *portfolioUC.UploadUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		profileUC:    profileUC,
		timelineUC:   timelineUC,
		videoUC:      videoUC,
		collectionUC: collectionUC,
		uploadUC:     uploadUC,
		logger:       log,
	}
}

func (h *PortfolioHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

// respond renders the assembled view; a nil view (no portfolio yet) is a
// valid 200 with a null body.
func respond(c *gin.Context, view *portfolioUC.View, err error) {
	if err != nil {
		c.Error(err)
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	view, err := h.profileUC.Get(c.Request.Context(), userID)
	respond(c, view, err)
}

func (h *PortfolioHandler) CreateProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile creation", err))
		return
	}

	input := portfolioUC.CreateProfileInput{
		UserID:         userID,
		Name:           req.Name,
		ProfileImage:   req.ProfileImage,
		ProfileImageID: req.ProfileImageID,
		HeaderImage:    req.HeaderImage,
		HeaderImageID:  req.HeaderImageID,
		Email:          req.Email,
		Phone:          req.Phone,
		Facebook:       req.Facebook,
		Instagram:      req.Instagram,
		Birthday:       req.Birthday,
		Location:       req.Location,
		Type:           req.Type,
		About:          req.About,
		Statement:      req.Statement,
		Skills:         req.Skills,
	}
	view, err := h.profileUC.CreateProfile(c.Request.Context(), input)
	respond(c, view, err)
}

func (h *PortfolioHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := portfolioUC.UpdateProfileInput{
		UserID:         userID,
		Name:           req.Name,
		ProfileImage:   req.ProfileImage,
		ProfileImageID: req.ProfileImageID,
		HeaderImage:    req.HeaderImage,
		HeaderImageID:  req.HeaderImageID,
	}
	view, err := h.profileUC.UpdateProfile(c.Request.Context(), input)
	respond(c, view, err)
}

func (h *PortfolioHandler) UpdateContactInfo(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req UpdateContactInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for contact info", err))
		return
	}

	input := portfolioUC.UpdateContactInfoInput{
		UserID:    userID,
		Email:     req.Email,
		Phone:     req.Phone,
		Facebook:  req.Facebook,
		Instagram: req.Instagram,
	}
	view, err := h.profileUC.UpdateContactInfo(c.Request.Context(), input)
	respond(c, view, err)
}

func (h *PortfolioHandler) UpdateAbout(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req UpdateAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for about update", err))
		return
	}

	input := portfolioUC.UpdateAboutInput{
		UserID:   userID,
		Location: req.Location,
		Type:     req.Type,
		Birthday: req.Birthday,
		About:    req.About,
	}
	view, err := h.profileUC.UpdateAbout(c.Request.Context(), input)
	respond(c, view, err)
}

func (h *PortfolioHandler) ReplaceSkills(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req ReplaceSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skills", err))
		return
	}

	view, err := h.profileUC.ReplaceSkills(c.Request.Context(), userID, req.Skills)
	respond(c, view, err)
}

func (h *PortfolioHandler) AddTimelineEntry(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req TimelineEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for timeline entry", err))
		return
	}

	view, err := h.timelineUC.Add(c.Request.Context(), userID, portfolioUC.TimelineEntryInput{
		Date:  req.Date,
		Title: req.Title,
		Text:  req.Text,
	})
	respond(c, view, err)
}

func (h *PortfolioHandler) UpdateTimelineEntry(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TimelineEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for timeline entry", err))
		return
	}

	view, err := h.timelineUC.Update(c.Request.Context(), userID, entryID, portfolioUC.TimelineEntryInput{
		Date:  req.Date,
		Title: req.Title,
		Text:  req.Text,
	})
	respond(c, view, err)
}

func (h *PortfolioHandler) DeleteTimelineEntry(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.timelineUC.Delete(c.Request.Context(), userID, entryID)
	respond(c, view, err)
}

func (h *PortfolioHandler) AddVideo(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for video", err))
		return
	}

	view, err := h.videoUC.Add(c.Request.Context(), userID, portfolioUC.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	respond(c, view, err)
}

func (h *PortfolioHandler) UpdateVideo(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	videoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for video", err))
		return
	}

	view, err := h.videoUC.Update(c.Request.Context(), userID, videoID, portfolioUC.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	respond(c, view, err)
}

func (h *PortfolioHandler) DeleteVideo(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	videoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.videoUC.Delete(c.Request.Context(), userID, videoID)
	respond(c, view, err)
}

func (h *PortfolioHandler) CreateCollection(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for collection", err))
		return
	}

	view, err := h.collectionUC.Create(c.Request.Context(), portfolioUC.CreateCollectionInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		ImageID:     req.ImageID,
	})
	respond(c, view, err)
}

func (h *PortfolioHandler) UpdateCollection(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	collectionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for collection", err))
		return
	}

	view, err := h.collectionUC.Update(c.Request.Context(), portfolioUC.UpdateCollectionInput{
		UserID:       userID,
		CollectionID: collectionID,
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		ImageID:      req.ImageID,
	})
	respond(c, view, err)
}

func (h *PortfolioHandler) DeleteCollection(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	collectionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.collectionUC.Delete(c.Request.Context(), userID, collectionID)
	respond(c, view, err)
}

// UploadImage accepts a multipart image and returns the stored reference
// pair the document routes expect in their payloads.
func (h *PortfolioHandler) UploadImage(c *gin.Context) {
	if _, ok := h.callerID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadUC.Execute(c.Request.Context(), file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

func (h *PortfolioHandler) DeleteCollectionPhoto(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	collectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	photoID := c.Param("photo_id")
	if photoID == "" {
		c.Error(apperror.NewInvalidInput("photo_id is required", nil))
		return
	}

	view, err := h.collectionUC.DeletePhoto(c.Request.Context(), userID, collectionID, photoID)
	respond(c, view, err)
}
