package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/panchofdez/portfolio-api/internal/application/usecase/auth"
	portfolioUC "github.com/panchofdez/portfolio-api/internal/application/usecase/portfolio"
	searchUC "github.com/panchofdez/portfolio-api/internal/application/usecase/search"
	"github.com/panchofdez/portfolio-api/internal/domain/comment"
	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/internal/domain/user"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	pkgauth "github.com/panchofdez/portfolio-api/pkg/auth"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

type memPortfolioRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]*portfolio.Portfolio
}

func (r *memPortfolioRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byUser[userID], nil
}

func (r *memPortfolioRepo) Save(_ context.Context, p *portfolio.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byUser[p.UserID]; ok && existing.ID != p.ID {
		return apperror.NewConflict("portfolio", "user_id", p.UserID.String())
	}
	r.byUser[p.UserID] = p
	return nil
}

func (r *memPortfolioRepo) Search(_ context.Context, query string, limit, _ int) ([]portfolio.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	results := []portfolio.Summary{}
	for _, p := range r.byUser {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) && len(results) < limit {
			results = append(results, portfolio.Summary{ID: p.ID, UserID: p.UserID, Name: p.Name})
		}
	}
	return results, nil
}

type memUserRepo struct {
	byID map[uuid.UUID]*user.User
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id.String())
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*user.User, error) {
	users := []*user.User{}
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *memUserRepo) Save(_ context.Context, u *user.User) error {
	r.byID[u.ID] = u
	return nil
}

type memCommentRepo struct{}

func (memCommentRepo) FindByIDs(_ context.Context, _ []uuid.UUID) ([]*comment.Comment, error) {
	return []*comment.Comment{}, nil
}

type memUploader struct {
	mu      sync.Mutex
	deleted []string
}

func (u *memUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	return fmt.Sprintf("https://cdn.example.com/%s/%s.jpg", folder, publicID), nil
}

func (u *memUploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, publicID)
	return nil
}

type PortfolioFlowSuite struct {
	suite.Suite
	router   *gin.Engine
	repo     *memPortfolioRepo
	uploader *memUploader
	owner    *user.User
	token    string
	password string
}

func (s *PortfolioFlowSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	s.password = "correct horse"
	hash, err := pkgauth.HashPassword(s.password)
	s.Require().NoError(err)

	s.owner = &user.User{
		ID:           uuid.New(),
		Email:        "pancho@example.com",
		Name:         "Pancho",
		PasswordHash: hash,
	}

	s.repo = &memPortfolioRepo{byUser: make(map[uuid.UUID]*portfolio.Portfolio)}
	users := &memUserRepo{byID: map[uuid.UUID]*user.User{s.owner.ID: s.owner}}
	s.uploader = &memUploader{}

	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	assembler := portfolioUC.NewAssembler(users, memCommentRepo{})

	profileUC := portfolioUC.NewProfileUseCase(s.repo, users, s.uploader, nil, assembler, log)
	timelineUC := portfolioUC.NewTimelineUseCase(s.repo, nil, assembler, log)
	videoUC := portfolioUC.NewVideoUseCase(s.repo, nil, assembler, log)
	collectionUC := portfolioUC.NewCollectionUseCase(s.repo, s.uploader, nil, assembler, "panchofdez", log)
	uploadUC := portfolioUC.NewUploadUseCase(s.uploader, "panchofdez", log)

	authHandler := NewAuthHandler(auth.NewLoginUseCase(users, jwtSvc, log))
	portfolioHandler := NewPortfolioHandler(profileUC, timelineUC, videoUC, collectionUC, uploadUC, log)
	searchHandler := NewSearchHandler(searchUC.NewSearchUseCase(s.repo, log))

	s.router = SetupRouter(
		authHandler,
		portfolioHandler,
		searchHandler,
		AuthMiddleware(jwtSvc),
		RequestIDMiddleware(),
		ErrorMiddleware(log),
	)

	s.token, err = jwtSvc.GenerateToken(s.owner.ID)
	s.Require().NoError(err)
}

func (s *PortfolioFlowSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PortfolioFlowSuite) decodeView(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *PortfolioFlowSuite) createProfile() {
	w := s.do(http.MethodPost, "/api/portfolio/profile", gin.H{
		"name":             "Pancho",
		"profile_image":    "me.jpg",
		"profile_image_id": "panchofdez/me",
		"skills":           []string{"painting"},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *PortfolioFlowSuite) TestRoutesRequireAuthentication() {
	req := httptest.NewRequest(http.MethodGet, "/api/portfolio/", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/portfolio/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *PortfolioFlowSuite) TestLogin() {
	w := s.do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    s.owner.Email,
		"password": s.password,
	})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(s.decodeView(w), "access_token")

	w = s.do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    s.owner.Email,
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *PortfolioFlowSuite) TestGetWithoutPortfolioReturnsNull() {
	w := s.do(http.MethodGet, "/api/portfolio/", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("null", strings.TrimSpace(w.Body.String()))
}

func (s *PortfolioFlowSuite) TestProfileLifecycle() {
	s.createProfile()

	w := s.do(http.MethodGet, "/api/portfolio/", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	view := s.decodeView(w)
	s.Equal("Pancho", view["name"])

	// a second create must conflict
	w = s.do(http.MethodPost, "/api/portfolio/profile", gin.H{"name": "Again"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *PortfolioFlowSuite) TestContactInfoIsFullReplace() {
	s.createProfile()

	w := s.do(http.MethodPut, "/api/portfolio/contactinfo", gin.H{"email": "new@example.com"})
	s.Require().Equal(http.StatusOK, w.Code)
	view := s.decodeView(w)
	s.Equal("new@example.com", view["email"])
	s.Empty(view["phone"])
}

func (s *PortfolioFlowSuite) TestTimelineRoutes() {
	s.createProfile()

	w := s.do(http.MethodPost, "/api/portfolio/timeline", gin.H{"date": "2020", "title": "started"})
	s.Require().Equal(http.StatusOK, w.Code)

	entries := s.decodeView(w)["timeline"].([]any)
	s.Require().Len(entries, 1)
	entryID := entries[0].(map[string]any)["id"].(string)

	w = s.do(http.MethodPut, "/api/portfolio/timeline/"+entryID, gin.H{"date": "2021", "title": "renamed"})
	s.Require().Equal(http.StatusOK, w.Code)
	entries = s.decodeView(w)["timeline"].([]any)
	s.Equal("renamed", entries[0].(map[string]any)["title"])

	w = s.do(http.MethodDelete, "/api/portfolio/timeline/"+entryID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(s.decodeView(w)["timeline"])
}

func (s *PortfolioFlowSuite) TestVideoRequiresLink() {
	s.createProfile()

	w := s.do(http.MethodPost, "/api/portfolio/videos", gin.H{"title": "no link"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/portfolio/videos", gin.H{"title": "Reel", "link": "https://youtu.be/abc"})
	s.Equal(http.StatusOK, w.Code)
}

func (s *PortfolioFlowSuite) TestCollectionPhotoRules() {
	s.createProfile()

	w := s.do(http.MethodPost, "/api/portfolio/collections", gin.H{
		"title":    "Portraits",
		"image":    "a.jpg",
		"image_id": "panchofdez/a",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	collections := s.decodeView(w)["collections"].([]any)
	s.Require().Len(collections, 1)
	collectionID := collections[0].(map[string]any)["id"].(string)

	// removing the only photo is rejected
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/portfolio/collections/%s/photos/a", collectionID), nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(s.uploader.deleted)

	// add a second photo, then the first can go
	w = s.do(http.MethodPut, "/api/portfolio/collections/"+collectionID, gin.H{
		"title":    "Portraits",
		"image":    "b.jpg",
		"image_id": "panchofdez/b",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/portfolio/collections/%s/photos/a", collectionID), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"panchofdez/a"}, s.uploader.deleted)

	// deleting the collection destroys the remaining asset
	w = s.do(http.MethodDelete, "/api/portfolio/collections/"+collectionID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(s.decodeView(w)["collections"])
	s.Contains(s.uploader.deleted, "panchofdez/b")
}

func (s *PortfolioFlowSuite) TestUploadImage() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.jpg")
	s.Require().NoError(err)
	_, err = part.Write([]byte("not really a jpeg"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	out := s.decodeView(w)
	s.Contains(out["image"], "https://cdn.example.com/panchofdez/")
	s.True(strings.HasPrefix(out["image_id"].(string), "panchofdez/"))

	// no file part is a client error
	req = httptest.NewRequest(http.MethodPost, "/api/portfolio/images", nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PortfolioFlowSuite) TestMalformedPathIDIsRejected() {
	s.createProfile()

	w := s.do(http.MethodDelete, "/api/portfolio/videos/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PortfolioFlowSuite) TestPublicSearch() {
	s.createProfile()

	req := httptest.NewRequest(http.MethodGet, "/api/portfolios/search?q=pancho", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var results []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &results))
	s.Require().Len(results, 1)
	s.Equal("Pancho", results[0]["name"])

	// empty query short-circuits to an empty list
	req = httptest.NewRequest(http.MethodGet, "/api/portfolios/search", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("[]", strings.TrimSpace(w.Body.String()))
}

func TestPortfolioFlowSuite(t *testing.T) {
	suite.Run(t, new(PortfolioFlowSuite))
}
