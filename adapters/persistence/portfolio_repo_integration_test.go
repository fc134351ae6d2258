package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/internal/domain/user"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

type PortfolioRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool        *pgxpool.Pool
	pgContainer   *postgres.PostgresContainer
	portfolioRepo portfolio.Repository
	userRepo      user.Repository
}

func (s *PortfolioRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.portfolioRepo = NewPostgresPortfolioRepo(s.dbPool, logger.NewNop())
	s.userRepo = NewPostgresUserRepo(s.dbPool)
}

func (s *PortfolioRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *PortfolioRepoIntegrationTestSuite) seedUser() *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("user-%s@example.com", uuid.New()),
		PasswordHash: "hashedpassword",
	}
	query := `INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`
	_, err := s.dbPool.Exec(context.Background(), query, u.ID, u.Email, u.PasswordHash)
	if err != nil {
		s.T().Fatalf("Failed to seed user: %s", err)
	}
	return u
}

func TestPortfolioRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PortfolioRepoIntegrationTestSuite))
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Save_And_FindByUserID() {
	ctx := context.Background()
	owner := s.seedUser()

	p := &portfolio.Portfolio{
		ID:       uuid.New(),
		UserID:   owner.ID,
		Name:     "Pancho",
		Location: "Toronto",
		Type:     "photographer",
		Skills:   []string{"portraits", "landscapes"},
		Collections: []portfolio.Collection{{
			ID:     uuid.New(),
			Title:  "Portraits",
			Photos: []portfolio.Photo{{Image: "a.jpg", ImageID: "panchofdez/a"}},
		}},
		Timeline: []portfolio.TimelineEntry{{ID: uuid.New(), Date: "2020", Title: "started"}},
	}

	s.NoError(s.portfolioRepo.Save(ctx, p))

	found, err := s.portfolioRepo.FindByUserID(ctx, owner.ID)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(p.ID, found.ID)
	s.Equal("Pancho", found.Name)
	s.Equal([]string{"portraits", "landscapes"}, found.Skills)
	s.Require().Len(found.Collections, 1)
	s.Equal("panchofdez/a", found.Collections[0].Photos[0].ImageID)
	s.Require().Len(found.Timeline, 1)
	s.Equal("started", found.Timeline[0].Title)
	// absent lists come back as empty slices, not nil
	s.NotNil(found.Videos)
	s.NotNil(found.Comments)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_FindByUserID_AbsentIsNilNil() {
	found, err := s.portfolioRepo.FindByUserID(context.Background(), uuid.New())
	s.NoError(err)
	s.Nil(found)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Save_UpsertsByID() {
	ctx := context.Background()
	owner := s.seedUser()

	p := &portfolio.Portfolio{ID: uuid.New(), UserID: owner.ID, Name: "before"}
	s.NoError(s.portfolioRepo.Save(ctx, p))

	p.Name = "after"
	p.Videos = []portfolio.Video{{ID: uuid.New(), Title: "Reel", Link: "https://youtu.be/abc"}}
	s.NoError(s.portfolioRepo.Save(ctx, p))

	found, err := s.portfolioRepo.FindByUserID(ctx, owner.ID)
	s.NoError(err)
	s.Equal("after", found.Name)
	s.Len(found.Videos, 1)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Save_SecondPortfolioForUserConflicts() {
	ctx := context.Background()
	owner := s.seedUser()

	s.NoError(s.portfolioRepo.Save(ctx, &portfolio.Portfolio{ID: uuid.New(), UserID: owner.ID}))

	err := s.portfolioRepo.Save(ctx, &portfolio.Portfolio{ID: uuid.New(), UserID: owner.ID})
	s.Require().Error(err)
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Search() {
	ctx := context.Background()

	painter := s.seedUser()
	sculptor := s.seedUser()
	s.NoError(s.portfolioRepo.Save(ctx, &portfolio.Portfolio{
		ID: uuid.New(), UserID: painter.ID, Name: "Avery", Location: "Lisbon", Type: "painter",
	}))
	s.NoError(s.portfolioRepo.Save(ctx, &portfolio.Portfolio{
		ID: uuid.New(), UserID: sculptor.ID, Name: "Blake", Location: "Porto", Type: "sculptor",
	}))

	results, err := s.portfolioRepo.Search(ctx, "painter", 10, 0)
	s.NoError(err)
	s.Require().Len(results, 1)
	s.Equal("Avery", results[0].Name)

	results, err = s.portfolioRepo.Search(ctx, "lisb", 10, 0)
	s.NoError(err)
	s.Len(results, 1)

	results, err = s.portfolioRepo.Search(ctx, "no-such-artist", 10, 0)
	s.NoError(err)
	s.Empty(results)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_UserRepo_SaveAndFindByIDs() {
	ctx := context.Background()
	u := s.seedUser()

	portfolioID := uuid.New()
	u.Name = "Renamed"
	u.ProfileImage = "me.jpg"
	u.PortfolioID = &portfolioID
	u.Recommending = []uuid.UUID{uuid.New()}
	s.NoError(s.userRepo.Save(ctx, u))

	found, err := s.userRepo.FindByID(ctx, u.ID)
	s.NoError(err)
	s.Equal("Renamed", found.Name)
	s.Require().NotNil(found.PortfolioID)
	s.Equal(portfolioID, *found.PortfolioID)
	s.Equal(u.Recommending, found.Recommending)

	many, err := s.userRepo.FindByIDs(ctx, []uuid.UUID{u.ID, uuid.New()})
	s.NoError(err)
	s.Len(many, 1)
}
