package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const pgUniqueViolation = "23505"

// postgresPortfolioRepo persists the whole aggregate as one row: scalar
// profile fields as columns, the embedded lists as JSONB.
type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

func (r *postgresPortfolioRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*portfolio.Portfolio, error) {
	query := `
		SELECT id, user_id, profile_image, profile_image_id, header_image, header_image_id,
		       email, phone, facebook, instagram, birthday, location, type, name, about,
		       statement, skills, collections, videos, timeline, comments, recommendations
		FROM portfolios
		WHERE user_id = $1
	`
	p := &portfolio.Portfolio{}
	var skillsBytes, collectionsBytes, videosBytes, timelineBytes, commentsBytes, recommendationsBytes []byte

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.ProfileImage,
		&p.ProfileImageID,
		&p.HeaderImage,
		&p.HeaderImageID,
		&p.Email,
		&p.Phone,
		&p.Facebook,
		&p.Instagram,
		&p.Birthday,
		&p.Location,
		&p.Type,
		&p.Name,
		&p.About,
		&p.Statement,
		&skillsBytes,
		&collectionsBytes,
		&videosBytes,
		&timelineBytes,
		&commentsBytes,
		&recommendationsBytes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query portfolio", err)
	}

	r.unmarshalList(userID, "skills", skillsBytes, &p.Skills)
	r.unmarshalList(userID, "collections", collectionsBytes, &p.Collections)
	r.unmarshalList(userID, "videos", videosBytes, &p.Videos)
	r.unmarshalList(userID, "timeline", timelineBytes, &p.Timeline)
	r.unmarshalList(userID, "comments", commentsBytes, &p.Comments)
	r.unmarshalList(userID, "recommendations", recommendationsBytes, &p.Recommendations)

	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Collections == nil {
		p.Collections = []portfolio.Collection{}
	}
	if p.Videos == nil {
		p.Videos = []portfolio.Video{}
	}
	if p.Timeline == nil {
		p.Timeline = []portfolio.TimelineEntry{}
	}
	if p.Comments == nil {
		p.Comments = []uuid.UUID{}
	}
	if p.Recommendations == nil {
		p.Recommendations = []uuid.UUID{}
	}

	return p, nil
}

func (r *postgresPortfolioRepo) unmarshalList(userID uuid.UUID, field string, data []byte, dest any) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Warn("Failed to unmarshal portfolio field",
			zap.String("user_id", userID.String()), zap.String("field", field), zap.Error(err))
	}
}

// Save upserts by portfolio id. The unique key on user_id makes a second
// portfolio for the same user a conflict instead of a silent duplicate.
func (r *postgresPortfolioRepo) Save(ctx context.Context, p *portfolio.Portfolio) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	collectionsBytes, err := json.Marshal(p.Collections)
	if err != nil {
		return apperror.NewInternal("failed to marshal collections", err)
	}
	videosBytes, err := json.Marshal(p.Videos)
	if err != nil {
		return apperror.NewInternal("failed to marshal videos", err)
	}
	timelineBytes, err := json.Marshal(p.Timeline)
	if err != nil {
		return apperror.NewInternal("failed to marshal timeline", err)
	}
	commentsBytes, err := json.Marshal(p.Comments)
	if err != nil {
		return apperror.NewInternal("failed to marshal comments", err)
	}
	recommendationsBytes, err := json.Marshal(p.Recommendations)
	if err != nil {
		return apperror.NewInternal("failed to marshal recommendations", err)
	}

	query := `
		INSERT INTO portfolios (
			id, user_id, profile_image, profile_image_id, header_image, header_image_id,
			email, phone, facebook, instagram, birthday, location, type, name, about,
			statement, skills, collections, videos, timeline, comments, recommendations, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (id) DO UPDATE SET
			profile_image = EXCLUDED.profile_image,
			profile_image_id = EXCLUDED.profile_image_id,
			header_image = EXCLUDED.header_image,
			header_image_id = EXCLUDED.header_image_id,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			facebook = EXCLUDED.facebook,
			instagram = EXCLUDED.instagram,
			birthday = EXCLUDED.birthday,
			location = EXCLUDED.location,
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			about = EXCLUDED.about,
			statement = EXCLUDED.statement,
			skills = EXCLUDED.skills,
			collections = EXCLUDED.collections,
			videos = EXCLUDED.videos,
			timeline = EXCLUDED.timeline,
			comments = EXCLUDED.comments,
			recommendations = EXCLUDED.recommendations,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.ProfileImage,
		p.ProfileImageID,
		p.HeaderImage,
		p.HeaderImageID,
		p.Email,
		p.Phone,
		p.Facebook,
		p.Instagram,
		p.Birthday,
		p.Location,
		p.Type,
		p.Name,
		p.About,
		p.Statement,
		skillsBytes,
		collectionsBytes,
		videosBytes,
		timelineBytes,
		commentsBytes,
		recommendationsBytes,
		time.Now().UTC(),
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewConflict("portfolio", "user_id", p.UserID.String())
		}
		return apperror.NewInternal("failed to upsert portfolio", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) Search(ctx context.Context, query string, limit, offset int) ([]portfolio.Summary, error) {
	pattern := fmt.Sprintf("%%%s%%", query)

	builder := psql.
		Select("id", "user_id", "name", "location", "type", "profile_image").
		From("portfolios").
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"location": pattern},
			sq.ILike{"type": pattern},
		}).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build search query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to search portfolios", err)
	}
	defer rows.Close()

	results := make([]portfolio.Summary, 0)
	for rows.Next() {
		var s portfolio.Summary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Location, &s.Type, &s.ProfileImage); err != nil {
			return nil, apperror.NewInternal("failed to scan search result", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
