package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panchofdez/portfolio-api/internal/domain/comment"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
)

type postgresCommentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCommentRepo(db *pgxpool.Pool) comment.Repository {
	return &postgresCommentRepo{db: db}
}

func (r *postgresCommentRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*comment.Comment, error) {
	if len(ids) == 0 {
		return []*comment.Comment{}, nil
	}

	query := `
		SELECT id, author_id, author_name, author_image, body, created_at
		FROM comments
		WHERE id = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to query comments by ids", err)
	}
	defer rows.Close()

	comments := make([]*comment.Comment, 0, len(ids))
	for rows.Next() {
		c := &comment.Comment{}
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.AuthorName, &c.AuthorImage, &c.Body, &c.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan comment row", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
