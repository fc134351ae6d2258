package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panchofdez/portfolio-api/internal/domain/user"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, email, name, password_hash, profile_image, portfolio_id, recommending`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	var recommendingBytes []byte

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.ProfileImage,
		&u.PortfolioID,
		&recommendingBytes,
	)
	if err != nil {
		return nil, err
	}

	if len(recommendingBytes) > 0 {
		if err := json.Unmarshal(recommendingBytes, &u.Recommending); err != nil {
			u.Recommending = []uuid.UUID{}
		}
	}
	if u.Recommending == nil {
		u.Recommending = []uuid.UUID{}
	}
	return u, nil
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", id.String())
		}
		return nil, apperror.NewInternal("failed to query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, apperror.NewInternal("failed to query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to query users by ids", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan user row", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepo) Save(ctx context.Context, u *user.User) error {
	recommendingBytes, err := json.Marshal(u.Recommending)
	if err != nil {
		return apperror.NewInternal("failed to marshal recommending", err)
	}

	query := `
		UPDATE users
		SET name = $2, profile_image = $3, portfolio_id = $4, recommending = $5
		WHERE id = $1
	`
	_, err = r.db.Exec(ctx, query, u.ID, u.Name, u.ProfileImage, u.PortfolioID, recommendingBytes)
	if err != nil {
		return apperror.NewInternal("failed to update user", err)
	}
	return nil
}
