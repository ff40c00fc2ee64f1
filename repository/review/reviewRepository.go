package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
)

type Repo interface {
	Insert(ctx context.Context, rv *model.Review) error
	ListByAdvertisement(ctx context.Context, advertID uuid.UUID) ([]model.Review, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, rv *model.Review) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO reviews(id, advertisement_id, user_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		rv.ID, rv.AdvertisementID, rv.UserID, rv.Rating, rv.Comment,
	).Scan(&rv.CreatedAt)
}

func (r *repo) ListByAdvertisement(ctx context.Context, advertID uuid.UUID) ([]model.Review, error) {
	const q = `
		SELECT id, advertisement_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE advertisement_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, advertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.AdvertisementID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
