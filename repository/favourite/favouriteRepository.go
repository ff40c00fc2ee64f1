package favourite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
)

type Repo interface {
	Insert(ctx context.Context, f *model.Favourite) error
	ByID(ctx context.Context, id uuid.UUID) (*model.Favourite, error)
	Exists(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]model.FavouriteRow, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, f *model.Favourite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favourites(id, user_id, advertisement_id)
		VALUES ($1,$2,$3)`,
		f.ID, f.UserID, f.AdvertisementID)
	return err
}

func (r *repo) ByID(ctx context.Context, id uuid.UUID) (*model.Favourite, error) {
	f := &model.Favourite{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, advertisement_id
		FROM favourites
		WHERE id = $1`, id,
	).Scan(&f.ID, &f.UserID, &f.AdvertisementID)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *repo) Exists(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM favourites
			WHERE advertisement_id = $1 AND user_id = $2)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, advertID, userID).Scan(&ok)
	return ok, err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.FavouriteRow, error) {
	const q = `
		SELECT
			f.id,
			a.id, a.title, a.location, a.rental_amount, a.is_rented
		FROM favourites f
		JOIN advertisements a ON a.id = f.advertisement_id
		WHERE f.user_id = $1
		ORDER BY f.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FavouriteRow
	for rows.Next() {
		var m model.FavouriteRow
		if err := rows.Scan(
			&m.ID,
			&m.Advertisement.ID, &m.Advertisement.Title, &m.Advertisement.Location,
			&m.Advertisement.RentalAmount, &m.Advertisement.IsRented,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favourites WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
