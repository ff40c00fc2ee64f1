package rentrequest

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
)

type Repo interface {
	Insert(ctx context.Context, rr *model.RentRequest) error
	Exists(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error)
	ByID(ctx context.Context, id uuid.UUID) (*model.RentRequest, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListByAdvertisement(ctx context.Context, advertID uuid.UUID) ([]model.RentRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.MyRequestRow, error)

	LockByID(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.RentRequest, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status model.RequestStatus) error
	RejectPendingSiblings(ctx context.Context, tx *sql.Tx, advertID, exceptID uuid.UUID) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, rr *model.RentRequest) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO rent_requests(id, advertisement_id, user_id, status)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		rr.ID, rr.AdvertisementID, rr.UserID, rr.Status,
	).Scan(&rr.CreatedAt)
}

func (r *repo) Exists(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM rent_requests
			WHERE advertisement_id = $1 AND user_id = $2)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, advertID, userID).Scan(&ok)
	return ok, err
}

func (r *repo) ByID(ctx context.Context, id uuid.UUID) (*model.RentRequest, error) {
	const q = `
		SELECT id, advertisement_id, user_id, status, created_at
		FROM rent_requests
		WHERE id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) LockByID(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.RentRequest, error) {
	const q = `
		SELECT id, advertisement_id, user_id, status, created_at
		FROM rent_requests
		WHERE id = $1
		FOR UPDATE`
	return scanRequest(tx.QueryRowContext(ctx, q, id))
}

func scanRequest(row interface{ Scan(...any) error }) (*model.RentRequest, error) {
	rr := &model.RentRequest{}
	err := row.Scan(&rr.ID, &rr.AdvertisementID, &rr.UserID, &rr.Status, &rr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rent_requests WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) ListByAdvertisement(ctx context.Context, advertID uuid.UUID) ([]model.RentRequest, error) {
	const q = `
		SELECT id, advertisement_id, user_id, status, created_at
		FROM rent_requests
		WHERE advertisement_id = $1
		ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, advertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RentRequest
	for rows.Next() {
		rr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rr)
	}
	return out, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.MyRequestRow, error) {
	const q = `
		SELECT
			rr.id, rr.status, rr.created_at,
			a.id, a.title, a.location, a.rental_amount, a.is_rented
		FROM rent_requests rr
		JOIN advertisements a ON a.id = rr.advertisement_id
		WHERE rr.user_id = $1
		ORDER BY rr.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MyRequestRow
	for rows.Next() {
		var m model.MyRequestRow
		if err := rows.Scan(
			&m.ID, &m.Status, &m.CreatedAt,
			&m.Advertisement.ID, &m.Advertisement.Title, &m.Advertisement.Location,
			&m.Advertisement.RentalAmount, &m.Advertisement.IsRented,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status model.RequestStatus) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE rent_requests
		SET status = $2
		WHERE id = $1`, id, status)
	return err
}

// RejectPendingSiblings is the cascade step of an approval: every other
// PENDING request on the same advertisement flips to REJECTED inside the
// caller's transaction.
func (r *repo) RejectPendingSiblings(ctx context.Context, tx *sql.Tx, advertID, exceptID uuid.UUID) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE rent_requests
		SET status = $3
		WHERE advertisement_id = $1
		  AND id <> $2
		  AND status = $4`,
		advertID, exceptID, model.RequestRejected, model.RequestPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
