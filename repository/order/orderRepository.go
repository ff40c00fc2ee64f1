package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
)

type Repo interface {
	Insert(ctx context.Context, o *model.Order) error
	ByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	HasBooked(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error)

	LockByID(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Order, error)
	MarkBooked(ctx context.Context, tx *sql.Tx, id uuid.UUID, paidAt time.Time) error
	MarkCancelled(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const orderCols = `id, user_id, advertisement_id, status, amount, name, address,
		phone_number, paid_at, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	o := &model.Order{}
	err := row.Scan(
		&o.ID, &o.UserID, &o.AdvertisementID, &o.Status, &o.Amount,
		&o.Name, &o.Address, &o.PhoneNumber, &o.PaidAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repo) Insert(ctx context.Context, o *model.Order) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders(id, user_id, advertisement_id, status, amount, name, address, phone_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		o.ID, o.UserID, o.AdvertisementID, o.Status, o.Amount, o.Name, o.Address, o.PhoneNumber,
	).Scan(&o.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) LockByID(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE id = $1 FOR UPDATE`
	return scanOrder(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *repo) HasBooked(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM orders
			WHERE advertisement_id = $1 AND user_id = $2 AND status = $3)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, advertID, userID, model.OrderBooked).Scan(&ok)
	return ok, err
}

func (r *repo) MarkBooked(ctx context.Context, tx *sql.Tx, id uuid.UUID, paidAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, paid_at = $3
		WHERE id = $1`, id, model.OrderBooked, paidAt)
	return err
}

func (r *repo) MarkCancelled(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $2
		WHERE id = $1`, id, model.OrderCancelled)
	return err
}
