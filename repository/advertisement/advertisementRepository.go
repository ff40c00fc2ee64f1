package advertisement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
)

type Repo interface {
	Insert(ctx context.Context, a *model.Advertisement) error
	ByID(ctx context.Context, id uuid.UUID) (*model.Advertisement, error)
	List(ctx context.Context, f model.AdvertFilter, includeUnapproved bool) ([]model.Advertisement, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Advertisement, error)
	UpdateDetails(ctx context.Context, a *model.Advertisement) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.AdvertStatus) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// LockByID takes the advertisement row lock the acceptance machine
	// serializes on.
	LockByID(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Advertisement, error)
	SetRented(ctx context.Context, tx *sql.Tx, id uuid.UUID, rented bool) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const advertCols = `id, owner_id, title, description, category, status, rental_amount,
		location, bedroom, bathroom, apartment_size, is_rented, created_at, updated_at`

func scanAdvert(row interface{ Scan(...any) error }) (*model.Advertisement, error) {
	a := &model.Advertisement{}
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.Category, &a.Status,
		&a.RentalAmount, &a.Location, &a.Bedroom, &a.Bathroom, &a.ApartmentSize,
		&a.IsRented, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repo) Insert(ctx context.Context, a *model.Advertisement) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO advertisements
			(id, owner_id, title, description, category, status, rental_amount,
			 location, bedroom, bathroom, apartment_size, is_rented)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,false)
		RETURNING created_at, updated_at`,
		a.ID, a.OwnerID, a.Title, a.Description, a.Category, a.Status,
		a.RentalAmount, a.Location, a.Bedroom, a.Bathroom, a.ApartmentSize,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id uuid.UUID) (*model.Advertisement, error) {
	q := `SELECT ` + advertCols + ` FROM advertisements WHERE id = $1`
	return scanAdvert(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) LockByID(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Advertisement, error) {
	q := `SELECT ` + advertCols + ` FROM advertisements WHERE id = $1 FOR UPDATE`
	return scanAdvert(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context, f model.AdvertFilter, includeUnapproved bool) ([]model.Advertisement, error) {
	q := `SELECT ` + advertCols + ` FROM advertisements WHERE 1=1`
	var args []any
	if !includeUnapproved {
		args = append(args, model.AdvertApproved)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		q += fmt.Sprintf(" AND location = $%d", len(args))
	}
	if f.Bedroom > 0 {
		args = append(args, f.Bedroom)
		q += fmt.Sprintf(" AND bedroom = $%d", len(args))
	}
	if f.Bathroom > 0 {
		args = append(args, f.Bathroom)
		q += fmt.Sprintf(" AND bathroom = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	return r.queryAdverts(ctx, q, args...)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Advertisement, error) {
	q := `SELECT ` + advertCols + ` FROM advertisements WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryAdverts(ctx, q, ownerID)
}

func (r *repo) queryAdverts(ctx context.Context, q string, args ...any) ([]model.Advertisement, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Advertisement
	for rows.Next() {
		a, err := scanAdvert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repo) UpdateDetails(ctx context.Context, a *model.Advertisement) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE advertisements
		SET title = $2, description = $3, category = $4, rental_amount = $5,
			location = $6, bedroom = $7, bathroom = $8, apartment_size = $9,
			updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.Title, a.Description, a.Category, a.RentalAmount, a.Location,
		a.Bedroom, a.Bathroom, a.ApartmentSize,
	)
	return err
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status model.AdvertStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE advertisements
		SET status = $2, updated_at = NOW()
		WHERE id = $1`, id, status)
	return err
}

func (r *repo) SetRented(ctx context.Context, tx *sql.Tx, id uuid.UUID, rented bool) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE advertisements
		SET is_rented = $2, updated_at = NOW()
		WHERE id = $1`, id, rented)
	return err
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
