package user

import (
	"context"
	"database/sql"

	"github.com/rjmahfuztech/nesthunt/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(first_name, last_name, email, address, phone_number, password_hash, is_staff)
		VALUES ($1,$2,$3,$4,$5,$6,false)
		RETURNING id, created_at`,
		u.FirstName, u.LastName, u.Email, u.Address, u.PhoneNumber, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, address, phone_number, password_hash, is_staff, created_at
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Address, &u.PhoneNumber, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
