package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rjmahfuztech/nesthunt/model"
	userrepo "github.com/rjmahfuztech/nesthunt/repository/user"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/hash"
	jwtutil "github.com/rjmahfuztech/nesthunt/util/jwt"
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 {
		return nil, "", apperr.New(apperr.Invalid, "email and a password of at least 6 characters are required")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hashed,
	}
	if req.Address != "" {
		u.Address = &req.Address
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = &req.PhoneNumber
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, "", apperr.New(apperr.Conflict, "email already registered")
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.IsStaff, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, "", apperr.New(apperr.Forbidden, "invalid credentials")
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", apperr.New(apperr.Forbidden, "invalid credentials")
	}
	token, err := jwtutil.Issue(s.secret, u.ID, u.IsStaff, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
