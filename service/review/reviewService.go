package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	rvrepo "github.com/rjmahfuztech/nesthunt/repository/review"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
)

// Renter is the slice of the order service reviews depend on: only someone
// with a booked order may review the advertisement.
type Renter interface {
	HasUserRented(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, advertID uuid.UUID, userID int64, rating int, comment string) (*model.Review, error)
	ListForAdvertisement(ctx context.Context, advertID uuid.UUID) ([]model.Review, error)
}

type service struct {
	rv     rvrepo.Repo
	ar     advrepo.Repo
	renter Renter
}

func New(rv rvrepo.Repo, ar advrepo.Repo, renter Renter) Service {
	return &service{rv: rv, ar: ar, renter: renter}
}

func (s *service) Create(ctx context.Context, advertID uuid.UUID, userID int64, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.New(apperr.Invalid, "rating must be between 1 and 5")
	}
	if _, err := s.ar.ByID(ctx, advertID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}

	rented, err := s.renter.HasUserRented(ctx, advertID, userID)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, apperr.New(apperr.Forbidden, "only renters with a booked order can review")
	}

	rv := &model.Review{
		ID:              uuid.New(),
		AdvertisementID: advertID,
		UserID:          userID,
		Rating:          rating,
		Comment:         comment,
	}
	if err := s.rv.Insert(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ListForAdvertisement(ctx context.Context, advertID uuid.UUID) ([]model.Review, error) {
	return s.rv.ListByAdvertisement(ctx, advertID)
}
