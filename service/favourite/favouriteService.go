package favourite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	frepo "github.com/rjmahfuztech/nesthunt/repository/favourite"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/authz"
)

type Service interface {
	Add(ctx context.Context, advertID uuid.UUID, userID int64) (*model.Favourite, error)
	Mine(ctx context.Context, userID int64) ([]model.FavouriteRow, error)
	Remove(ctx context.Context, favID uuid.UUID, userID int64) error
}

type service struct {
	fr frepo.Repo
	ar advrepo.Repo
}

func New(fr frepo.Repo, ar advrepo.Repo) Service { return &service{fr: fr, ar: ar} }

func (s *service) Add(ctx context.Context, advertID uuid.UUID, userID int64) (*model.Favourite, error) {
	adv, err := s.ar.ByID(ctx, advertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}
	if adv.Status != model.AdvertApproved {
		return nil, apperr.New(apperr.Invalid, "only approved advertisements can be saved")
	}

	exists, err := s.fr.Exists(ctx, advertID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "advertisement already saved as favourite")
	}

	f := &model.Favourite{
		ID:              uuid.New(),
		UserID:          userID,
		AdvertisementID: advertID,
	}
	if err := s.fr.Insert(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Mine(ctx context.Context, userID int64) ([]model.FavouriteRow, error) {
	return s.fr.ListByUser(ctx, userID)
}

func (s *service) Remove(ctx context.Context, favID uuid.UUID, userID int64) error {
	f, err := s.fr.ByID(ctx, favID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "favourite not found")
		}
		return err
	}
	if !authz.Allowed(authz.Principal{ID: userID}, f.UserID, authz.RemoveFavourite) {
		return apperr.New(apperr.Forbidden, "not your favourite")
	}
	_, err = s.fr.Delete(ctx, favID)
	return err
}
