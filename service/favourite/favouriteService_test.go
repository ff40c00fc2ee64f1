package favourite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	frepo "github.com/rjmahfuztech/nesthunt/repository/favourite"
	"github.com/rjmahfuztech/nesthunt/service/favourite"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
)

type advStore struct {
	advrepo.Repo
	adverts map[uuid.UUID]*model.Advertisement
}

func (s *advStore) ByID(_ context.Context, id uuid.UUID) (*model.Advertisement, error) {
	a, ok := s.adverts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

type favStore struct {
	frepo.Repo
	favs map[uuid.UUID]*model.Favourite
}

func newFavStore(favs ...*model.Favourite) *favStore {
	s := &favStore{favs: map[uuid.UUID]*model.Favourite{}}
	for _, f := range favs {
		s.favs[f.ID] = f
	}
	return s
}

func (s *favStore) Insert(_ context.Context, f *model.Favourite) error {
	cp := *f
	s.favs[f.ID] = &cp
	return nil
}

func (s *favStore) ByID(_ context.Context, id uuid.UUID) (*model.Favourite, error) {
	f, ok := s.favs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *f
	return &cp, nil
}

func (s *favStore) Exists(_ context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	for _, f := range s.favs {
		if f.AdvertisementID == advertID && f.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *favStore) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.favs[id]; !ok {
		return 0, nil
	}
	delete(s.favs, id)
	return 1, nil
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	adv := &model.Advertisement{ID: uuid.New(), OwnerID: 1, Status: model.AdvertApproved}
	svc := favourite.New(newFavStore(), &advStore{adverts: map[uuid.UUID]*model.Advertisement{adv.ID: adv}})

	f, err := svc.Add(ctx, adv.ID, 2)
	require.NoError(t, err)
	require.Equal(t, adv.ID, f.AdvertisementID)

	// Same pair again is a conflict.
	_, err = svc.Add(ctx, adv.ID, 2)
	require.Equal(t, apperr.Conflict, apperr.CodeOf(err))

	// Another user may still save it.
	_, err = svc.Add(ctx, adv.ID, 3)
	require.NoError(t, err)
}

func TestAdd_RequiresApprovedAdvert(t *testing.T) {
	ctx := context.Background()
	adv := &model.Advertisement{ID: uuid.New(), OwnerID: 1, Status: model.AdvertPending}
	svc := favourite.New(newFavStore(), &advStore{adverts: map[uuid.UUID]*model.Advertisement{adv.ID: adv}})

	_, err := svc.Add(ctx, adv.ID, 2)
	require.Equal(t, apperr.Invalid, apperr.CodeOf(err))

	_, err = svc.Add(ctx, uuid.New(), 2)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestRemove_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := &model.Favourite{ID: uuid.New(), UserID: 2, AdvertisementID: uuid.New()}
	favs := newFavStore(f)
	svc := favourite.New(favs, &advStore{})

	err := svc.Remove(ctx, f.ID, 3)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	require.NoError(t, svc.Remove(ctx, f.ID, 2))
	err = svc.Remove(ctx, f.ID, 2)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}
