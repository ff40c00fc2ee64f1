package rentrequest_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	rrepo "github.com/rjmahfuztech/nesthunt/repository/rentrequest"
	"github.com/rjmahfuztech/nesthunt/service/rentrequest"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/authz"
	"github.com/rjmahfuztech/nesthunt/util/dbtest"
)

// advStore is an in-memory advrepo.Repo. Only the methods the rent-request
// service touches are implemented; the embedded interface panics on the rest.
type advStore struct {
	advrepo.Repo
	adverts map[uuid.UUID]*model.Advertisement
}

func newAdvStore(adverts ...*model.Advertisement) *advStore {
	s := &advStore{adverts: map[uuid.UUID]*model.Advertisement{}}
	for _, a := range adverts {
		s.adverts[a.ID] = a
	}
	return s
}

func (s *advStore) ByID(_ context.Context, id uuid.UUID) (*model.Advertisement, error) {
	a, ok := s.adverts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (s *advStore) LockByID(ctx context.Context, _ *sql.Tx, id uuid.UUID) (*model.Advertisement, error) {
	return s.ByID(ctx, id)
}

func (s *advStore) SetRented(_ context.Context, _ *sql.Tx, id uuid.UUID, rented bool) error {
	s.adverts[id].IsRented = rented
	return nil
}

type reqStore struct {
	rrepo.Repo
	reqs map[uuid.UUID]*model.RentRequest
}

func newReqStore(reqs ...*model.RentRequest) *reqStore {
	s := &reqStore{reqs: map[uuid.UUID]*model.RentRequest{}}
	for _, r := range reqs {
		s.reqs[r.ID] = r
	}
	return s
}

func (s *reqStore) Insert(_ context.Context, rr *model.RentRequest) error {
	cp := *rr
	s.reqs[rr.ID] = &cp
	return nil
}

func (s *reqStore) Exists(_ context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	for _, r := range s.reqs {
		if r.AdvertisementID == advertID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *reqStore) ByID(_ context.Context, id uuid.UUID) (*model.RentRequest, error) {
	r, ok := s.reqs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (s *reqStore) LockByID(ctx context.Context, _ *sql.Tx, id uuid.UUID) (*model.RentRequest, error) {
	return s.ByID(ctx, id)
}

func (s *reqStore) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.reqs[id]; !ok {
		return 0, nil
	}
	delete(s.reqs, id)
	return 1, nil
}

func (s *reqStore) SetStatus(_ context.Context, _ *sql.Tx, id uuid.UUID, status model.RequestStatus) error {
	s.reqs[id].Status = status
	return nil
}

func (s *reqStore) RejectPendingSiblings(_ context.Context, _ *sql.Tx, advertID, exceptID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range s.reqs {
		if r.AdvertisementID == advertID && r.ID != exceptID && r.Status == model.RequestPending {
			r.Status = model.RequestRejected
			n++
		}
	}
	return n, nil
}

func (s *reqStore) ListByAdvertisement(_ context.Context, advertID uuid.UUID) ([]model.RentRequest, error) {
	var out []model.RentRequest
	for _, r := range s.reqs {
		if r.AdvertisementID == advertID {
			out = append(out, *r)
		}
	}
	return out, nil
}

const (
	ownerID    int64 = 1
	renterA    int64 = 2
	renterB    int64 = 3
	staffID    int64 = 9
	strangerID int64 = 4
)

func approvedAdvert() *model.Advertisement {
	return &model.Advertisement{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Status:  model.AdvertApproved,
	}
}

func pendingRequest(advertID uuid.UUID, userID int64) *model.RentRequest {
	return &model.RentRequest{
		ID:              uuid.New(),
		AdvertisementID: advertID,
		UserID:          userID,
		Status:          model.RequestPending,
	}
}

func TestSubmit_Success(t *testing.T) {
	adv := approvedAdvert()
	reqs := newReqStore()
	svc := rentrequest.New(dbtest.Open(), reqs, newAdvStore(adv))

	rr, err := svc.Submit(context.Background(), adv.ID, renterA)
	require.NoError(t, err)
	require.Equal(t, model.RequestPending, rr.Status)
	require.Equal(t, adv.ID, rr.AdvertisementID)

	stored, err := reqs.ByID(context.Background(), rr.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestPending, stored.Status)
}

func TestSubmit_AdvertNotFound(t *testing.T) {
	svc := rentrequest.New(dbtest.Open(), newReqStore(), newAdvStore())

	_, err := svc.Submit(context.Background(), uuid.New(), renterA)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestSubmit_UnapprovedAdvert(t *testing.T) {
	adv := approvedAdvert()
	adv.Status = model.AdvertPending
	svc := rentrequest.New(dbtest.Open(), newReqStore(), newAdvStore(adv))

	_, err := svc.Submit(context.Background(), adv.ID, renterA)
	require.Equal(t, apperr.Conflict, apperr.CodeOf(err))
}

func TestSubmit_DuplicateRequest(t *testing.T) {
	adv := approvedAdvert()
	svc := rentrequest.New(dbtest.Open(), newReqStore(pendingRequest(adv.ID, renterA)), newAdvStore(adv))

	_, err := svc.Submit(context.Background(), adv.ID, renterA)
	require.Equal(t, apperr.Conflict, apperr.CodeOf(err))
	require.Contains(t, err.Error(), "already have a request")
}

func TestSubmit_AlreadyRented(t *testing.T) {
	adv := approvedAdvert()
	adv.IsRented = true
	svc := rentrequest.New(dbtest.Open(), newReqStore(), newAdvStore(adv))

	// Conflict even without a prior request from this caller.
	_, err := svc.Submit(context.Background(), adv.ID, renterB)
	require.Equal(t, apperr.Conflict, apperr.CodeOf(err))
	require.Contains(t, err.Error(), "already booked")
}

func TestSubmit_OwnAdvertForbidden(t *testing.T) {
	adv := approvedAdvert()
	svc := rentrequest.New(dbtest.Open(), newReqStore(), newAdvStore(adv))

	_, err := svc.Submit(context.Background(), adv.ID, ownerID)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))
}

func TestDecide_ApproveCascadesAndLocks(t *testing.T) {
	ctx := context.Background()
	adv := approvedAdvert()
	rq1 := pendingRequest(adv.ID, renterA)
	rq2 := pendingRequest(adv.ID, renterB)
	reqs := newReqStore(rq1, rq2)
	adverts := newAdvStore(adv)
	svc := rentrequest.New(dbtest.Open(), reqs, adverts)

	owner := authz.Principal{ID: ownerID}
	require.NoError(t, svc.Decide(ctx, rq1.ID, owner, model.RequestApproved))

	got1, _ := reqs.ByID(ctx, rq1.ID)
	got2, _ := reqs.ByID(ctx, rq2.ID)
	require.Equal(t, model.RequestApproved, got1.Status)
	require.Equal(t, model.RequestRejected, got2.Status)

	gotAdv, _ := adverts.ByID(ctx, adv.ID)
	require.True(t, gotAdv.IsRented)

	// Listing is locked: no further decision succeeds, rejection included.
	err := svc.Decide(ctx, rq2.ID, owner, model.RequestRejected)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))
	require.Contains(t, err.Error(), "already been accepted")
}

func TestDecide_RejectDoesNotLock(t *testing.T) {
	ctx := context.Background()
	adv := approvedAdvert()
	rq1 := pendingRequest(adv.ID, renterA)
	rq2 := pendingRequest(adv.ID, renterB)
	reqs := newReqStore(rq1, rq2)
	adverts := newAdvStore(adv)
	svc := rentrequest.New(dbtest.Open(), reqs, adverts)

	owner := authz.Principal{ID: ownerID}
	require.NoError(t, svc.Decide(ctx, rq1.ID, owner, model.RequestRejected))

	got1, _ := reqs.ByID(ctx, rq1.ID)
	got2, _ := reqs.ByID(ctx, rq2.ID)
	require.Equal(t, model.RequestRejected, got1.Status)
	require.Equal(t, model.RequestPending, got2.Status)

	gotAdv, _ := adverts.ByID(ctx, adv.ID)
	require.False(t, gotAdv.IsRented)

	// A later approval on the sibling still works.
	require.NoError(t, svc.Decide(ctx, rq2.ID, owner, model.RequestApproved))
	gotAdv, _ = adverts.ByID(ctx, adv.ID)
	require.True(t, gotAdv.IsRented)
}

func TestDecide_Authorization(t *testing.T) {
	ctx := context.Background()
	adv := approvedAdvert()
	rq := pendingRequest(adv.ID, renterA)
	svc := rentrequest.New(dbtest.Open(), newReqStore(rq), newAdvStore(adv))

	err := svc.Decide(ctx, rq.ID, authz.Principal{ID: strangerID}, model.RequestApproved)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	// The requester cannot decide their own request either.
	err = svc.Decide(ctx, rq.ID, authz.Principal{ID: renterA}, model.RequestApproved)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	// Staff can.
	require.NoError(t, svc.Decide(ctx, rq.ID, authz.Principal{ID: staffID, Staff: true}, model.RequestApproved))
}

func TestDecide_InvalidStatus(t *testing.T) {
	adv := approvedAdvert()
	rq := pendingRequest(adv.ID, renterA)
	svc := rentrequest.New(dbtest.Open(), newReqStore(rq), newAdvStore(adv))

	err := svc.Decide(context.Background(), rq.ID, authz.Principal{ID: ownerID}, model.RequestPending)
	require.Equal(t, apperr.Invalid, apperr.CodeOf(err))
}

func TestDecide_RequestNotFound(t *testing.T) {
	svc := rentrequest.New(dbtest.Open(), newReqStore(), newAdvStore())

	err := svc.Decide(context.Background(), uuid.New(), authz.Principal{ID: ownerID}, model.RequestApproved)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestCancel_RequesterOnly(t *testing.T) {
	ctx := context.Background()
	adv := approvedAdvert()
	rq := pendingRequest(adv.ID, renterA)
	reqs := newReqStore(rq)
	svc := rentrequest.New(dbtest.Open(), reqs, newAdvStore(adv))

	err := svc.Cancel(ctx, rq.ID, renterB)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	require.NoError(t, svc.Cancel(ctx, rq.ID, renterA))
	_, err = reqs.ByID(ctx, rq.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)

	err = svc.Cancel(ctx, rq.ID, renterA)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestListForAdvertisement_OwnerOrStaff(t *testing.T) {
	ctx := context.Background()
	adv := approvedAdvert()
	rq := pendingRequest(adv.ID, renterA)
	svc := rentrequest.New(dbtest.Open(), newReqStore(rq), newAdvStore(adv))

	_, err := svc.ListForAdvertisement(ctx, adv.ID, authz.Principal{ID: renterA})
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	rows, err := svc.ListForAdvertisement(ctx, adv.ID, authz.Principal{ID: ownerID})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = svc.ListForAdvertisement(ctx, adv.ID, authz.Principal{ID: staffID, Staff: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
