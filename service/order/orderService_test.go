package order_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	orepo "github.com/rjmahfuztech/nesthunt/repository/order"
	"github.com/rjmahfuztech/nesthunt/repository/sslcommerz"
	"github.com/rjmahfuztech/nesthunt/service/order"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/dbtest"
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

type orderStore struct {
	orepo.Repo
	orders      map[uuid.UUID]*model.Order
	bookedCalls int
}

func newOrderStore(orders ...*model.Order) *orderStore {
	s := &orderStore{orders: map[uuid.UUID]*model.Order{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *orderStore) Insert(_ context.Context, o *model.Order) error {
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *orderStore) ByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (s *orderStore) LockByID(ctx context.Context, _ *sql.Tx, id uuid.UUID) (*model.Order, error) {
	return s.ByID(ctx, id)
}

func (s *orderStore) MarkBooked(_ context.Context, _ *sql.Tx, id uuid.UUID, paidAt time.Time) error {
	s.bookedCalls++
	o := s.orders[id]
	o.Status = model.OrderBooked
	o.PaidAt = &paidAt
	return nil
}

func (s *orderStore) MarkCancelled(_ context.Context, _ *sql.Tx, id uuid.UUID) error {
	s.orders[id].Status = model.OrderCancelled
	return nil
}

func (s *orderStore) HasBooked(_ context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	for _, o := range s.orders {
		if o.AdvertisementID == advertID && o.UserID == userID && o.Status == model.OrderBooked {
			return true, nil
		}
	}
	return false, nil
}

type gatewayMock struct {
	createFn func(req sslcommerz.CreateSessionReq) (*sslcommerz.CreateSessionResp, error)
}

func (m *gatewayMock) CreateSession(req sslcommerz.CreateSessionReq) (*sslcommerz.CreateSessionResp, error) {
	return m.createFn(req)
}

const (
	renterID int64 = 2
	otherID  int64 = 3
)

func testAdvert() *model.Advertisement {
	return &model.Advertisement{
		ID:           uuid.New(),
		OwnerID:      1,
		Status:       model.AdvertApproved,
		RentalAmount: 15000,
		IsRented:     true,
	}
}

func notPaidOrder(advertID uuid.UUID) *model.Order {
	return &model.Order{
		ID:              uuid.New(),
		UserID:          renterID,
		AdvertisementID: advertID,
		Status:          model.OrderNotPaid,
		Amount:          15000,
		Name:            "Rahim",
		Address:         "Mirpur 10, Dhaka",
		PhoneNumber:     "01700000000",
	}
}

func newService(orders *orderStore, adverts map[uuid.UUID]*model.Advertisement, gw sslcommerz.Repo) order.Service {
	return order.New(dbtest.Open(), orders, &advStore{adverts: adverts}, gw, "https://nesthunt.example")
}

func TestCreate_SnapshotsAmount(t *testing.T) {
	adv := testAdvert()
	orders := newOrderStore()
	svc := newService(orders, map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	o, err := svc.Create(context.Background(), adv.ID, renterID, order.ContactInfo{
		Name: "Rahim", Address: "Mirpur 10, Dhaka", PhoneNumber: "01700000000",
	})
	require.NoError(t, err)
	require.Equal(t, model.OrderNotPaid, o.Status)
	require.Equal(t, adv.RentalAmount, o.Amount)
	require.Nil(t, o.PaidAt)
}

func TestCreate_Validation(t *testing.T) {
	adv := testAdvert()
	svc := newService(newOrderStore(), map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	_, err := svc.Create(context.Background(), uuid.New(), renterID, order.ContactInfo{Name: "x", Address: "y", PhoneNumber: "z"})
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))

	_, err = svc.Create(context.Background(), adv.ID, renterID, order.ContactInfo{})
	require.Equal(t, apperr.Invalid, apperr.CodeOf(err))
}

func TestInitiatePayment_BuildsSession(t *testing.T) {
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	var got sslcommerz.CreateSessionReq
	gw := &gatewayMock{createFn: func(req sslcommerz.CreateSessionReq) (*sslcommerz.CreateSessionResp, error) {
		got = req
		return &sslcommerz.CreateSessionResp{Status: "SUCCESS", GatewayPageURL: "https://pay.example/session"}, nil
	}}
	svc := newService(newOrderStore(o), map[uuid.UUID]*model.Advertisement{adv.ID: adv}, gw)

	url, err := svc.InitiatePayment(context.Background(), o.ID, renterID)
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/session", url)
	require.Equal(t, "tnx_"+o.ID.String(), got.TranID)
	require.Equal(t, o.Amount, got.Amount)
	require.Equal(t, "BDT", got.Currency)
	require.Equal(t, "https://nesthunt.example/v1/payment/success", got.SuccessURL)
	require.Equal(t, "https://nesthunt.example/v1/payment/fail", got.FailURL)
	require.Equal(t, "https://nesthunt.example/v1/payment/cancel", got.CancelURL)
}

func TestInitiatePayment_Guards(t *testing.T) {
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	svc := newService(newOrderStore(o), map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	_, err := svc.InitiatePayment(context.Background(), o.ID, otherID)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	_, err = svc.InitiatePayment(context.Background(), uuid.New(), renterID)
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestInitiatePayment_GatewayFailure(t *testing.T) {
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	gw := &gatewayMock{createFn: func(sslcommerz.CreateSessionReq) (*sslcommerz.CreateSessionResp, error) {
		return &sslcommerz.CreateSessionResp{Status: "FAILED", FailedReason: "store credentials invalid"}, nil
	}}
	svc := newService(newOrderStore(o), map[uuid.UUID]*model.Advertisement{adv.ID: adv}, gw)

	_, err := svc.InitiatePayment(context.Background(), o.ID, renterID)
	require.Equal(t, apperr.Gateway, apperr.CodeOf(err))
	require.Contains(t, err.Error(), "store credentials invalid")
}

func TestReconcileSuccess_Idempotent(t *testing.T) {
	ctx := context.Background()
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	orders := newOrderStore(o)
	svc := newService(orders, map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	ref := "tnx_" + o.ID.String()
	require.NoError(t, svc.ReconcileSuccess(ctx, ref))

	got, _ := orders.ByID(ctx, o.ID)
	require.Equal(t, model.OrderBooked, got.Status)
	require.NotNil(t, got.PaidAt)
	require.Equal(t, 1, orders.bookedCalls)

	// Replay: no error, no second side effect, still booked.
	require.NoError(t, svc.ReconcileSuccess(ctx, ref))
	got, _ = orders.ByID(ctx, o.ID)
	require.Equal(t, model.OrderBooked, got.Status)
	require.Equal(t, 1, orders.bookedCalls)
}

func TestReconcileSuccess_BadReference(t *testing.T) {
	svc := newService(newOrderStore(), nil, nil)

	err := svc.ReconcileSuccess(context.Background(), "garbage")
	require.Equal(t, apperr.Invalid, apperr.CodeOf(err))

	err = svc.ReconcileSuccess(context.Background(), "tnx_not-a-uuid")
	require.Equal(t, apperr.Invalid, apperr.CodeOf(err))

	err = svc.ReconcileSuccess(context.Background(), "tnx_"+uuid.NewString())
	require.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestReconcileFail_NoMutation(t *testing.T) {
	ctx := context.Background()
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	orders := newOrderStore(o)
	svc := newService(orders, map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	require.NoError(t, svc.ReconcileFail(ctx, "tnx_"+o.ID.String()))
	require.NoError(t, svc.ReconcileCancel(ctx, "tnx_"+o.ID.String()))

	got, _ := orders.ByID(ctx, o.ID)
	require.Equal(t, model.OrderNotPaid, got.Status)
	require.Equal(t, 0, orders.bookedCalls)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	orders := newOrderStore(o)
	svc := newService(orders, map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	err := svc.Cancel(ctx, o.ID, otherID)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))

	require.NoError(t, svc.Cancel(ctx, o.ID, renterID))
	got, _ := orders.ByID(ctx, o.ID)
	require.Equal(t, model.OrderCancelled, got.Status)
}

func TestCancel_BookedIsFinal(t *testing.T) {
	ctx := context.Background()
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	orders := newOrderStore(o)
	svc := newService(orders, map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	require.NoError(t, svc.ReconcileSuccess(ctx, "tnx_"+o.ID.String()))

	err := svc.Cancel(ctx, o.ID, renterID)
	require.Equal(t, apperr.Forbidden, apperr.CodeOf(err))
	require.Contains(t, err.Error(), "already booked")
}

func TestHasUserRented(t *testing.T) {
	ctx := context.Background()
	adv := testAdvert()
	o := notPaidOrder(adv.ID)
	orders := newOrderStore(o)
	svc := newService(orders, map[uuid.UUID]*model.Advertisement{adv.ID: adv}, nil)

	ok, err := svc.HasUserRented(ctx, adv.ID, renterID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, svc.ReconcileSuccess(ctx, "tnx_"+o.ID.String()))

	ok, err = svc.HasUserRented(ctx, adv.ID, renterID)
	require.NoError(t, err)
	require.True(t, ok)
}
