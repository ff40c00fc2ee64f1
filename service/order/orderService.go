package order

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	orepo "github.com/rjmahfuztech/nesthunt/repository/order"
	"github.com/rjmahfuztech/nesthunt/repository/sslcommerz"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/authz"
)

const (
	tranPrefix = "tnx_"
	currency   = "BDT"
)

// ContactInfo is the payer detail captured at order creation.
type ContactInfo struct {
	Name        string
	Address     string
	PhoneNumber string
}

type Service interface {
	// Create opens a NOT_PAID order with the advertisement's rental amount
	// snapshotted. No tie to an approved rent request is enforced here.
	Create(ctx context.Context, advertID uuid.UUID, requesterID int64, contact ContactInfo) (*model.Order, error)

	// InitiatePayment opens a gateway session and returns the redirect URL.
	InitiatePayment(ctx context.Context, orderID uuid.UUID, callerID int64) (string, error)

	// ReconcileSuccess finalizes the order named by the gateway transaction
	// reference. Safe under at-least-once callback delivery.
	ReconcileSuccess(ctx context.Context, tranID string) error

	// ReconcileFail and ReconcileCancel acknowledge the callback without
	// touching order state.
	ReconcileFail(ctx context.Context, tranID string) error
	ReconcileCancel(ctx context.Context, tranID string) error

	Cancel(ctx context.Context, orderID uuid.UUID, callerID int64) error
	Mine(ctx context.Context, userID int64) ([]model.Order, error)

	// HasUserRented reports whether a BOOKED order exists for the pair.
	HasUserRented(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error)
}

type service struct {
	db      *sql.DB
	or      orepo.Repo
	ar      advrepo.Repo
	gw      sslcommerz.Repo
	baseURL string
}

func New(db *sql.DB, or orepo.Repo, ar advrepo.Repo, gw sslcommerz.Repo, baseURL string) Service {
	return &service{db: db, or: or, ar: ar, gw: gw, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *service) Create(ctx context.Context, advertID uuid.UUID, requesterID int64, contact ContactInfo) (*model.Order, error) {
	adv, err := s.ar.ByID(ctx, advertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}
	if contact.Name == "" || contact.Address == "" || contact.PhoneNumber == "" {
		return nil, apperr.New(apperr.Invalid, "name, address and phone number are required")
	}

	o := &model.Order{
		ID:              uuid.New(),
		UserID:          requesterID,
		AdvertisementID: adv.ID,
		Status:          model.OrderNotPaid,
		Amount:          adv.RentalAmount,
		Name:            contact.Name,
		Address:         contact.Address,
		PhoneNumber:     contact.PhoneNumber,
	}
	if err := s.or.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) InitiatePayment(ctx context.Context, orderID uuid.UUID, callerID int64) (string, error) {
	o, err := s.or.ByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.New(apperr.NotFound, "order not found")
		}
		return "", err
	}
	if !authz.Allowed(authz.Principal{ID: callerID}, o.UserID, authz.InitiateOrderPaying) {
		return "", apperr.New(apperr.Forbidden, "not your order")
	}
	if o.Status != model.OrderNotPaid {
		return "", apperr.New(apperr.Conflict, "order is not awaiting payment")
	}

	resp, err := s.gw.CreateSession(sslcommerz.CreateSessionReq{
		TranID:        tranPrefix + o.ID.String(),
		Amount:        o.Amount,
		Currency:      currency,
		SuccessURL:    s.baseURL + "/v1/payment/success",
		FailURL:       s.baseURL + "/v1/payment/fail",
		CancelURL:     s.baseURL + "/v1/payment/cancel",
		CustomerName:  o.Name,
		CustomerPhone: o.PhoneNumber,
		CustomerAddr:  o.Address,
	})
	if err != nil {
		return "", apperr.New(apperr.Gateway, "payment gateway unreachable: "+err.Error())
	}
	if !strings.EqualFold(resp.Status, "SUCCESS") {
		msg := resp.FailedReason
		if msg == "" {
			msg = "gateway reported " + resp.Status
		}
		return "", apperr.New(apperr.Gateway, msg)
	}
	return resp.GatewayPageURL, nil
}

// parseTranID maps "tnx_<orderID>" back to the order id.
func parseTranID(tranID string) (uuid.UUID, error) {
	parts := strings.SplitN(tranID, "_", 2)
	if len(parts) != 2 {
		return uuid.Nil, apperr.New(apperr.Invalid, "malformed transaction reference")
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, apperr.New(apperr.Invalid, "malformed transaction reference")
	}
	return id, nil
}

func (s *service) ReconcileSuccess(ctx context.Context, tranID string) (err error) {
	orderID, err := parseTranID(tranID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	o, err := s.or.LockByID(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "order not found")
		}
		return err
	}
	// Replayed callback: already finalized, nothing to do.
	if o.Status == model.OrderBooked {
		return tx.Commit()
	}
	if err = s.or.MarkBooked(ctx, tx, o.ID, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ReconcileFail(ctx context.Context, tranID string) error {
	// Failed payments leave the order NOT_PAID so the renter can retry.
	_, err := parseTranID(tranID)
	return err
}

func (s *service) ReconcileCancel(ctx context.Context, tranID string) error {
	_, err := parseTranID(tranID)
	return err
}

func (s *service) Cancel(ctx context.Context, orderID uuid.UUID, callerID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	o, err := s.or.LockByID(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "order not found")
		}
		return err
	}
	if !authz.Allowed(authz.Principal{ID: callerID}, o.UserID, authz.CancelOrder) {
		return apperr.New(apperr.Forbidden, "not your order")
	}
	if o.Status == model.OrderBooked {
		return apperr.New(apperr.Forbidden, "cannot cancel, order is already booked")
	}
	if err = s.or.MarkCancelled(ctx, tx, o.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Mine(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.or.ListByUser(ctx, userID)
}

func (s *service) HasUserRented(ctx context.Context, advertID uuid.UUID, userID int64) (bool, error) {
	return s.or.HasBooked(ctx, advertID, userID)
}
