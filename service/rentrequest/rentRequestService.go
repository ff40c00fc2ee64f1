package rentrequest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	rrepo "github.com/rjmahfuztech/nesthunt/repository/rentrequest"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/authz"
)

type Service interface {
	// Submit files a PENDING request from requester against an approved,
	// not-yet-rented advertisement.
	Submit(ctx context.Context, advertID uuid.UUID, requesterID int64) (*model.RentRequest, error)

	// Cancel hard-deletes the requester's own request, whatever its status.
	Cancel(ctx context.Context, requestID uuid.UUID, requesterID int64) error

	// ListForAdvertisement is owner/staff only.
	ListForAdvertisement(ctx context.Context, advertID uuid.UUID, p authz.Principal) ([]model.RentRequest, error)

	Mine(ctx context.Context, requesterID int64) ([]model.MyRequestRow, error)

	// Decide approves or rejects one request. Approval locks the
	// advertisement and cascades rejection to the remaining PENDING
	// siblings; once the advertisement is locked no further decision on any
	// of its requests succeeds.
	Decide(ctx context.Context, requestID uuid.UUID, p authz.Principal, status model.RequestStatus) error
}

type service struct {
	db *sql.DB
	rr rrepo.Repo
	ar advrepo.Repo
}

func New(db *sql.DB, rr rrepo.Repo, ar advrepo.Repo) Service {
	return &service{db: db, rr: rr, ar: ar}
}

func (s *service) Submit(ctx context.Context, advertID uuid.UUID, requesterID int64) (*model.RentRequest, error) {
	adv, err := s.ar.ByID(ctx, advertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}
	if adv.Status != model.AdvertApproved {
		return nil, apperr.New(apperr.Conflict, "advertisement is not available for rent")
	}

	exists, err := s.rr.Exists(ctx, advertID, requesterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "you already have a request for this advertisement")
	}

	if adv.IsRented {
		return nil, apperr.New(apperr.Conflict, "advertisement is already booked")
	}
	if adv.OwnerID == requesterID {
		return nil, apperr.New(apperr.Forbidden, "you cannot request your own advertisement")
	}

	rr := &model.RentRequest{
		ID:              uuid.New(),
		AdvertisementID: advertID,
		UserID:          requesterID,
		Status:          model.RequestPending,
	}
	if err := s.rr.Insert(ctx, rr); err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *service) Cancel(ctx context.Context, requestID uuid.UUID, requesterID int64) error {
	rr, err := s.rr.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "rent request not found")
		}
		return err
	}
	if !authz.Allowed(authz.Principal{ID: requesterID}, rr.UserID, authz.CancelRequest) {
		return apperr.New(apperr.Forbidden, "not your rent request")
	}
	_, err = s.rr.Delete(ctx, requestID)
	return err
}

func (s *service) ListForAdvertisement(ctx context.Context, advertID uuid.UUID, p authz.Principal) ([]model.RentRequest, error) {
	adv, err := s.ar.ByID(ctx, advertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}
	if !authz.Allowed(p, adv.OwnerID, authz.ViewRequests) {
		return nil, apperr.New(apperr.Forbidden, "only the advertisement owner can view its rent requests")
	}
	return s.rr.ListByAdvertisement(ctx, advertID)
}

func (s *service) Mine(ctx context.Context, requesterID int64) ([]model.MyRequestRow, error) {
	return s.rr.ListByUser(ctx, requesterID)
}

func (s *service) Decide(ctx context.Context, requestID uuid.UUID, p authz.Principal, status model.RequestStatus) (err error) {
	if status != model.RequestApproved && status != model.RequestRejected {
		return apperr.New(apperr.Invalid, "decision must be APPROVED or REJECTED")
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

	rr, err := s.rr.LockByID(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "rent request not found")
		}
		return err
	}

	// The advertisement row lock serializes concurrent decisions: a second
	// approval blocks here until the first commits, then fails the rented
	// guard below.
	adv, err := s.ar.LockByID(ctx, tx, rr.AdvertisementID)
	if err != nil {
		return err
	}
	if !authz.Allowed(p, adv.OwnerID, authz.DecideRequest) {
		return apperr.New(apperr.Forbidden, "only the advertisement owner can decide rent requests")
	}
	if adv.IsRented {
		return apperr.New(apperr.Forbidden, "a request has already been accepted for this advertisement")
	}

	if err = s.rr.SetStatus(ctx, tx, rr.ID, status); err != nil {
		return err
	}
	if status == model.RequestApproved {
		if err = s.ar.SetRented(ctx, tx, adv.ID, true); err != nil {
			return err
		}
		if _, err = s.rr.RejectPendingSiblings(ctx, tx, adv.ID, rr.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
