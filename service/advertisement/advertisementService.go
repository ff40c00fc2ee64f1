package advertisement

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rjmahfuztech/nesthunt/model"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
	"github.com/rjmahfuztech/nesthunt/util/authz"
)

// CreateInput is the owner-supplied advertisement payload. Moderation status
// and is_rented are never caller-controlled.
type CreateInput struct {
	Title         string
	Description   string
	Category      string
	RentalAmount  float64
	Location      string
	Bedroom       int
	Bathroom      int
	ApartmentSize float64
}

type Service interface {
	Create(ctx context.Context, ownerID int64, in CreateInput) (*model.Advertisement, error)
	Get(ctx context.Context, id uuid.UUID, p authz.Principal) (*model.Advertisement, error)
	List(ctx context.Context, f model.AdvertFilter, p authz.Principal) ([]model.Advertisement, error)
	Mine(ctx context.Context, ownerID int64) ([]model.Advertisement, error)
	Update(ctx context.Context, id uuid.UUID, p authz.Principal, in CreateInput) (*model.Advertisement, error)
	Moderate(ctx context.Context, id uuid.UUID, p authz.Principal, status model.AdvertStatus) error
	Delete(ctx context.Context, id uuid.UUID, p authz.Principal) error
}

type service struct {
	r advrepo.Repo
}

func New(r advrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, ownerID int64, in CreateInput) (*model.Advertisement, error) {
	if in.Title == "" || in.Location == "" {
		return nil, apperr.New(apperr.Invalid, "title and location are required")
	}
	if in.RentalAmount <= 0 || in.Bedroom < 1 || in.Bathroom < 1 || in.ApartmentSize <= 0 {
		return nil, apperr.New(apperr.Invalid, "rental amount, rooms and apartment size must be positive")
	}

	a := &model.Advertisement{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Status:        model.AdvertPending,
		RentalAmount:  in.RentalAmount,
		Location:      in.Location,
		Bedroom:       in.Bedroom,
		Bathroom:      in.Bathroom,
		ApartmentSize: in.ApartmentSize,
	}
	if err := s.r.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, p authz.Principal) (*model.Advertisement, error) {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}
	// Unapproved advertisements are visible to staff and the owner only.
	if a.Status != model.AdvertApproved && !authz.Allowed(p, a.OwnerID, authz.ManageOwnAdvert) {
		return nil, apperr.New(apperr.NotFound, "advertisement not found")
	}
	return a, nil
}

func (s *service) List(ctx context.Context, f model.AdvertFilter, p authz.Principal) ([]model.Advertisement, error) {
	return s.r.List(ctx, f, p.Staff)
}

func (s *service) Mine(ctx context.Context, ownerID int64) ([]model.Advertisement, error) {
	return s.r.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, p authz.Principal, in CreateInput) (*model.Advertisement, error) {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "advertisement not found")
		}
		return nil, err
	}
	if !authz.Allowed(p, a.OwnerID, authz.ManageOwnAdvert) {
		return nil, apperr.New(apperr.Forbidden, "not your advertisement")
	}
	if in.RentalAmount <= 0 || in.Bedroom < 1 || in.Bathroom < 1 || in.ApartmentSize <= 0 {
		return nil, apperr.New(apperr.Invalid, "rental amount, rooms and apartment size must be positive")
	}

	a.Title = in.Title
	a.Description = in.Description
	a.Category = in.Category
	a.RentalAmount = in.RentalAmount
	a.Location = in.Location
	a.Bedroom = in.Bedroom
	a.Bathroom = in.Bathroom
	a.ApartmentSize = in.ApartmentSize
	if err := s.r.UpdateDetails(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Moderate(ctx context.Context, id uuid.UUID, p authz.Principal, status model.AdvertStatus) error {
	if !authz.Allowed(p, 0, authz.ModerateAdvert) {
		return apperr.New(apperr.Forbidden, "staff only")
	}
	if status != model.AdvertApproved && status != model.AdvertRejected && status != model.AdvertPending {
		return apperr.New(apperr.Invalid, "unknown moderation status")
	}
	if _, err := s.r.ByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "advertisement not found")
		}
		return err
	}
	return s.r.SetStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, p authz.Principal) error {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "advertisement not found")
		}
		return err
	}
	if !authz.Allowed(p, a.OwnerID, authz.ManageOwnAdvert) {
		return apperr.New(apperr.Forbidden, "not your advertisement")
	}
	_, err = s.r.Delete(ctx, id)
	return err
}
