package model

import (
	"time"

	"github.com/google/uuid"
)

type AdvertStatus string

const (
	AdvertPending  AdvertStatus = "PENDING"
	AdvertApproved AdvertStatus = "APPROVED"
	AdvertRejected AdvertStatus = "REJECTED"
)

type Advertisement struct {
	ID            uuid.UUID    `json:"id"`
	OwnerID       int64        `json:"owner_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Status        AdvertStatus `json:"status"`
	RentalAmount  float64      `json:"rental_amount"`
	Location      string       `json:"location"`
	Bedroom       int          `json:"bedroom"`
	Bathroom      int          `json:"bathroom"`
	ApartmentSize float64      `json:"apartment_size"`
	IsRented      bool         `json:"is_rented"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// AdvertSummary is the slim shape embedded in rent-request listings.
type AdvertSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	RentalAmount float64   `json:"rental_amount"`
	IsRented     bool      `json:"is_rented"`
}

// AdvertFilter mirrors the public list query parameters.
type AdvertFilter struct {
	Category string
	Location string
	Bedroom  int
	Bathroom int
}
