package model

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type RentRequest struct {
	ID              uuid.UUID     `json:"id"`
	AdvertisementID uuid.UUID     `json:"advertisement_id"`
	UserID          int64         `json:"user_id"`
	Status          RequestStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// MyRequestRow joins a request with its advertisement summary for the
// requester-facing listing.
type MyRequestRow struct {
	ID            uuid.UUID     `json:"id"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	Advertisement AdvertSummary `json:"advertisement"`
}
