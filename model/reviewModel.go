package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID              uuid.UUID `json:"id"`
	AdvertisementID uuid.UUID `json:"advertisement_id"`
	UserID          int64     `json:"user_id"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}
