package model

import "github.com/google/uuid"

type Favourite struct {
	ID              uuid.UUID `json:"id"`
	UserID          int64     `json:"user_id"`
	AdvertisementID uuid.UUID `json:"advertisement_id"`
}

// FavouriteRow carries the advertisement summary for the listing endpoint.
type FavouriteRow struct {
	ID            uuid.UUID     `json:"id"`
	Advertisement AdvertSummary `json:"advertisement"`
}
