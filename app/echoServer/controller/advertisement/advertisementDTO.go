package advertisement

// CreateAdvertisementReq represents the owner's listing payload
// swagger:model CreateAdvertisementReq
type CreateAdvertisementReq struct {
	Title         string  `json:"title" validate:"required,max=300"`
	Description   string  `json:"description" validate:"required"`
	Category      string  `json:"category" validate:"required,max=200"`
	RentalAmount  float64 `json:"rental_amount" validate:"required,gt=0"`
	Location      string  `json:"location" validate:"required,max=500"`
	Bedroom       int     `json:"bedroom" validate:"required,gte=1"`
	Bathroom      int     `json:"bathroom" validate:"required,gte=1"`
	ApartmentSize float64 `json:"apartment_size" validate:"required,gt=0"`
}

// ModerateAdvertisementReq is the staff moderation payload
// swagger:model ModerateAdvertisementReq
type ModerateAdvertisementReq struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}
