package rentrequest

// CreateRentRequestReq represents a renter's bid for an advertisement
// swagger:model CreateRentRequestReq
type CreateRentRequestReq struct {
	AdvertisementID string `json:"advertisement_id" validate:"required,uuid4"`
}

// DecideRentRequestReq is the owner's approve/reject payload
// swagger:model DecideRentRequestReq
type DecideRentRequestReq struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}
