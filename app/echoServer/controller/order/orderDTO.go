package order

// CreateOrderReq represents the renter's booking payload
// swagger:model CreateOrderReq
type CreateOrderReq struct {
	AdvertisementID string `json:"advertisement_id" validate:"required,uuid4"`
	Name            string `json:"name" validate:"required"`
	Address         string `json:"address" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required,max=16"`
}
