package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderNotPaid   OrderStatus = "NOT_PAID"
	OrderBooked    OrderStatus = "BOOKED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          int64       `json:"user_id"`
	AdvertisementID uuid.UUID   `json:"advertisement_id"`
	Status          OrderStatus `json:"status"`
	Amount          float64     `json:"amount"`
	Name            string      `json:"name"`
	Address         string      `json:"address"`
	PhoneNumber     string      `json:"phone_number"`
	PaidAt          *time.Time  `json:"paid_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}
