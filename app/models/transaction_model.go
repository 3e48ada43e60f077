package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionPending   = "Pending"
	TransactionCompleted = "Completed"
	TransactionFailed    = "Failed"
)

type Transaction struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ListingID   uuid.UUID `json:"listing_id" db:"listing_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Amount      float64   `json:"amount"`
	PlatformFee float64   `json:"platform_fee"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaymentConfirmRequest struct {
	TransactionID string `json:"transaction_id" form:"transaction_id" validate:"required,uuid4"`
}
