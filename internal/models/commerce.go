package models

import "time"

// Discount represents a promotional code applied at purchase time
type Discount struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Percent     int       `json:"percent"`
	ValidFrom   time.Time `json:"validFrom"`
	ValidTo     time.Time `json:"validTo"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TransactionStatus is the settlement state of a ticket purchase
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionRefunded  TransactionStatus = "REFUNDED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Transaction represents a ticket purchase
type Transaction struct {
	ID          int64             `json:"id"`
	Reference   string            `json:"reference"`
	OperatorID  int64             `json:"operatorId"`
	RouteID     int64             `json:"routeId"`
	AmountCents int64             `json:"amountCents"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}
