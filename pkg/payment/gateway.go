package payment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPaymentDeclined = errors.New("payment declined by gateway")
	ErrGatewayFailure  = errors.New("payment gateway unavailable")
)

// ChargeRequest describes a single charge against a buyer
type ChargeRequest struct {
	OrderNumber string  `json:"order_number"`
	BuyerID     uint    `json:"buyer_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// ChargeResult is the gateway's record of an approved charge
type ChargeResult struct {
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	ApprovedAt    time.Time `json:"approved_at"`
}

// RefundRequest reverses a previously approved charge
type RefundRequest struct {
	TransactionID string  `json:"transaction_id"`
	OrderNumber   string  `json:"order_number"`
	Amount        float64 `json:"amount"`
}

// RefundResult is the gateway's record of a completed refund
type RefundResult struct {
	RefundID   string    `json:"refund_id"`
	Amount     float64   `json:"amount"`
	RefundedAt time.Time `json:"refunded_at"`
}

// Gateway is the payment collaborator used at checkout and refund time.
// A decline aborts the surrounding operation with no side effects.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}
