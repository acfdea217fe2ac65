package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StubGateway approves every charge and refund. It stands in for a real
// payment provider in development and tests.
type StubGateway struct{}

// NewStubGateway creates a stub payment gateway
func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

func (g *StubGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	return &ChargeResult{
		TransactionID: uuid.NewString(),
		Amount:        req.Amount,
		ApprovedAt:    time.Now(),
	}, nil
}

func (g *StubGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	return &RefundResult{
		RefundID:   uuid.NewString(),
		Amount:     req.Amount,
		RefundedAt: time.Now(),
	}, nil
}
