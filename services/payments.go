package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// PaymentGateway creates a charge authorization with the external payment
// provider and returns the client secret used to confirm it client-side.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, idempotencyKey string) (string, error)
}

const (
	gatewayTimeout = 15 * time.Second
	currencyUSD    = "usd"
)

type PaymentService struct {
	gateway PaymentGateway
}

func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateIntent authorizes a charge for the given price in major currency
// units and returns the client secret. The gateway call carries a fresh
// idempotency key so an operational retry cannot double-charge.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	amount := MinorUnits(price)

	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	clientSecret, err := s.gateway.CreateIntent(ctx, amount, currencyUSD, uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	return clientSecret, nil
}

// MinorUnits converts a price in major units to integer minor units with
// standard currency rounding: 19.99 becomes exactly 1999.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
