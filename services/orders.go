package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"manufacturer/models"
	"manufacturer/store"
)

// markPaidAttempts bounds the retry of the reconciler's second write. A
// payment record without a paid order is recoverable by re-sending the
// PATCH with the same transaction id, so giving up here is safe.
const markPaidAttempts = 3

type OrderService struct {
	orders   store.OrderStore
	payments store.PaymentStore
}

func NewOrderService(orders store.OrderStore, payments store.PaymentStore) *OrderService {
	return &OrderService{orders: orders, payments: payments}
}

// Submit creates an order unless an identical one already exists. The
// returned bool is false when the submission matched an existing order,
// which makes client retries safe.
func (s *OrderService) Submit(ctx context.Context, key models.OrderKey) (*models.Order, bool, error) {
	if err := validateOrderKey(key); err != nil {
		return nil, false, err
	}

	existing, err := s.orders.FindByKey(ctx, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("check existing order: %w", err)
	}

	order := &models.Order{
		ID:        primitive.NewObjectID(),
		OrderKey:  key,
		Paid:      false,
		CreatedAt: time.Now(),
	}

	err = s.orders.Insert(ctx, order)
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent identical submission won the insert. The unique
		// index on the dedup tuple guarantees exactly one stored order;
		// converge on it.
		winner, ferr := s.orders.FindByKey(ctx, key)
		if ferr != nil {
			return nil, false, fmt.Errorf("fetch order after duplicate insert: %w", ferr)
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert order: %w", err)
	}

	return order, true, nil
}

// Reconcile records a confirmed payment and transitions the order to
// paid. Re-applying the same transaction to an already-paid order is a
// no-op; a different transaction on a paid order is a conflict.
func (s *OrderService) Reconcile(ctx context.Context, orderID primitive.ObjectID, transactionID string, amount int64) (*models.Order, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, fmt.Errorf("%w: transactionId is required", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	if order.Paid {
		if order.TransactionID == transactionID {
			return order, nil
		}
		return nil, ErrPaymentConflict
	}

	record := &models.PaymentRecord{
		ID:            primitive.NewObjectID(),
		TransactionID: transactionID,
		Amount:        amount,
		OrderID:       orderID,
		CreatedAt:     time.Now(),
	}
	err = s.payments.Insert(ctx, record)
	if errors.Is(err, store.ErrDuplicate) {
		// Either a previous reconcile attempt recorded this transaction
		// but failed before updating the order, or the transaction was
		// spent on a different order. Only the first case may proceed.
		existing, ferr := s.payments.FindByTransactionID(ctx, transactionID)
		if ferr != nil {
			return nil, fmt.Errorf("load payment record: %w", ferr)
		}
		if existing.OrderID != orderID {
			return nil, ErrPaymentConflict
		}
	} else if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= markPaidAttempts; attempt++ {
		lastErr = s.orders.MarkPaid(ctx, orderID, transactionID)
		if lastErr == nil {
			order.Paid = true
			order.TransactionID = transactionID
			return order, nil
		}
		if errors.Is(lastErr, store.ErrNotFound) {
			break
		}
		slog.Warn("mark paid failed, retrying",
			"order", orderID.Hex(), "attempt", attempt, "error", lastErr)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("mark order paid: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("mark order paid: %w", lastErr)
}

func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id.Hex())
	}
	return order, err
}

func (s *OrderService) ListByBuyer(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.FindByBuyer(ctx, email)
}

func validateOrderKey(key models.OrderKey) error {
	switch {
	case strings.TrimSpace(key.ProductID) == "":
		return fmt.Errorf("%w: productId is required", ErrValidation)
	case strings.TrimSpace(key.BuyerEmail) == "":
		return fmt.Errorf("%w: buyerEmail is required", ErrValidation)
	case key.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	case key.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return nil
}
