// Package store is the persistence boundary. Interfaces here are what the
// services program against; the Mongo* types implement them on MongoDB.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"manufacturer/models"
)

var (
	// ErrNotFound means the queried document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means an insert collided with a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Upsert applies the profile to the user with the given email,
	// creating the user with role "regular" on first sign-in, and
	// returns the resulting document.
	Upsert(ctx context.Context, email string, profile models.UserProfile) (*models.User, error)
	// SetRole upserts the user's role.
	SetRole(ctx context.Context, email string, role models.Role) error
	List(ctx context.Context) ([]models.User, error)
}

type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	// FindByKey matches the full dedup tuple exactly.
	FindByKey(ctx context.Context, key models.OrderKey) (*models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// Insert returns ErrDuplicate when the unique index on the dedup
	// tuple rejects the document.
	Insert(ctx context.Context, order *models.Order) error
	FindByBuyer(ctx context.Context, email string) ([]models.Order, error)
	// MarkPaid sets paid=true and the transaction id on the order.
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error
}

type PaymentStore interface {
	// Insert returns ErrDuplicate when a record with the same
	// transaction id already exists.
	Insert(ctx context.Context, record *models.PaymentRecord) error
	FindByTransactionID(ctx context.Context, transactionID string) (*models.PaymentRecord, error)
}
