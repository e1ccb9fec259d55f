package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderKey is the logical identity of a submission: two orders with the
// same key are the same order. The orders collection carries a unique
// compound index on these four fields.
type OrderKey struct {
	ProductID  string  `bson:"productId" json:"productId" binding:"required"`
	BuyerEmail string  `bson:"buyerEmail" json:"buyerEmail" binding:"required,email"`
	Quantity   int     `bson:"quantity" json:"quantity" binding:"required,gt=0"`
	Price      float64 `bson:"price" json:"price" binding:"required,gt=0"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderKey      `bson:",inline"`
	Paid          bool      `bson:"paid" json:"paid"`
	TransactionID string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
