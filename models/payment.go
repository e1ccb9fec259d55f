package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord is written once per confirmed payment and never updated.
// Amount is in minor currency units (cents).
type PaymentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        int64              `bson:"amount" json:"amount"`
	OrderID       primitive.ObjectID `bson:"orderId" json:"orderId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
