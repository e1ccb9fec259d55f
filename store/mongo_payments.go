package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"manufacturer/models"
)

type MongoPaymentStore struct {
	coll *mongo.Collection
}

func NewMongoPaymentStore(coll *mongo.Collection) *MongoPaymentStore {
	return &MongoPaymentStore{coll: coll}
}

func (s *MongoPaymentStore) Insert(ctx context.Context, record *models.PaymentRecord) error {
	_, err := s.coll.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *MongoPaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := s.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &record, nil
}
