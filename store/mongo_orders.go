package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"manufacturer/models"
)

type MongoOrderStore struct {
	coll *mongo.Collection
}

func NewMongoOrderStore(coll *mongo.Collection) *MongoOrderStore {
	return &MongoOrderStore{coll: coll}
}

func (s *MongoOrderStore) FindByKey(ctx context.Context, key models.OrderKey) (*models.Order, error) {
	filter := bson.M{
		"productId":  key.ProductID,
		"buyerEmail": key.BuyerEmail,
		"quantity":   key.Quantity,
		"price":      key.Price,
	}

	var order models.Order
	err := s.coll.FindOne(ctx, filter).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order by key: %w", err)
	}
	return &order, nil
}

func (s *MongoOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (s *MongoOrderStore) Insert(ctx context.Context, order *models.Order) error {
	_, err := s.coll.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *MongoOrderStore) FindByBuyer(ctx context.Context, email string) ([]models.Order, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"buyerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *MongoOrderStore) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error {
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
