package handlers

import (
	"context"

	"globtek-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAccountStore struct {
	col *mongo.Collection
}

func NewAccountStore(col *mongo.Collection) *MongoAccountStore {
	return &MongoAccountStore{col: col}
}

func (s *MongoAccountStore) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	var account models.Account
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

type MongoContactStore struct {
	col *mongo.Collection
}

func NewContactStore(col *mongo.Collection) *MongoContactStore {
	return &MongoContactStore{col: col}
}

func (s *MongoContactStore) Insert(ctx context.Context, msg models.ContactMessage) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

func (s *MongoContactStore) List(ctx context.Context, limit, offset int64) ([]models.ContactMessage, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := make([]models.ContactMessage, 0)
	for cursor.Next(ctx) {
		var msg models.ContactMessage
		if err := cursor.Decode(&msg); err != nil {
			return nil, 0, err
		}
		items = append(items, msg)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
