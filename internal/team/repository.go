package team

import (
	"context"

	"globtek-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AccountRepository is the auth-identity store. It is deliberately separate
// from ProfileRepository: member deletion is a two-step sequence across the
// two stores, identity first.
type AccountRepository interface {
	Create(ctx context.Context, account models.Account) error
	Delete(ctx context.Context, id string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile Profile) error
	Update(ctx context.Context, id string, set bson.M) (Profile, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
}

type MongoAccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(col *mongo.Collection) *MongoAccountRepository {
	return &MongoAccountRepository{col: col}
}

func (r *MongoAccountRepository) Create(ctx context.Context, account models.Account) error {
	_, err := r.col.InsertOne(ctx, account)
	return err
}

func (r *MongoAccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoAccountRepository) UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"passwordHash": hash}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

type MongoProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(col *mongo.Collection) *MongoProfileRepository {
	return &MongoProfileRepository{col: col}
}

func (r *MongoProfileRepository) Create(ctx context.Context, profile Profile) error {
	_, err := r.col.InsertOne(ctx, profile)
	return err
}

func (r *MongoProfileRepository) Update(ctx context.Context, id string, set bson.M) (Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Profile{}, err
	}
	return updated, nil
}

func (r *MongoProfileRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoProfileRepository) GetByID(ctx context.Context, id string) (Profile, error) {
	var profile Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (r *MongoProfileRepository) List(ctx context.Context) ([]Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := make([]Profile, 0)
	for cursor.Next(ctx) {
		var profile Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
