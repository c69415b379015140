package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gochinamed/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database, logger *zap.Logger) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}

	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create user indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

// UpdateTravelPreferences creates the user on first use.
func (r *MongoUserRepo) UpdateTravelPreferences(ctx context.Context, id string, prefs models.TravelPreferences) error {
	return r.upsert(ctx, id, bson.M{"preferences": prefs})
}

// UpdateTravelDocument creates the user on first use.
func (r *MongoUserRepo) UpdateTravelDocument(ctx context.Context, id string, doc models.TravelDocument) error {
	return r.upsert(ctx, id, bson.M{"document": doc})
}

func (r *MongoUserRepo) upsert(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	set["updatedAt"] = now
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"id": id, "createdAt": now},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return nil
}
