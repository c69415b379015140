package itineraryRepo

import (
	"context"
	"fmt"
	"time"

	"gochinamed/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoItineraryRepo struct {
	coll *mongo.Collection
}

// NewMongoItineraryRepo constructs the repository on the "itinerary_entries" collection.
func NewMongoItineraryRepo(db *mongo.Database, logger *zap.Logger) ItineraryRepository {
	repo := &mongoItineraryRepo{coll: db.Collection("itinerary_entries")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "startTime", Value: 1}}},
	})
	if err != nil {
		logger.Warn("failed to create itinerary indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoItineraryRepo) CreateMany(ctx context.Context, entries []models.ItineraryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert itinerary entries: %w", err)
	}
	return nil
}

func (r *mongoItineraryRepo) ListByOrder(ctx context.Context, orderID string) ([]models.ItineraryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"orderId": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary for order %s: %w", orderID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.ItineraryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary entries: %w", err)
	}
	return entries, nil
}

func (r *mongoItineraryRepo) ConfirmEntry(ctx context.Context, id, providerRef string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.EntryStatusPending}
	update := bson.M{"$set": bson.M{
		"status":      models.EntryStatusConfirmed,
		"providerRef": providerRef,
		"updatedAt":   time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm itinerary entry %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}
