package orderRepo

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

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoOrderRepo creates the repository on the "orders" collection of db.
func NewMongoOrderRepo(db *mongo.Database, logger *zap.Logger) OrderRepository {
	repo := &MongoOrderRepo{coll: db.Collection("orders"), timeout: 5 * time.Second}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create order indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoOrderRepo) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, r.timeout)
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "amountKey", Value: 1}, {Key: "createdAt", Value: -1}}},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(bson.M{"idempotencyKey": bson.M{"$type": "string"}}),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new order document.
func (r *MongoOrderRepo) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Order, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByID retrieves an order by its ID.
func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	return order, nil
}

// FindRecentByAmount returns the newest matching order inside the window.
func (r *MongoOrderRepo) FindRecentByAmount(ctx context.Context, userID string, amountKey float64, since time.Time) (*models.Order, error) {
	filter := bson.M{
		"userId":    userID,
		"amountKey": amountKey,
		"createdAt": bson.M{"$gte": since},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	order, err := r.findOne(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recent orders for user %s: %w", userID, err)
	}
	return order, nil
}

// GetByIdempotencyKey returns the order created with key.
func (r *MongoOrderRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (*models.Order, error) {
	order, err := r.findOne(ctx, bson.M{"userId": userID, "idempotencyKey": key})
	if err != nil {
		return nil, fmt.Errorf("failed to look up idempotency key for user %s: %w", userID, err)
	}
	return order, nil
}

// ConfirmDoctorAppointment only touches orders whose appointment is still pending.
func (r *MongoOrderRepo) ConfirmDoctorAppointment(ctx context.Context, id, ref string) (bool, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	filter := bson.M{"id": id, "doctorAppointmentStatus": models.AppointmentStatusPending}
	update := bson.M{"$set": bson.M{
		"doctorAppointmentStatus": models.AppointmentStatusConfirmed,
		"doctorAppointmentRef":    ref,
		"updatedAt":               time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm appointment for order %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

// ConfirmServiceReservation only touches orders whose reservation is still pending.
func (r *MongoOrderRepo) ConfirmServiceReservation(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.newContext(ctx)
	defer cancel()

	filter := bson.M{"id": id, "serviceReservationStatus": models.ReservationStatusPending}
	update := bson.M{"$set": bson.M{
		"serviceReservationStatus": models.ReservationStatusConfirmed,
		"updatedAt":                time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm reservation for order %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}
