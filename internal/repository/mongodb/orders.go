package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const ordersCollection = "orders"

// OrderRepository defines storage operations for generated purchase orders.
type OrderRepository interface {
	Insert(ctx context.Context, record models.OrderRecord) (models.OrderRecord, error)
	List(ctx context.Context) ([]models.OrderRecord, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// MongoOrderRepository implements OrderRepository on MongoDB.
type MongoOrderRepository struct {
	client *Client
}

// NewOrderRepository builds the orders repository.
func NewOrderRepository(client *Client) *MongoOrderRepository {
	return &MongoOrderRepository{client: client}
}

// Insert stores a generated order.
func (r *MongoOrderRepository) Insert(ctx context.Context, record models.OrderRecord) (models.OrderRecord, error) {
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := r.client.collection(ordersCollection).InsertOne(ctx, record); err != nil {
		return models.OrderRecord{}, fmt.Errorf("insert order: %w", err)
	}
	return record, nil
}

// List returns every order, newest first.
func (r *MongoOrderRepository) List(ctx context.Context) ([]models.OrderRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.client.collection(ordersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.OrderRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return records, nil
}

// UpdateStatus transitions an order's status.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.client.collection(ordersCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
