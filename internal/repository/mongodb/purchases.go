package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const purchasesCollection = "purchases"

// PurchaseRepository defines storage operations for purchase records.
type PurchaseRepository interface {
	Insert(ctx context.Context, record models.PurchaseRecord) (models.PurchaseRecord, error)
	InsertMany(ctx context.Context, records []models.PurchaseRecord) (int, error)
	List(ctx context.Context) ([]models.PurchaseRecord, error)
	ListByYear(ctx context.Context, year int) ([]models.PurchaseRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoPurchaseRepository implements PurchaseRepository on MongoDB.
type MongoPurchaseRepository struct {
	client *Client
}

// NewPurchaseRepository builds the purchases repository.
func NewPurchaseRepository(client *Client) *MongoPurchaseRepository {
	return &MongoPurchaseRepository{client: client}
}

// Insert stores a new purchase record and returns it with its assigned ID.
func (r *MongoPurchaseRepository) Insert(ctx context.Context, record models.PurchaseRecord) (models.PurchaseRecord, error) {
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if _, err := r.client.collection(purchasesCollection).InsertOne(ctx, record); err != nil {
		return models.PurchaseRecord{}, fmt.Errorf("insert purchase: %w", err)
	}
	return record, nil
}

// InsertMany stores a batch of purchase records, returning how many were written.
func (r *MongoPurchaseRepository) InsertMany(ctx context.Context, records []models.PurchaseRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(records))
	now := time.Now().UTC()
	for _, record := range records {
		record.ID = primitive.NewObjectID()
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		docs = append(docs, record)
	}

	result, err := r.client.collection(purchasesCollection).InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert purchases batch: %w", err)
	}
	return len(result.InsertedIDs), nil
}

// List returns every purchase record, oldest order first.
func (r *MongoPurchaseRepository) List(ctx context.Context) ([]models.PurchaseRecord, error) {
	return r.find(ctx, bson.M{})
}

// ListByYear returns purchases whose order date falls in the given calendar year.
func (r *MongoPurchaseRepository) ListByYear(ctx context.Context, year int) ([]models.PurchaseRecord, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	filter := bson.M{"order_date": bson.M{"$gte": start, "$lt": end}}
	return r.find(ctx, filter)
}

// Delete removes one purchase record by ID.
func (r *MongoPurchaseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.client.collection(purchasesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPurchaseRepository) find(ctx context.Context, filter bson.M) ([]models.PurchaseRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: 1}})
	cursor, err := r.client.collection(purchasesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find purchases: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.PurchaseRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return records, nil
		}
		return nil, fmt.Errorf("decode purchases: %w", err)
	}
	return records, nil
}
