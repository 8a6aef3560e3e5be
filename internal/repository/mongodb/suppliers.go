package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const suppliersCollection = "suppliers"

// SupplierRepository defines storage operations for suppliers.
type SupplierRepository interface {
	Insert(ctx context.Context, record models.SupplierRecord) (models.SupplierRecord, error)
	List(ctx context.Context) ([]models.SupplierRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoSupplierRepository implements SupplierRepository on MongoDB.
type MongoSupplierRepository struct {
	client *Client
}

// NewSupplierRepository builds the suppliers repository.
func NewSupplierRepository(client *Client) *MongoSupplierRepository {
	return &MongoSupplierRepository{client: client}
}

// Insert stores a new supplier.
func (r *MongoSupplierRepository) Insert(ctx context.Context, record models.SupplierRecord) (models.SupplierRecord, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.client.collection(suppliersCollection).InsertOne(ctx, record); err != nil {
		return models.SupplierRecord{}, fmt.Errorf("insert supplier: %w", err)
	}
	return record, nil
}

// List returns every supplier sorted by name.
func (r *MongoSupplierRepository) List(ctx context.Context) ([]models.SupplierRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.client.collection(suppliersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.SupplierRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode suppliers: %w", err)
	}
	return records, nil
}

// Delete removes one supplier by ID.
func (r *MongoSupplierRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.client.collection(suppliersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
