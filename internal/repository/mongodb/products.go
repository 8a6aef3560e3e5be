package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const productsCollection = "products"

// ProductRepository defines storage operations for inventory products.
type ProductRepository interface {
	Insert(ctx context.Context, record models.ProductRecord) (models.ProductRecord, error)
	List(ctx context.Context) ([]models.ProductRecord, error)
	FindByName(ctx context.Context, name string) (models.ProductRecord, error)
	Update(ctx context.Context, record models.ProductRecord) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoProductRepository implements ProductRepository on MongoDB.
type MongoProductRepository struct {
	client *Client
}

// NewProductRepository builds the products repository.
func NewProductRepository(client *Client) *MongoProductRepository {
	return &MongoProductRepository{client: client}
}

// Insert stores a new product.
func (r *MongoProductRepository) Insert(ctx context.Context, record models.ProductRecord) (models.ProductRecord, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.client.collection(productsCollection).InsertOne(ctx, record); err != nil {
		return models.ProductRecord{}, fmt.Errorf("insert product: %w", err)
	}
	return record, nil
}

// List returns every product sorted by name.
func (r *MongoProductRepository) List(ctx context.Context) ([]models.ProductRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.client.collection(productsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.ProductRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return records, nil
}

// FindByName looks one product up by its exact name.
func (r *MongoProductRepository) FindByName(ctx context.Context, name string) (models.ProductRecord, error) {
	var record models.ProductRecord
	err := r.client.collection(productsCollection).FindOne(ctx, bson.M{"name": name}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProductRecord{}, ErrNotFound
		}
		return models.ProductRecord{}, fmt.Errorf("find product %q: %w", name, err)
	}
	return record, nil
}

// Update replaces a product document in place.
func (r *MongoProductRepository) Update(ctx context.Context, record models.ProductRecord) error {
	result, err := r.client.collection(productsCollection).ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one product by ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.client.collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
