package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const parcelsCollection = "parcels"

// ParcelRepository defines storage operations for parcels.
type ParcelRepository interface {
	Insert(ctx context.Context, record models.ParcelRecord) (models.ParcelRecord, error)
	List(ctx context.Context) ([]models.ParcelRecord, error)
	Update(ctx context.Context, record models.ParcelRecord) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoParcelRepository implements ParcelRepository on MongoDB.
type MongoParcelRepository struct {
	client *Client
}

// NewParcelRepository builds the parcels repository.
func NewParcelRepository(client *Client) *MongoParcelRepository {
	return &MongoParcelRepository{client: client}
}

// Insert stores a new parcel.
func (r *MongoParcelRepository) Insert(ctx context.Context, record models.ParcelRecord) (models.ParcelRecord, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.client.collection(parcelsCollection).InsertOne(ctx, record); err != nil {
		return models.ParcelRecord{}, fmt.Errorf("insert parcel: %w", err)
	}
	return record, nil
}

// List returns every parcel sorted by name.
func (r *MongoParcelRepository) List(ctx context.Context) ([]models.ParcelRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.client.collection(parcelsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find parcels: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.ParcelRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}
	return records, nil
}

// Update replaces a parcel document in place.
func (r *MongoParcelRepository) Update(ctx context.Context, record models.ParcelRecord) error {
	result, err := r.client.collection(parcelsCollection).ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return fmt.Errorf("update parcel: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one parcel by ID.
func (r *MongoParcelRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.client.collection(parcelsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete parcel: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
