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

const treatmentsCollection = "treatments"

// TreatmentRepository defines storage operations for treatment records.
type TreatmentRepository interface {
	Insert(ctx context.Context, record models.TreatmentRecord) (models.TreatmentRecord, error)
	List(ctx context.Context) ([]models.TreatmentRecord, error)
	ListByYear(ctx context.Context, year int) ([]models.TreatmentRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoTreatmentRepository implements TreatmentRepository on MongoDB.
type MongoTreatmentRepository struct {
	client *Client
}

// NewTreatmentRepository builds the treatments repository.
func NewTreatmentRepository(client *Client) *MongoTreatmentRepository {
	return &MongoTreatmentRepository{client: client}
}

// Insert stores a new treatment record.
func (r *MongoTreatmentRepository) Insert(ctx context.Context, record models.TreatmentRecord) (models.TreatmentRecord, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.client.collection(treatmentsCollection).InsertOne(ctx, record); err != nil {
		return models.TreatmentRecord{}, fmt.Errorf("insert treatment: %w", err)
	}
	return record, nil
}

// List returns every treatment record, oldest first.
func (r *MongoTreatmentRepository) List(ctx context.Context) ([]models.TreatmentRecord, error) {
	return r.find(ctx, bson.M{})
}

// ListByYear returns treatments applied during the given calendar year.
func (r *MongoTreatmentRepository) ListByYear(ctx context.Context, year int) ([]models.TreatmentRecord, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return r.find(ctx, bson.M{"treatment_date": bson.M{"$gte": start, "$lt": end}})
}

// Delete removes one treatment record by ID.
func (r *MongoTreatmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.client.collection(treatmentsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTreatmentRepository) find(ctx context.Context, filter bson.M) ([]models.TreatmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "treatment_date", Value: 1}})
	cursor, err := r.client.collection(treatmentsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find treatments: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.TreatmentRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode treatments: %w", err)
	}
	return records, nil
}
