package mongodb

import (
	"context"
	"fmt"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const snapshotsCollection = "monthly_snapshots"

// SnapshotRepository persists the scheduler's monthly aggregates.
type SnapshotRepository interface {
	Insert(ctx context.Context, snapshot models.MonthlySnapshot) error
}

// MongoSnapshotRepository implements SnapshotRepository on MongoDB.
type MongoSnapshotRepository struct {
	client *Client
}

// NewSnapshotRepository builds the snapshots repository.
func NewSnapshotRepository(client *Client) *MongoSnapshotRepository {
	return &MongoSnapshotRepository{client: client}
}

// Insert stores one monthly snapshot.
func (r *MongoSnapshotRepository) Insert(ctx context.Context, snapshot models.MonthlySnapshot) error {
	if _, err := r.client.collection(snapshotsCollection).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("insert monthly snapshot: %w", err)
	}
	return nil
}
