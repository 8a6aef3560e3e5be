package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	"github.com/Diaealaoui/agrimanager-sub000/pkg/clients/notifier"
)

type fakeProducts struct {
	records []models.ProductRecord
}

func (f *fakeProducts) List(ctx context.Context) ([]models.ProductRecord, error) {
	return f.records, nil
}

type fakePurchases struct {
	records []models.PurchaseRecord
}

func (f *fakePurchases) List(ctx context.Context) ([]models.PurchaseRecord, error) {
	return f.records, nil
}

type fakeStore struct {
	inserted []models.OrderRecord
	statuses map[primitive.ObjectID]string
}

func (f *fakeStore) Insert(ctx context.Context, r models.OrderRecord) (models.OrderRecord, error) {
	r.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, r)
	return r, nil
}

func (f *fakeStore) List(ctx context.Context) ([]models.OrderRecord, error) {
	return f.inserted, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if f.statuses == nil {
		f.statuses = make(map[primitive.ObjectID]string)
	}
	f.statuses[id] = status
	return nil
}

type fakeNotifier struct {
	sent []notifier.MessageRequest
}

func (f *fakeNotifier) SendMessage(ctx context.Context, req notifier.MessageRequest) (*notifier.MessageResponse, error) {
	f.sent = append(f.sent, req)
	return &notifier.MessageResponse{MessageID: "m-1"}, nil
}

func historicPurchase(product, supplier string, unitPrice float64, date time.Time) models.PurchaseRecord {
	return models.PurchaseRecord{
		OrderDate:        date,
		ProductName:      product,
		SupplierName:     supplier,
		UnitPriceInclTax: unitPrice,
	}
}

func TestGenerateGroupsLinesBySupplier(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	products := &fakeProducts{records: []models.ProductRecord{
		{ID: primitive.NewObjectID(), Name: "Cuivrol", CurrentStock: 2, ReorderThreshold: 5},
		{ID: primitive.NewObjectID(), Name: "Soufre", CurrentStock: 0, ReorderThreshold: 3},
		{ID: primitive.NewObjectID(), Name: "Plein", CurrentStock: 50, ReorderThreshold: 5},
	}}
	purchases := &fakePurchases{records: []models.PurchaseRecord{
		historicPurchase("Cuivrol", "Agrivert", 9, old),
		historicPurchase("Cuivrol", "Phytosem", 11, recent),
		historicPurchase("Soufre", "Phytosem", 4, recent),
	}}
	store := &fakeStore{}
	notify := &fakeNotifier{}

	svc := NewService(products, purchases, store, notify, nil)

	generated, err := svc.Generate(context.Background())
	require.NoError(t, err)

	// Both low-stock products route to Phytosem, the most recent supplier.
	require.Len(t, generated, 1)
	order := generated[0]
	assert.Equal(t, "Phytosem", order.SupplierName)
	assert.Equal(t, models.OrderStatusDraft, order.Status)
	assert.NotEmpty(t, order.Reference)
	require.Len(t, order.Lines, 2)

	// Cuivrol restocks to 2x threshold: 5*2 - 2 = 8 units at the latest price.
	assert.Equal(t, 8.0, order.Lines[0].Quantity)
	assert.Equal(t, 11.0, order.Lines[0].UnitPrice)
	assert.Equal(t, 88.0, order.Lines[0].LineTotal)
	assert.Equal(t, 6.0, order.Lines[1].Quantity)
	assert.InDelta(t, 88.0+24.0, order.TotalAmount, 1e-9)

	require.Len(t, notify.sent, 1)
	assert.Contains(t, notify.sent[0].Text, order.Reference)
}

func TestGenerateFallsBackToUnassignedSupplier(t *testing.T) {
	products := &fakeProducts{records: []models.ProductRecord{
		{ID: primitive.NewObjectID(), Name: "Nouveau", CurrentStock: 1, ReorderThreshold: 4, AveragePrice: 7},
	}}
	store := &fakeStore{}

	svc := NewService(products, &fakePurchases{}, store, nil, nil)

	generated, err := svc.Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, generated, 1)
	assert.Equal(t, UnassignedSupplier, generated[0].SupplierName)
	require.Len(t, generated[0].Lines, 1)
	assert.Equal(t, 7.0, generated[0].Lines[0].UnitPrice)
}

func TestGenerateNoLowStock(t *testing.T) {
	products := &fakeProducts{records: []models.ProductRecord{
		{Name: "Plein", CurrentStock: 50, ReorderThreshold: 5},
		{Name: "SansSeuil", CurrentStock: 0},
	}}
	store := &fakeStore{}

	svc := NewService(products, &fakePurchases{}, store, nil, nil)

	generated, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, generated)
	assert.Empty(t, store.inserted)
}

func TestMarkSent(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(&fakeProducts{}, &fakePurchases{}, store, nil, nil)

	id := primitive.NewObjectID()
	require.NoError(t, svc.MarkSent(context.Background(), id))
	assert.Equal(t, models.OrderStatusSent, store.statuses[id])
}
