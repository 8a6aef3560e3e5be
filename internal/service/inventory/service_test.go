package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	"github.com/Diaealaoui/agrimanager-sub000/internal/repository/mongodb"
)

type fakePurchaseRepo struct {
	inserted []models.PurchaseRecord
}

func (f *fakePurchaseRepo) Insert(ctx context.Context, r models.PurchaseRecord) (models.PurchaseRecord, error) {
	r.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, r)
	return r, nil
}

func (f *fakePurchaseRepo) InsertMany(ctx context.Context, rs []models.PurchaseRecord) (int, error) {
	f.inserted = append(f.inserted, rs...)
	return len(rs), nil
}

func (f *fakePurchaseRepo) List(ctx context.Context) ([]models.PurchaseRecord, error) {
	return f.inserted, nil
}

func (f *fakePurchaseRepo) ListByYear(ctx context.Context, year int) ([]models.PurchaseRecord, error) {
	return f.inserted, nil
}

func (f *fakePurchaseRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type fakeProductRepo struct {
	byName  map[string]models.ProductRecord
	updated []models.ProductRecord
}

func (f *fakeProductRepo) Insert(ctx context.Context, r models.ProductRecord) (models.ProductRecord, error) {
	r.ID = primitive.NewObjectID()
	return r, nil
}

func (f *fakeProductRepo) List(ctx context.Context) ([]models.ProductRecord, error) { return nil, nil }

func (f *fakeProductRepo) FindByName(ctx context.Context, name string) (models.ProductRecord, error) {
	if p, ok := f.byName[name]; ok {
		return p, nil
	}
	return models.ProductRecord{}, mongodb.ErrNotFound
}

func (f *fakeProductRepo) Update(ctx context.Context, r models.ProductRecord) error {
	f.updated = append(f.updated, r)
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type fakeTreatmentRepo struct {
	inserted []models.TreatmentRecord
}

func (f *fakeTreatmentRepo) Insert(ctx context.Context, r models.TreatmentRecord) (models.TreatmentRecord, error) {
	r.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, r)
	return r, nil
}

func (f *fakeTreatmentRepo) List(ctx context.Context) ([]models.TreatmentRecord, error) {
	return f.inserted, nil
}

func (f *fakeTreatmentRepo) ListByYear(ctx context.Context, year int) ([]models.TreatmentRecord, error) {
	return f.inserted, nil
}

func (f *fakeTreatmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type fakeParcelRepo struct{}

func (f *fakeParcelRepo) Insert(ctx context.Context, r models.ParcelRecord) (models.ParcelRecord, error) {
	r.ID = primitive.NewObjectID()
	return r, nil
}

func (f *fakeParcelRepo) List(ctx context.Context) ([]models.ParcelRecord, error) { return nil, nil }

func (f *fakeParcelRepo) Update(ctx context.Context, r models.ParcelRecord) error { return nil }

func (f *fakeParcelRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type fakeSupplierRepo struct{}

func (f *fakeSupplierRepo) Insert(ctx context.Context, r models.SupplierRecord) (models.SupplierRecord, error) {
	r.ID = primitive.NewObjectID()
	return r, nil
}

func (f *fakeSupplierRepo) List(ctx context.Context) ([]models.SupplierRecord, error) {
	return nil, nil
}

func (f *fakeSupplierRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func newTestService(products *fakeProductRepo) (*Service, *fakePurchaseRepo, *fakeTreatmentRepo) {
	purchases := &fakePurchaseRepo{}
	treatments := &fakeTreatmentRepo{}
	svc := NewService(purchases, products, treatments, &fakeParcelRepo{}, &fakeSupplierRepo{}, nil)
	return svc, purchases, treatments
}

func TestRecordPurchaseReplenishesStock(t *testing.T) {
	products := &fakeProductRepo{byName: map[string]models.ProductRecord{
		"Cuivrol": {Name: "Cuivrol", CurrentStock: 10, AveragePrice: 8},
	}}
	svc, purchases, _ := newTestService(products)

	_, err := svc.RecordPurchase(context.Background(), models.PurchaseRecord{
		OrderDate:          time.Now(),
		ProductName:        "Cuivrol",
		QuantityReceived:   10,
		UnitPriceInclTax:   12,
		TotalAmountInclTax: 120,
	})
	require.NoError(t, err)

	require.Len(t, purchases.inserted, 1)
	require.Len(t, products.updated, 1)
	assert.Equal(t, 20.0, products.updated[0].CurrentStock)
	// Weighted average of 10 units at 8 and 10 units at 12.
	assert.InDelta(t, 10.0, products.updated[0].AveragePrice, 1e-9)
}

func TestRecordPurchaseUnknownProductStillStored(t *testing.T) {
	products := &fakeProductRepo{byName: map[string]models.ProductRecord{}}
	svc, purchases, _ := newTestService(products)

	_, err := svc.RecordPurchase(context.Background(), models.PurchaseRecord{
		ProductName:        "Inconnu",
		QuantityReceived:   5,
		TotalAmountInclTax: 50,
	})
	require.NoError(t, err)

	assert.Len(t, purchases.inserted, 1)
	assert.Empty(t, products.updated)
}

func TestRecordPurchaseValidation(t *testing.T) {
	svc, _, _ := newTestService(&fakeProductRepo{})

	_, err := svc.RecordPurchase(context.Background(), models.PurchaseRecord{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordPurchase(context.Background(), models.PurchaseRecord{
		ProductName:      "Cuivrol",
		QuantityReceived: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordTreatmentConsumesStockFlooredAtZero(t *testing.T) {
	products := &fakeProductRepo{byName: map[string]models.ProductRecord{
		"Cuivrol": {Name: "Cuivrol", CurrentStock: 3},
	}}
	svc, _, treatments := newTestService(products)

	_, err := svc.RecordTreatment(context.Background(), models.TreatmentRecord{
		ParcelName:   "Nord",
		ProductName:  "Cuivrol",
		QuantityUsed: 5,
	})
	require.NoError(t, err)

	require.Len(t, treatments.inserted, 1)
	require.Len(t, products.updated, 1)
	assert.Zero(t, products.updated[0].CurrentStock)
}

func TestCreateParcelRejectsNonPositiveSurface(t *testing.T) {
	svc, _, _ := newTestService(&fakeProductRepo{})

	_, err := svc.CreateParcel(context.Background(), models.ParcelRecord{Name: "Nord", SurfaceHectares: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateParcel(context.Background(), models.ParcelRecord{Name: "Nord", SurfaceHectares: 2.5})
	assert.NoError(t, err)
}
