// Package inventory owns record creation and the stock side effects that go
// with it: purchases replenish product stock and refresh the average price,
// treatments consume stock. The analytics layer never sees any of this; it
// only reads the resulting snapshots.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	"github.com/Diaealaoui/agrimanager-sub000/internal/repository/mongodb"
)

// ErrInvalidInput indicates a record failed boundary validation.
var ErrInvalidInput = errors.New("invalid input")

// Service implements inventory CRUD with stock bookkeeping.
type Service struct {
	purchases  mongodb.PurchaseRepository
	products   mongodb.ProductRepository
	treatments mongodb.TreatmentRepository
	parcels    mongodb.ParcelRepository
	suppliers  mongodb.SupplierRepository
	logger     *zap.Logger
}

// NewService wires an inventory service instance.
func NewService(purchases mongodb.PurchaseRepository, products mongodb.ProductRepository, treatments mongodb.TreatmentRepository, parcels mongodb.ParcelRepository, suppliers mongodb.SupplierRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		purchases:  purchases,
		products:   products,
		treatments: treatments,
		parcels:    parcels,
		suppliers:  suppliers,
		logger:     logger,
	}
}

// RecordPurchase validates and stores a purchase, then replenishes the
// matching product's stock and average price. A purchase for an unknown
// product is still stored; the stock side effect is simply skipped.
func (s *Service) RecordPurchase(ctx context.Context, record models.PurchaseRecord) (models.PurchaseRecord, error) {
	switch {
	case record.ProductName == "":
		return models.PurchaseRecord{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	case record.QuantityReceived < 0:
		return models.PurchaseRecord{}, fmt.Errorf("%w: quantity received must not be negative", ErrInvalidInput)
	case record.TotalAmountInclTax < 0:
		return models.PurchaseRecord{}, fmt.Errorf("%w: total amount must not be negative", ErrInvalidInput)
	}

	saved, err := s.purchases.Insert(ctx, record)
	if err != nil {
		return models.PurchaseRecord{}, err
	}

	if err := s.replenishStock(ctx, saved); err != nil {
		// The purchase itself is stored; stock drift is logged, not fatal.
		s.logger.Warn("stock update after purchase failed",
			zap.String("product", saved.ProductName), zap.Error(err))
	}

	return saved, nil
}

// RecordTreatment validates and stores a treatment, then consumes the
// product's stock, floored at zero.
func (s *Service) RecordTreatment(ctx context.Context, record models.TreatmentRecord) (models.TreatmentRecord, error) {
	switch {
	case record.ParcelName == "":
		return models.TreatmentRecord{}, fmt.Errorf("%w: parcel name is required", ErrInvalidInput)
	case record.ProductName == "":
		return models.TreatmentRecord{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	case record.QuantityUsed < 0:
		return models.TreatmentRecord{}, fmt.Errorf("%w: quantity used must not be negative", ErrInvalidInput)
	}

	saved, err := s.treatments.Insert(ctx, record)
	if err != nil {
		return models.TreatmentRecord{}, err
	}

	if err := s.consumeStock(ctx, saved); err != nil {
		s.logger.Warn("stock update after treatment failed",
			zap.String("product", saved.ProductName), zap.Error(err))
	}

	return saved, nil
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, record models.ProductRecord) (models.ProductRecord, error) {
	switch {
	case record.Name == "":
		return models.ProductRecord{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case record.CurrentStock < 0:
		return models.ProductRecord{}, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	case record.AveragePrice < 0:
		return models.ProductRecord{}, fmt.Errorf("%w: average price must not be negative", ErrInvalidInput)
	}
	return s.products.Insert(ctx, record)
}

// UpdateProduct replaces an existing product.
func (s *Service) UpdateProduct(ctx context.Context, record models.ProductRecord) error {
	if record.ID.IsZero() {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if record.CurrentStock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return s.products.Update(ctx, record)
}

// CreateParcel validates and stores a new parcel. Surface must be strictly
// positive once created.
func (s *Service) CreateParcel(ctx context.Context, record models.ParcelRecord) (models.ParcelRecord, error) {
	switch {
	case record.Name == "":
		return models.ParcelRecord{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case record.SurfaceHectares <= 0:
		return models.ParcelRecord{}, fmt.Errorf("%w: surface must be strictly positive", ErrInvalidInput)
	}
	return s.parcels.Insert(ctx, record)
}

// UpdateParcel replaces an existing parcel with the same surface constraint.
func (s *Service) UpdateParcel(ctx context.Context, record models.ParcelRecord) error {
	if record.ID.IsZero() {
		return fmt.Errorf("%w: parcel id is required", ErrInvalidInput)
	}
	if record.SurfaceHectares <= 0 {
		return fmt.Errorf("%w: surface must be strictly positive", ErrInvalidInput)
	}
	return s.parcels.Update(ctx, record)
}

// CreateSupplier validates and stores a new supplier.
func (s *Service) CreateSupplier(ctx context.Context, record models.SupplierRecord) (models.SupplierRecord, error) {
	if record.Name == "" {
		return models.SupplierRecord{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.suppliers.Insert(ctx, record)
}

// ListProducts returns the product snapshot.
func (s *Service) ListProducts(ctx context.Context) ([]models.ProductRecord, error) {
	return s.products.List(ctx)
}

// ListPurchases returns purchases, optionally scoped to one calendar year.
func (s *Service) ListPurchases(ctx context.Context, year int) ([]models.PurchaseRecord, error) {
	if year > 0 {
		return s.purchases.ListByYear(ctx, year)
	}
	return s.purchases.List(ctx)
}

// ListTreatments returns treatments, optionally scoped to one calendar year.
func (s *Service) ListTreatments(ctx context.Context, year int) ([]models.TreatmentRecord, error) {
	if year > 0 {
		return s.treatments.ListByYear(ctx, year)
	}
	return s.treatments.List(ctx)
}

// ListParcels returns the parcel snapshot.
func (s *Service) ListParcels(ctx context.Context) ([]models.ParcelRecord, error) {
	return s.parcels.List(ctx)
}

// ListSuppliers returns the supplier snapshot.
func (s *Service) ListSuppliers(ctx context.Context) ([]models.SupplierRecord, error) {
	return s.suppliers.List(ctx)
}

// DeletePurchase removes a purchase. Stock is deliberately not reversed:
// records describe snapshots, not a double-entry ledger.
func (s *Service) DeletePurchase(ctx context.Context, id primitive.ObjectID) error {
	return s.purchases.Delete(ctx, id)
}

// DeleteTreatment removes a treatment without reversing stock.
func (s *Service) DeleteTreatment(ctx context.Context, id primitive.ObjectID) error {
	return s.treatments.Delete(ctx, id)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.products.Delete(ctx, id)
}

// DeleteParcel removes a parcel.
func (s *Service) DeleteParcel(ctx context.Context, id primitive.ObjectID) error {
	return s.parcels.Delete(ctx, id)
}

// DeleteSupplier removes a supplier.
func (s *Service) DeleteSupplier(ctx context.Context, id primitive.ObjectID) error {
	return s.suppliers.Delete(ctx, id)
}

func (s *Service) replenishStock(ctx context.Context, purchase models.PurchaseRecord) error {
	product, err := s.products.FindByName(ctx, purchase.ProductName)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			s.logger.Debug("purchase for unknown product, stock untouched",
				zap.String("product", purchase.ProductName))
			return nil
		}
		return err
	}

	newStock := product.CurrentStock + purchase.QuantityReceived
	if newStock > 0 && purchase.QuantityReceived > 0 {
		weighted := product.CurrentStock*product.AveragePrice + purchase.QuantityReceived*purchase.UnitPriceInclTax
		product.AveragePrice = weighted / newStock
	}
	product.CurrentStock = newStock

	return s.products.Update(ctx, product)
}

func (s *Service) consumeStock(ctx context.Context, treatment models.TreatmentRecord) error {
	product, err := s.products.FindByName(ctx, treatment.ProductName)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			s.logger.Debug("treatment with unknown product, stock untouched",
				zap.String("product", treatment.ProductName))
			return nil
		}
		return err
	}

	product.CurrentStock -= treatment.QuantityUsed
	if product.CurrentStock < 0 {
		product.CurrentStock = 0
	}

	return s.products.Update(ctx, product)
}
