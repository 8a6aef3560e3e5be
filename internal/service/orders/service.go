// Package orders turns low-stock products into draft purchase orders, one
// per supplier, and pushes them to the configured notifier.
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	"github.com/Diaealaoui/agrimanager-sub000/pkg/clients/notifier"
)

// UnassignedSupplier groups order lines for products without purchase history.
const UnassignedSupplier = "unassigned"

// ProductSource provides the product snapshot.
type ProductSource interface {
	List(ctx context.Context) ([]models.ProductRecord, error)
}

// PurchaseSource provides purchase history for supplier and price lookups.
type PurchaseSource interface {
	List(ctx context.Context) ([]models.PurchaseRecord, error)
}

// OrderStore persists generated orders.
type OrderStore interface {
	Insert(ctx context.Context, record models.OrderRecord) (models.OrderRecord, error)
	List(ctx context.Context) ([]models.OrderRecord, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// Service implements order generation and lifecycle.
type Service struct {
	products  ProductSource
	purchases PurchaseSource
	store     OrderStore
	notifier  notifier.Client
	logger    *zap.Logger
}

// NewService wires an order service. The notifier may be nil when outbound
// notifications are not configured.
func NewService(products ProductSource, purchases PurchaseSource, store OrderStore, notifierClient notifier.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products:  products,
		purchases: purchases,
		store:     store,
		notifier:  notifierClient,
		logger:    logger,
	}
}

// Generate builds one draft order per supplier from every product at or
// below its reorder threshold. The supplier and unit price come from the
// product's most recent purchase; products never purchased fall back to
// their average price under the "unassigned" supplier. Products without a
// configured threshold are ignored.
func (s *Service) Generate(ctx context.Context) ([]models.OrderRecord, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	low := make([]models.ProductRecord, 0)
	for _, p := range products {
		if p.ReorderThreshold > 0 && p.CurrentStock <= p.ReorderThreshold {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return []models.OrderRecord{}, nil
	}

	purchases, err := s.purchases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase history: %w", err)
	}
	latest := latestPurchaseByProduct(purchases)

	lines := make(map[string][]models.OrderLine)
	supplierOrder := make([]string, 0)

	for _, p := range low {
		supplier := UnassignedSupplier
		unitPrice := p.AveragePrice
		if last, ok := latest[p.Name]; ok {
			if last.SupplierName != "" {
				supplier = last.SupplierName
			}
			if last.UnitPriceInclTax > 0 {
				unitPrice = last.UnitPriceInclTax
			}
		}

		quantity := reorderQuantity(p)
		if _, seen := lines[supplier]; !seen {
			supplierOrder = append(supplierOrder, supplier)
		}
		lines[supplier] = append(lines[supplier], models.OrderLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			LineTotal:   quantity * unitPrice,
		})
	}

	generated := make([]models.OrderRecord, 0, len(supplierOrder))
	for _, supplier := range supplierOrder {
		order := models.OrderRecord{
			Reference:    uuid.NewString(),
			SupplierName: supplier,
			Status:       models.OrderStatusDraft,
			Lines:        lines[supplier],
		}
		for _, line := range order.Lines {
			order.TotalAmount += line.LineTotal
		}

		saved, err := s.store.Insert(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("store order for %s: %w", supplier, err)
		}
		generated = append(generated, saved)

		s.notify(ctx, saved)
	}

	s.logger.Info("orders generated",
		zap.Int("orders", len(generated)),
		zap.Int("low_stock_products", len(low)))
	return generated, nil
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]models.OrderRecord, error) {
	return s.store.List(ctx)
}

// MarkSent transitions an order from draft to sent.
func (s *Service) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	return s.store.UpdateStatus(ctx, id, models.OrderStatusSent)
}

func (s *Service) notify(ctx context.Context, order models.OrderRecord) {
	if s.notifier == nil {
		return
	}

	text := fmt.Sprintf("Draft order %s for %s: %d lines, total %.2f.",
		order.Reference, order.SupplierName, len(order.Lines), order.TotalAmount)
	if _, err := s.notifier.SendMessage(ctx, notifier.MessageRequest{
		Title: "Purchase order generated",
		Text:  text,
	}); err != nil {
		s.logger.Warn("order notification failed", zap.String("reference", order.Reference), zap.Error(err))
	}
}

// reorderQuantity restocks to twice the threshold, with a floor of one unit.
func reorderQuantity(p models.ProductRecord) float64 {
	quantity := p.ReorderThreshold*2 - p.CurrentStock
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}

func latestPurchaseByProduct(purchases []models.PurchaseRecord) map[string]models.PurchaseRecord {
	latest := make(map[string]models.PurchaseRecord)
	for _, p := range purchases {
		current, seen := latest[p.ProductName]
		if !seen || p.OrderDate.After(current.OrderDate) {
			latest[p.ProductName] = p
		}
	}
	return latest
}
