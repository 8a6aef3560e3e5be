// Package dashboard assembles dashboard and search responses. It fetches
// full record snapshots from the repositories, hands them to the analytics
// package and returns plain serializable structures. The service keeps no
// state between calls; a newer call simply supersedes an older one at the
// caller.
package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Diaealaoui/agrimanager-sub000/internal/analytics"
	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

// PurchaseSource provides purchase snapshots.
type PurchaseSource interface {
	List(ctx context.Context) ([]models.PurchaseRecord, error)
	ListByYear(ctx context.Context, year int) ([]models.PurchaseRecord, error)
}

// TreatmentSource provides treatment snapshots.
type TreatmentSource interface {
	ListByYear(ctx context.Context, year int) ([]models.TreatmentRecord, error)
}

// ParcelSource provides parcel snapshots.
type ParcelSource interface {
	List(ctx context.Context) ([]models.ParcelRecord, error)
}

// ProductSource provides product snapshots.
type ProductSource interface {
	List(ctx context.Context) ([]models.ProductRecord, error)
}

// SupplierSource provides supplier snapshots.
type SupplierSource interface {
	List(ctx context.Context) ([]models.SupplierRecord, error)
}

// Summary is the full dashboard payload for one year.
type Summary struct {
	Year           int                       `json:"year"`
	Series         analytics.MonthlySeries   `json:"series"`
	TopProducts    []analytics.RankedGroup   `json:"top_products"`
	TopSuppliers   []analytics.RankedGroup   `json:"top_suppliers"`
	TopIngredients []analytics.RankedGroup   `json:"top_ingredients"`
	Categories     []analytics.CategoryShare `json:"categories"`
	ParcelCosts    []analytics.ParcelCost    `json:"parcel_costs"`
}

// Service orchestrates fetches and aggregation for the dashboard endpoints.
type Service struct {
	purchases  PurchaseSource
	treatments TreatmentSource
	parcels    ParcelSource
	products   ProductSource
	suppliers  SupplierSource
	topN       int
	logger     *zap.Logger
}

// NewService wires a dashboard service instance.
func NewService(purchases PurchaseSource, treatments TreatmentSource, parcels ParcelSource, products ProductSource, suppliers SupplierSource, topN int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topN <= 0 {
		topN = 5
	}
	return &Service{
		purchases:  purchases,
		treatments: treatments,
		parcels:    parcels,
		products:   products,
		suppliers:  suppliers,
		topN:       topN,
		logger:     logger,
	}
}

// Summarize fetches the year's snapshot (plus the prior year for comparison)
// and derives the full dashboard. The aggregation is only invoked once every
// fetch has resolved; a failed fetch aborts the whole derivation.
func (s *Service) Summarize(ctx context.Context, year, topN int) (*Summary, error) {
	if topN <= 0 {
		topN = s.topN
	}

	var (
		current    []models.PurchaseRecord
		prior      []models.PurchaseRecord
		treatments []models.TreatmentRecord
		parcels    []models.ParcelRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = s.purchases.ListByYear(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		prior, err = s.purchases.ListByYear(gctx, year-1)
		return err
	})
	g.Go(func() (err error) {
		treatments, err = s.treatments.ListByYear(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		parcels, err = s.parcels.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch dashboard snapshot for %d: %w", year, err)
	}

	s.logger.Debug("dashboard snapshot fetched",
		zap.Int("year", year),
		zap.Int("purchases", len(current)),
		zap.Int("prior_purchases", len(prior)),
		zap.Int("treatments", len(treatments)))

	summary := &Summary{
		Year:           year,
		Series:         analytics.BuildMonthlySeries(current, year, prior),
		TopProducts:    analytics.RankTop(current, analytics.ByProduct, topN),
		TopSuppliers:   analytics.RankTop(current, analytics.BySupplier, topN),
		TopIngredients: analytics.RankTop(current, analytics.ByIngredient, topN),
		Categories:     analytics.BuildCategoryDistribution(current),
		ParcelCosts:    analytics.RollupByParcel(treatments, parcels),
	}
	return summary, nil
}

// Search runs the free-text matcher over products, suppliers and active
// ingredients. Supplier and ingredient amounts are all-time purchase rollups.
func (s *Service) Search(ctx context.Context, query string) ([]analytics.SearchResult, error) {
	var (
		products  []models.ProductRecord
		suppliers []models.SupplierRecord
		purchases []models.PurchaseRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		suppliers, err = s.suppliers.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		purchases, err = s.purchases.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch search corpora: %w", err)
	}

	return analytics.Search(query, buildCorpora(products, suppliers, purchases)), nil
}

// MixBatches groups the year's treatments into per-parcel, per-day tank mixes.
func (s *Service) MixBatches(ctx context.Context, year int) ([]analytics.MixBatch, error) {
	treatments, err := s.treatments.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("fetch treatments for %d: %w", year, err)
	}
	return analytics.GroupMixBatches(treatments), nil
}

func buildCorpora(products []models.ProductRecord, suppliers []models.SupplierRecord, purchases []models.PurchaseRecord) analytics.SearchCorpora {
	supplierTotals := make(map[string]float64)
	ingredientTotals := make(map[string]float64)
	for _, p := range purchases {
		supplierTotals[p.SupplierName] += p.TotalAmountInclTax
		ingredientTotals[p.ActiveIngredient] += p.TotalAmountInclTax
	}

	corpora := analytics.SearchCorpora{}

	for _, p := range products {
		corpora.Products = append(corpora.Products, analytics.SearchEntry{
			ID:          p.ID.Hex(),
			DisplayName: p.Name,
			DetailText:  productDetail(p),
			Amount:      p.AveragePrice,
			MatchFields: []string{p.ProductType, p.ActiveIngredient},
		})
	}

	for _, sup := range suppliers {
		corpora.Suppliers = append(corpora.Suppliers, analytics.SearchEntry{
			ID:          sup.ID.Hex(),
			DisplayName: sup.Name,
			DetailText:  sup.Phone,
			Amount:      supplierTotals[sup.Name],
		})
	}

	// The ingredient corpus is derived from products, first appearance wins.
	seen := make(map[string]bool)
	for _, p := range products {
		if p.ActiveIngredient == "" || seen[p.ActiveIngredient] {
			continue
		}
		seen[p.ActiveIngredient] = true
		corpora.Ingredients = append(corpora.Ingredients, analytics.SearchEntry{
			ID:          p.ActiveIngredient,
			DisplayName: p.ActiveIngredient,
			DetailText:  "active ingredient",
			Amount:      ingredientTotals[p.ActiveIngredient],
		})
	}

	return corpora
}

func productDetail(p models.ProductRecord) string {
	detail := p.ProductType
	if p.ActiveIngredient != "" {
		if detail != "" {
			detail += " - "
		}
		detail += p.ActiveIngredient
	}
	if detail == "" {
		detail = strconv.FormatFloat(p.CurrentStock, 'f', -1, 64) + " " + p.ReferenceUnit
	}
	return detail
}
