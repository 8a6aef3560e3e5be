// Package importer bulk-loads purchase records from the farm's legacy
// spreadsheet. Rows are parsed defensively: anything without a usable date,
// product and amount is skipped and counted, never fatal.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	repo "github.com/Diaealaoui/agrimanager-sub000/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

// Expected column layout of the purchase sheet:
// date, product, type, active ingredient, supplier, quantity, unit,
// unit price excl tax, tax rate %, unit price incl tax, total incl tax.
const (
	colDate = iota
	colProduct
	colType
	colIngredient
	colSupplier
	colQuantity
	colUnit
	colPriceExcl
	colTaxRate
	colPriceIncl
	colTotal
	columnCount
)

// PurchaseSink receives the parsed records.
type PurchaseSink interface {
	InsertMany(ctx context.Context, records []models.PurchaseRecord) (int, error)
}

// Result summarizes one import run.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Service reads spreadsheet rows and turns them into purchase records.
type Service struct {
	sheets repo.Repository
	sink   PurchaseSink
	logger *zap.Logger
}

// NewService wires an importer instance.
func NewService(sheets repo.Repository, sink PurchaseSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sheets: sheets, sink: sink, logger: logger}
}

// ImportPurchases reads the given range and inserts every parseable row.
// Header rows and malformed rows are skipped and reported in the result.
func (s *Service) ImportPurchases(ctx context.Context, sheetRange string) (Result, error) {
	rows, err := s.sheets.ReadRange(ctx, sheetRange)
	if err != nil {
		return Result{}, fmt.Errorf("load purchase range: %w", err)
	}

	records := make([]models.PurchaseRecord, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		record, err := parseRow(row)
		if err != nil {
			skipped++
			s.logger.Debug("skip purchase row", zap.Int("row", i), zap.Error(err))
			continue
		}
		records = append(records, record)
	}

	inserted, err := s.sink.InsertMany(ctx, records)
	if err != nil {
		return Result{}, fmt.Errorf("store imported purchases: %w", err)
	}

	s.logger.Info("purchase import finished",
		zap.String("range", sheetRange),
		zap.Int("imported", inserted),
		zap.Int("skipped", skipped))
	return Result{Imported: inserted, Skipped: skipped}, nil
}

func parseRow(row []interface{}) (models.PurchaseRecord, error) {
	if len(row) < colQuantity+1 {
		return models.PurchaseRecord{}, fmt.Errorf("row too short: %d cells", len(row))
	}

	date, err := parseDate(cell(row, colDate))
	if err != nil {
		return models.PurchaseRecord{}, err
	}

	product := strings.TrimSpace(fmt.Sprint(cell(row, colProduct)))
	if product == "" {
		return models.PurchaseRecord{}, fmt.Errorf("empty product name")
	}

	quantity, err := parseFloat(cell(row, colQuantity))
	if err != nil {
		return models.PurchaseRecord{}, fmt.Errorf("quantity: %w", err)
	}

	record := models.PurchaseRecord{
		OrderDate:        date,
		ProductName:      product,
		ProductType:      strings.TrimSpace(fmt.Sprint(cell(row, colType))),
		ActiveIngredient: strings.TrimSpace(fmt.Sprint(cell(row, colIngredient))),
		SupplierName:     strings.TrimSpace(fmt.Sprint(cell(row, colSupplier))),
		QuantityReceived: quantity,
		UnitOfPurchase:   strings.TrimSpace(fmt.Sprint(cell(row, colUnit))),
	}

	// Numeric tail columns default to zero when absent or unparseable.
	record.UnitPriceExclTax, _ = parseFloat(cell(row, colPriceExcl))
	record.TaxRatePercent, _ = parseFloat(cell(row, colTaxRate))
	record.UnitPriceInclTax, _ = parseFloat(cell(row, colPriceIncl))

	total, err := parseFloat(cell(row, colTotal))
	if err != nil {
		// Legacy sheets sometimes omit the total column; derive it once here
		// at the boundary so downstream consumers can treat it as stored.
		total = quantity * record.UnitPriceInclTax
	}
	record.TotalAmountInclTax = total

	return record, nil
}

func cell(row []interface{}, idx int) interface{} {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseDate(value interface{}) (time.Time, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	// Legacy sheets use a decimal comma.
	str = strings.ReplaceAll(str, ",", ".")
	return strconv.ParseFloat(str, 64)
}
