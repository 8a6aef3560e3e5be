// Package analytics derives dashboard summaries from raw record snapshots.
//
// Every function here is pure and synchronous: no I/O, no shared state, no
// mutation of inputs. Malformed individual records are tolerated (excluded or
// defaulted, never an error); values that would require dividing by zero are
// reported as nil pointers rather than 0, NaN or Inf.
package analytics

import (
	"fmt"
	"time"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
)

const monthsPerYear = 12

// MonthlyBucket is one calendar-month slot of the spend time series. Buckets
// exist for all 12 months of the requested year even without activity.
type MonthlyBucket struct {
	MonthKey        string   `json:"month"`
	TotalAmount     float64  `json:"total_amount"`
	OrderCount      int      `json:"order_count"`
	PriorYearAmount *float64 `json:"prior_year_amount,omitempty"`
}

// MonthlySeries is the dense January-to-December spend series for one year.
// GrowthPercent is nil unless the prior-year snapshot was supplied and its
// total is strictly positive.
type MonthlySeries struct {
	Year          int             `json:"year"`
	Buckets       []MonthlyBucket `json:"buckets"`
	TotalAmount   float64         `json:"total_amount"`
	OrderCount    int             `json:"order_count"`
	GrowthPercent *float64        `json:"growth_percent,omitempty"`
}

// BuildMonthlySeries buckets purchases into exactly 12 monthly slots for the
// given year. Records with a zero date or a date outside the year are
// excluded rather than mis-bucketed. Pass prior as nil to skip the
// prior-year comparison entirely; an empty non-nil slice fills the
// comparison with zeroes but still leaves GrowthPercent undefined.
func BuildMonthlySeries(records []models.PurchaseRecord, year int, prior []models.PurchaseRecord) MonthlySeries {
	series := MonthlySeries{
		Year:    year,
		Buckets: make([]MonthlyBucket, monthsPerYear),
	}

	for i := range series.Buckets {
		series.Buckets[i].MonthKey = fmt.Sprintf("%04d-%02d", year, i+1)
	}

	for _, r := range records {
		idx, ok := monthIndex(r.OrderDate, year)
		if !ok {
			continue
		}
		series.Buckets[idx].TotalAmount += r.TotalAmountInclTax
		series.Buckets[idx].OrderCount++
		series.TotalAmount += r.TotalAmountInclTax
		series.OrderCount++
	}

	if prior == nil {
		return series
	}

	priorByMonth := make([]float64, monthsPerYear)
	var priorTotal float64
	for _, r := range prior {
		idx, ok := monthIndex(r.OrderDate, year-1)
		if !ok {
			continue
		}
		priorByMonth[idx] += r.TotalAmountInclTax
		priorTotal += r.TotalAmountInclTax
	}

	for i := range series.Buckets {
		amount := priorByMonth[i]
		series.Buckets[i].PriorYearAmount = &amount
	}

	if priorTotal > 0 {
		growth := (series.TotalAmount - priorTotal) / priorTotal * 100
		series.GrowthPercent = &growth
	}

	return series
}

func monthIndex(date time.Time, year int) (int, bool) {
	if date.IsZero() || date.Year() != year {
		return 0, false
	}
	return int(date.Month()) - 1, true
}
