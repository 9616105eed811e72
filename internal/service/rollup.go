package service

import (
	"time"

	"github.com/shopspring/decimal"

	"go-inventory-api/internal/apperr"
	"go-inventory-api/internal/model"
)

// ReportingClock fixes the timezone every daily rollup buckets against.
// Rollups never use the server's ambient local time.
type ReportingClock struct {
	Location *time.Location
}

func NewReportingClock(loc *time.Location) *ReportingClock {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportingClock{Location: loc}
}

// MonthBounds returns the [start, end) instants of the month in the
// reporting timezone.
func (c *ReportingClock) MonthBounds(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, apperr.Validation("month", "between 1 and 12")
	}
	if year < 1 {
		return time.Time{}, time.Time{}, apperr.Validation("year", "positive")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, c.Location)
	return start, start.AddDate(0, 1, 0), nil
}

// DayBucket is one calendar day of a monthly rollup.
type DayBucket struct {
	Day      int             `json:"day"`
	Count    int             `json:"count"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// DailyRollup folds transactions into per-day buckets for every calendar day
// of the month, zero-filled for days without activity. A transaction lands in
// the bucket its CreatedAt falls on in the reporting timezone; transactions
// outside the month are ignored.
func (c *ReportingClock) DailyRollup(transactions []model.Transaction, month, year int) ([]DayBucket, error) {
	if _, _, err := c.MonthBounds(month, year); err != nil {
		return nil, err
	}

	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, c.Location).Day()

	buckets := make([]DayBucket, daysInMonth)
	for i := range buckets {
		buckets[i] = DayBucket{Day: i + 1, Amount: decimal.Zero}
	}

	for i := range transactions {
		t := transactions[i].CreatedAt.In(c.Location)
		if t.Year() != year || t.Month() != time.Month(month) {
			continue
		}
		b := &buckets[t.Day()-1]
		b.Count++
		b.Quantity += transactions[i].TotalProducts
		b.Amount = b.Amount.Add(transactions[i].TotalPrice)
	}
	return buckets, nil
}
