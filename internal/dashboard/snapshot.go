package dashboard

import (
	"time"

	"github.com/Pakayi/pos-kasir/internal/domain"
)

// WeekdayLabelFunc renders the chart label for one calendar day. Injected so
// the aggregation math stays locale-agnostic.
type WeekdayLabelFunc func(time.Time) string

var weekdayID = [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

// IndonesianWeekday is the id-ID short weekday name, matching the labels the
// store app shows on its sales chart.
func IndonesianWeekday(t time.Time) string {
	return weekdayID[int(t.Weekday())]
}

type MethodTotals struct {
	Cash int64 `json:"cash"`
	QRIS int64 `json:"qris"`
	Debt int64 `json:"debt"`
}

type SeriesPoint struct {
	Label string `json:"label"`
	Sales int64  `json:"sales"`
}

// Snapshot is the full set of dashboard metrics, recomputed wholesale on
// every refresh. It is a plain value with no identity of its own.
type Snapshot struct {
	TodaySales        int64         `json:"today_sales"`
	MonthSales        int64         `json:"month_sales"`
	TotalTransactions int           `json:"total_transactions"`
	LowStockCount     int           `json:"low_stock_count"`
	TodayMethods      MethodTotals  `json:"today_methods"`
	SevenDays         []SeriesPoint `json:"seven_days"`
}

// ComputeSnapshot aggregates the full transaction log and current inventory
// into dashboard metrics. Pure: identical inputs yield identical snapshots.
//
// Calendar boundaries use now's location. The today and month windows are
// left-closed with no upper bound, so a future-dated transaction still
// counts; the seven-day series uses half-open 24h windows per day.
func ComputeSnapshot(now time.Time, txs []domain.Transaction, products []domain.Product, label WeekdayLabelFunc) Snapshot {
	if label == nil {
		label = IndonesianWeekday
	}

	startOfDay := midnight(now)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	snap := Snapshot{TotalTransactions: len(txs)}
	for _, tx := range txs {
		if tx.Timestamp.Before(startOfMonth) {
			continue
		}
		snap.MonthSales += tx.TotalAmount
		if tx.Timestamp.Before(startOfDay) {
			continue
		}
		snap.TodaySales += tx.TotalAmount
		switch tx.PaymentMethod {
		case domain.PaymentCash:
			snap.TodayMethods.Cash += tx.TotalAmount
		case domain.PaymentQRIS:
			snap.TodayMethods.QRIS += tx.TotalAmount
		case domain.PaymentDebt:
			snap.TodayMethods.Debt += tx.TotalAmount
		}
		// Unknown methods are an upstream contract violation; they stay in
		// the day total but land in no bucket.
	}

	for _, p := range products {
		if p.LowStock() {
			snap.LowStockCount++
		}
	}

	snap.SevenDays = make([]SeriesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := midnight(day)
		dayEnd := dayStart.Add(24 * time.Hour)

		var sum int64
		for _, tx := range txs {
			if !tx.Timestamp.Before(dayStart) && tx.Timestamp.Before(dayEnd) {
				sum += tx.TotalAmount
			}
		}
		snap.SevenDays = append(snap.SevenDays, SeriesPoint{Label: label(day), Sales: sum})
	}

	return snap
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
