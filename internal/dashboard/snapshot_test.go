package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pakayi/pos-kasir/internal/domain"
)

func tx(ts time.Time, amount int64, method domain.PaymentMethod) domain.Transaction {
	return domain.Transaction{ID: "tx", Timestamp: ts, TotalAmount: amount, PaymentMethod: method}
}

func fixedLabel(t time.Time) string {
	return t.Format("Mon")
}

func TestComputeSnapshot_windows(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, loc)

	txs := []domain.Transaction{
		tx(time.Date(2024, time.June, 15, 8, 0, 0, 0, loc), 50000, domain.PaymentCash),
		tx(time.Date(2024, time.June, 14, 8, 0, 0, 0, loc), 30000, domain.PaymentQRIS),
		tx(time.Date(2024, time.May, 1, 8, 0, 0, 0, loc), 10000, domain.PaymentDebt),
	}

	snap := ComputeSnapshot(now, txs, nil, fixedLabel)

	assert.Equal(t, int64(50000), snap.TodaySales)
	assert.Equal(t, int64(80000), snap.MonthSales)
	assert.Equal(t, 3, snap.TotalTransactions)
	assert.Equal(t, MethodTotals{Cash: 50000, QRIS: 0, Debt: 0}, snap.TodayMethods)
}

func TestComputeSnapshot_futureTimestampIncluded(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	later := now.Add(2 * time.Hour)

	snap := ComputeSnapshot(now, []domain.Transaction{tx(later, 7000, domain.PaymentCash)}, nil, fixedLabel)

	assert.Equal(t, int64(7000), snap.TodaySales)
	assert.Equal(t, int64(7000), snap.MonthSales)
	assert.Equal(t, int64(7000), snap.SevenDays[6].Sales)
}

func TestComputeSnapshot_midnightBoundary(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, loc)
	midnight := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	txs := []domain.Transaction{
		tx(midnight, 100, domain.PaymentCash),
		tx(midnight.Add(-time.Millisecond), 200, domain.PaymentCash),
	}

	snap := ComputeSnapshot(now, txs, nil, fixedLabel)

	assert.Equal(t, int64(100), snap.TodaySales, "midnight itself belongs to today")
	assert.Equal(t, int64(300), snap.MonthSales)
}

func TestComputeSnapshot_sevenDaySeries(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, loc)

	txs := []domain.Transaction{
		tx(time.Date(2024, time.June, 15, 9, 0, 0, 0, loc), 1000, domain.PaymentCash),
		tx(time.Date(2024, time.June, 13, 23, 59, 0, 0, loc), 2000, domain.PaymentQRIS),
		tx(time.Date(2024, time.June, 9, 0, 0, 0, 0, loc), 4000, domain.PaymentCash),
		// Eight days back, outside the rolling window.
		tx(time.Date(2024, time.June, 7, 12, 0, 0, 0, loc), 8000, domain.PaymentCash),
	}

	snap := ComputeSnapshot(now, txs, nil, fixedLabel)

	require.Len(t, snap.SevenDays, 7)
	assert.Equal(t, "Sun", snap.SevenDays[0].Label, "oldest day first")
	assert.Equal(t, "Sat", snap.SevenDays[6].Label, "today last")

	sales := make([]int64, 0, 7)
	for _, p := range snap.SevenDays {
		sales = append(sales, p.Sales)
	}
	assert.Equal(t, []int64{4000, 0, 0, 0, 2000, 0, 1000}, sales)
}

func TestComputeSnapshot_seriesAlwaysSevenEntries(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	for _, txs := range [][]domain.Transaction{nil, {}, {tx(now, 500, domain.PaymentCash)}} {
		snap := ComputeSnapshot(now, txs, nil, fixedLabel)
		require.Len(t, snap.SevenDays, 7)
	}

	empty := ComputeSnapshot(now, nil, nil, fixedLabel)
	for i, p := range empty.SevenDays {
		assert.Zerof(t, p.Sales, "day %d of empty log", i)
	}
}

func TestComputeSnapshot_conservation(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 15, 23, 0, 0, 0, loc)

	txs := []domain.Transaction{
		tx(now.Add(-1*time.Hour), 11000, domain.PaymentCash),
		tx(now.Add(-2*time.Hour), 23000, domain.PaymentQRIS),
		tx(now.Add(-3*time.Hour), 5000, domain.PaymentDebt),
		tx(now.Add(-4*time.Hour), 9000, domain.PaymentCash),
	}

	snap := ComputeSnapshot(now, txs, nil, fixedLabel)

	assert.Equal(t, snap.TodaySales, snap.TodayMethods.Cash+snap.TodayMethods.QRIS+snap.TodayMethods.Debt)
	assert.GreaterOrEqual(t, snap.MonthSales, snap.TodaySales)
}

func TestComputeSnapshot_unknownMethodDropsFromBuckets(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	snap := ComputeSnapshot(now, []domain.Transaction{
		tx(now.Add(-time.Hour), 4000, domain.PaymentCash),
		tx(now.Add(-time.Hour), 6000, domain.PaymentMethod("voucher")),
	}, nil, fixedLabel)

	assert.Equal(t, int64(10000), snap.TodaySales, "day total keeps every transaction")
	assert.Equal(t, MethodTotals{Cash: 4000}, snap.TodayMethods, "no bucket for an unknown method")
}

func TestComputeSnapshot_lowStockBoundary(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	products := []domain.Product{
		{ID: "a", Stock: 5, MinStockAlert: 5},
		{ID: "b", Stock: 4, MinStockAlert: 5},
		{ID: "c", Stock: 6, MinStockAlert: 5},
	}

	snap := ComputeSnapshot(now, nil, products, fixedLabel)
	assert.Equal(t, 2, snap.LowStockCount, "at-threshold and below count, above does not")
}

func TestComputeSnapshot_idempotent(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, loc)
	txs := []domain.Transaction{
		tx(time.Date(2024, time.June, 15, 8, 0, 0, 0, loc), 50000, domain.PaymentCash),
		tx(time.Date(2024, time.June, 12, 8, 0, 0, 0, loc), 30000, domain.PaymentQRIS),
	}
	products := []domain.Product{{ID: "a", Stock: 1, MinStockAlert: 3}}

	first := ComputeSnapshot(now, txs, products, fixedLabel)
	second := ComputeSnapshot(now, txs, products, fixedLabel)
	assert.Equal(t, first, second)
}

func TestComputeSnapshot_respectsLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 01:00 on the 15th in Jakarta is still the 14th in UTC.
	now := time.Date(2024, time.June, 15, 1, 0, 0, 0, jakarta)

	earlier := time.Date(2024, time.June, 15, 0, 30, 0, 0, jakarta)
	snap := ComputeSnapshot(now, []domain.Transaction{tx(earlier.UTC(), 2500, domain.PaymentCash)}, nil, fixedLabel)

	assert.Equal(t, int64(2500), snap.TodaySales, "day boundary follows now's zone, not the record's")
}

func TestIndonesianWeekday(t *testing.T) {
	sunday := time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)
	want := []string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}
	for i, label := range want {
		assert.Equal(t, label, IndonesianWeekday(sunday.AddDate(0, 0, i)))
	}
}
