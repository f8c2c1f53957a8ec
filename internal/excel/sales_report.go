package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Pakayi/pos-kasir/internal/dashboard"
)

const reportSheet = "Laporan Penjualan"

// BuildSalesReport renders a dashboard snapshot as a spreadsheet: the
// seven-day sales series followed by today's payment-method breakdown.
// The caller owns the returned file and must Close it.
func BuildSalesReport(snap dashboard.Snapshot, generatedAt time.Time) (*excelize.File, error) {
	file := excelize.NewFile()
	index, err := file.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("create report sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	rows := [][]any{
		{"Generated", generatedAt.Format("2006-01-02 15:04")},
		{},
		{"Day", "Sales"},
	}
	for _, point := range snap.SevenDays {
		rows = append(rows, []any{point.Label, point.Sales})
	}
	rows = append(rows,
		[]any{},
		[]any{"Today", snap.TodaySales},
		[]any{"This Month", snap.MonthSales},
		[]any{"Transactions (all time)", snap.TotalTransactions},
		[]any{"Low Stock Products", snap.LowStockCount},
		[]any{},
		[]any{"Payment Method (today)", "Total"},
		[]any{"Tunai", snap.TodayMethods.Cash},
		[]any{"QRIS", snap.TodayMethods.QRIS},
		[]any{"Hutang", snap.TodayMethods.Debt},
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := file.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return file, nil
}
