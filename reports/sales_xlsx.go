// Package reports renders management exports.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SalesRow struct {
	RestaurantID    uint
	Restaurant      string
	Orders          int64
	DeliveredOrders int64
	CancelledOrders int64
	Revenue         decimal.Decimal
}

var salesHeaders = []string{
	"RestaurantID", "Restaurant", "Orders", "Delivered", "Cancelled", "DeliveredRevenue",
}

// SalesWorkbook renders one row per restaurant plus a totals row.
func SalesWorkbook(rows []SalesRow, generatedAt time.Time) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range salesHeaders {
		headerRow.AddCell().SetValue(h)
	}

	var orders, delivered, cancelled int64
	revenue := decimal.Zero
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt64(int64(r.RestaurantID))
		row.AddCell().SetString(r.Restaurant)
		row.AddCell().SetInt64(r.Orders)
		row.AddCell().SetInt64(r.DeliveredOrders)
		row.AddCell().SetInt64(r.CancelledOrders)
		row.AddCell().SetFloatWithFormat(r.Revenue.Round(2).InexactFloat64(), "0.00")

		orders += r.Orders
		delivered += r.DeliveredOrders
		cancelled += r.CancelledOrders
		revenue = revenue.Add(r.Revenue)
	}

	total := sheet.AddRow()
	total.AddCell().SetString("")
	total.AddCell().SetString("TOTAL")
	total.AddCell().SetInt64(orders)
	total.AddCell().SetInt64(delivered)
	total.AddCell().SetInt64(cancelled)
	total.AddCell().SetFloatWithFormat(revenue.Round(2).InexactFloat64(), "0.00")

	meta := sheet.AddRow()
	meta.AddCell().SetString("Generated")
	meta.AddCell().SetString(generatedAt.UTC().Format(time.RFC3339))

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
