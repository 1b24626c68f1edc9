// internal/adapters/out/xlsx/order_report.go
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	orderdom "canteen/internal/domain/order"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	ordersSheet  = "Orders"
	summarySheet = "Summary"
)

var orderHeadings = []string{
	"Queue", "Order ID", "Roll Number", "Status", "Priority", "Date", "Time", "Items", "Total",
}

// WriteOrderReport writes orders (in the given order) and their summary as
// a two-sheet workbook.
func WriteOrderReport(w io.Writer, orders []orderdom.Order, sum orderdom.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return err
	}
	if err := writeOrders(f, orders); err != nil {
		return fmt.Errorf("orders sheet: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, sum); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeOrders(f *excelize.File, orders []orderdom.Order) error {
	if err := setRow(f, ordersSheet, 1, toAny(orderHeadings)); err != nil {
		return err
	}
	for i, o := range orders {
		date := ""
		if !o.Date.IsZero() {
			date = o.Date.Format("2006-01-02")
		}
		row := []any{
			o.QueuePosition,
			o.OrderID,
			o.RollNumber,
			string(o.Status),
			o.Priority,
			date,
			o.Time,
			itemsText(o.Items),
			o.Total.InexactFloat64(),
		}
		if err := setRow(f, ordersSheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetPanes(ordersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummary(f *excelize.File, sum orderdom.Summary) error {
	rows := [][]any{
		{"Orders", sum.Orders},
		{"Revenue", sum.Revenue.InexactFloat64()},
		{},
		{"Status", "Count"},
	}
	for _, sc := range sum.StatusCounts() {
		rows = append(rows, []any{string(sc.Status), sc.Count})
	}
	rows = append(rows, []any{}, []any{"Session", "Count"})
	for _, sc := range sum.SessionCounts() {
		rows = append(rows, []any{string(sc.Session), sc.Count})
	}
	rows = append(rows, []any{}, []any{"Hour", "Count"})
	for _, hc := range sum.ActiveHours() {
		rows = append(rows, []any{fmt.Sprintf("%02d:00", hc.Hour), hc.Count})
	}

	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		if err := setRow(f, summarySheet, i+1, r); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func itemsText(items []orderdom.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
