package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	orderdom "canteen/internal/domain/order"
)

func TestWriteOrderReport(t *testing.T) {
	orders := []orderdom.Order{
		{
			ID: "o1", OrderID: "A-1", RollNumber: "21CS001", Status: orderdom.StatusPending,
			Priority: 2, QueuePosition: 1, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Time: "08:15",
			Items: []orderdom.Item{{Name: "Dosa", Price: decimal.NewFromInt(40), Quantity: 2}},
			Total: decimal.NewFromInt(80),
		},
		{
			ID: "o2", OrderID: "A-2", Status: orderdom.StatusCompleted, QueuePosition: 2, Time: "13:05",
			Items: []orderdom.Item{{Name: "Tea", Price: decimal.NewFromInt(10), Quantity: 1}},
			Total: decimal.NewFromInt(10),
		},
	}

	var buf bytes.Buffer
	if err := WriteOrderReport(&buf, orders, orderdom.Summarize(orders)); err != nil {
		t.Fatalf("WriteOrderReport: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ordersSheet)
	if err != nil {
		t.Fatalf("GetRows orders: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("orders rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "Order ID" || rows[1][1] != "A-1" || rows[2][1] != "A-2" {
		t.Fatalf("unexpected order ids: %v", rows)
	}
	if rows[1][7] != "2 x Dosa" {
		t.Fatalf("items = %q", rows[1][7])
	}
	if rows[1][5] != "2024-03-01" || rows[2][5] != "" {
		t.Fatalf("dates = %q, %q", rows[1][5], rows[2][5])
	}

	orderCount, err := f.GetCellValue(summarySheet, "B1")
	if err != nil || orderCount != "2" {
		t.Fatalf("summary orders = %q (%v)", orderCount, err)
	}
	revenue, _ := f.GetCellValue(summarySheet, "B2")
	if revenue != "90" {
		t.Fatalf("revenue = %q", revenue)
	}
}

func TestWriteOrderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOrderReport(&buf, nil, orderdom.Summarize(nil)); err != nil {
		t.Fatalf("WriteOrderReport: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 2 || got[0] != ordersSheet || got[1] != summarySheet {
		t.Fatalf("sheets = %v", got)
	}
}
