package repositories

import (
	"fmt"
	"testing"
	"time"

	"invoicing-backend/config"
	"invoicing-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupInvoiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	config.Logger = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceLine{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedInvoice(t *testing.T, db *gorm.DB, number string, status models.InvoiceStatus, issuedAt time.Time, total float64) *models.Invoice {
	t.Helper()
	invoice := &models.Invoice{
		InvoiceNumber: number,
		ClientID:      uuid.New(),
		ClientName:    "Carlos Mora",
		ClientEmail:   "carlos@example.com",
		AreaM2:        30,
		PricePerM2:    total / 30,
		Subtotal:      total,
		Tax:           0,
		Total:         total,
		Status:        status,
		IssuedAt:      issuedAt,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("failed to seed invoice %s: %v", number, err)
	}
	return invoice
}

func TestGetFilteredInvoicesByStatus(t *testing.T) {
	db := setupInvoiceTestDB(t, "invoices_status_filter")
	repo := NewInvoiceRepository(db)
	now := time.Now()

	seedInvoice(t, db, "GR-20260801-0001", models.InvoicePending, now, 100000)
	seedInvoice(t, db, "GR-20260801-0002", models.InvoicePaid, now, 200000)
	seedInvoice(t, db, "GR-20260801-0003", models.InvoicePaid, now, 300000)

	invoices, total, err := repo.GetFilteredInvoices(map[string]string{"status": "PAID"}, 100, 0)
	if err != nil {
		t.Fatalf("failed to filter invoices: %v", err)
	}
	if total != 2 || len(invoices) != 2 {
		t.Fatalf("expected 2 paid invoices, got total=%d len=%d", total, len(invoices))
	}
	for _, inv := range invoices {
		if inv.Status != models.InvoicePaid {
			t.Errorf("unexpected status %s in PAID filter", inv.Status)
		}
	}
}

func TestGetFilteredInvoicesDateRangeIncludesEndOfDay(t *testing.T) {
	db := setupInvoiceTestDB(t, "invoices_date_filter")
	repo := NewInvoiceRepository(db)

	endOfDay := time.Date(2026, 8, 15, 23, 30, 0, 0, time.Local)
	nextDay := time.Date(2026, 8, 16, 0, 30, 0, 0, time.Local)
	seedInvoice(t, db, "GR-20260815-0001", models.InvoicePending, endOfDay, 100000)
	seedInvoice(t, db, "GR-20260816-0001", models.InvoicePending, nextDay, 100000)

	invoices, total, err := repo.GetFilteredInvoices(map[string]string{
		"date_from": "2026-08-15",
		"date_to":   "2026-08-15",
	}, 100, 0)
	if err != nil {
		t.Fatalf("failed to filter invoices: %v", err)
	}
	if total != 1 || len(invoices) != 1 {
		t.Fatalf("expected exactly the late-evening invoice, got total=%d len=%d", total, len(invoices))
	}
	if invoices[0].InvoiceNumber != "GR-20260815-0001" {
		t.Errorf("expected GR-20260815-0001, got %s", invoices[0].InvoiceNumber)
	}
}

func TestGetFilteredInvoicesAreaRangeAndOrder(t *testing.T) {
	db := setupInvoiceTestDB(t, "invoices_area_filter")
	repo := NewInvoiceRepository(db)
	now := time.Now()

	small := seedInvoice(t, db, "GR-20260801-1001", models.InvoicePending, now.Add(-48*time.Hour), 100000)
	small.AreaM2 = 10
	big := seedInvoice(t, db, "GR-20260801-1002", models.InvoicePending, now, 100000)
	big.AreaM2 = 80
	for _, inv := range []*models.Invoice{small, big} {
		if err := db.Save(inv).Error; err != nil {
			t.Fatalf("failed to adjust area: %v", err)
		}
	}

	invoices, _, err := repo.GetFilteredInvoices(map[string]string{"area_min": "50"}, 100, 0)
	if err != nil {
		t.Fatalf("failed to filter invoices: %v", err)
	}
	if len(invoices) != 1 || invoices[0].InvoiceNumber != big.InvoiceNumber {
		t.Fatalf("expected only the large-area invoice, got %d rows", len(invoices))
	}

	all, _, err := repo.GetFilteredInvoices(map[string]string{}, 100, 0)
	if err != nil {
		t.Fatalf("failed to list invoices: %v", err)
	}
	if len(all) != 2 || all[0].InvoiceNumber != big.InvoiceNumber {
		t.Error("expected newest invoice first")
	}
}

func TestInvoiceNumberExists(t *testing.T) {
	db := setupInvoiceTestDB(t, "invoices_number_exists")
	repo := NewInvoiceRepository(db)

	seedInvoice(t, db, "GR-20260801-2001", models.InvoicePending, time.Now(), 100000)

	exists, err := repo.InvoiceNumberExists("GR-20260801-2001")
	if err != nil || !exists {
		t.Errorf("expected existing number to be reported, got exists=%v err=%v", exists, err)
	}
	exists, err = repo.InvoiceNumberExists("GR-20260801-9999")
	if err != nil || exists {
		t.Errorf("expected unknown number to be absent, got exists=%v err=%v", exists, err)
	}
}

func TestGetInvoiceSummaryBreaksDownByState(t *testing.T) {
	db := setupInvoiceTestDB(t, "invoices_summary")
	repo := NewInvoiceRepository(db)
	now := time.Now()

	seedInvoice(t, db, "GR-20260801-3001", models.InvoicePending, now, 100000)
	seedInvoice(t, db, "GR-20260801-3002", models.InvoicePaid, now, 200000)
	seedInvoice(t, db, "GR-20260801-3003", models.InvoicePaid, now, 300000)

	summary, err := repo.GetInvoiceSummary()
	if err != nil {
		t.Fatalf("failed to compute summary: %v", err)
	}

	if summary.TotalInvoices != 3 {
		t.Errorf("expected 3 invoices, got %d", summary.TotalInvoices)
	}
	if summary.TotalSales != 600000 {
		t.Errorf("expected total sales 600000, got %v", summary.TotalSales)
	}

	byState := make(map[models.InvoiceStatus]InvoiceStateSummary, len(summary.ByState))
	for _, s := range summary.ByState {
		byState[s.Status] = s
	}
	if paid := byState[models.InvoicePaid]; paid.Count != 2 || paid.Amount != 500000 {
		t.Errorf("unexpected PAID rollup: %+v", paid)
	}
	if pending := byState[models.InvoicePending]; pending.Count != 1 || pending.Amount != 100000 {
		t.Errorf("unexpected PENDING rollup: %+v", pending)
	}
}
