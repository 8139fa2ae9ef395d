package repositories

import (
	"errors"
	"fmt"

	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvoiceStateSummary is one per-state row of the invoice summary.
type InvoiceStateSummary struct {
	Status models.InvoiceStatus `json:"status"`
	Count  int64                `json:"count"`
	Amount float64              `json:"amount"`
}

// InvoiceSummary aggregates the whole invoice table.
type InvoiceSummary struct {
	TotalInvoices int64                 `json:"total_invoices"`
	TotalSales    float64               `json:"total_sales"`
	AverageAreaM2 float64               `json:"average_area_m2"`
	ByState       []InvoiceStateSummary `json:"by_state"`
}

type InvoiceRepository interface {
	CreateInvoice(invoice *models.Invoice) (*models.Invoice, error)
	GetInvoiceByID(id uuid.UUID) (*models.Invoice, error)
	GetInvoiceByNumber(number string) (*models.Invoice, error)
	InvoiceNumberExists(number string) (bool, error)
	UpdateInvoice(invoice *models.Invoice) error
	GetFilteredInvoices(filters map[string]string, limit, offset int) ([]models.Invoice, int64, error)
	GetInvoiceSummary() (*InvoiceSummary, error)
}

type invoiceRepository struct {
	DB *gorm.DB
}

// NewInvoiceRepository initializes a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{DB: db}
}

func (ir *invoiceRepository) CreateInvoice(invoice *models.Invoice) (*models.Invoice, error) {
	// The generate-and-retry loop upstream makes collisions unlikely; the
	// unique index on invoice_number is what actually guarantees uniqueness
	// under concurrent creation.
	if err := ir.DB.Create(invoice).Error; err != nil {
		config.Logger.Error("Failed to create invoice",
			zap.Error(err),
			zap.String("invoiceNumber", invoice.InvoiceNumber))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	config.Logger.Info("Created invoice successfully",
		zap.String("invoiceID", invoice.ID.String()),
		zap.String("invoiceNumber", invoice.InvoiceNumber),
		zap.Float64("total", invoice.Total))

	return invoice, nil
}

func (ir *invoiceRepository) GetInvoiceByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := ir.DB.Preload("Lines").First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invoice")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (ir *invoiceRepository) GetInvoiceByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := ir.DB.Preload("Lines").First(&invoice, "invoice_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invoice")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (ir *invoiceRepository) InvoiceNumberExists(number string) (bool, error) {
	var count int64
	if err := ir.DB.Model(&models.Invoice{}).Where("invoice_number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check invoice number: %w", err)
	}
	return count > 0, nil
}

func (ir *invoiceRepository) UpdateInvoice(invoice *models.Invoice) error {
	if err := ir.DB.Save(invoice).Error; err != nil {
		config.Logger.Error("Failed to update invoice", zap.Error(err),
			zap.String("invoiceID", invoice.ID.String()))
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (ir *invoiceRepository) GetInvoiceSummary() (*InvoiceSummary, error) {
	summary := &InvoiceSummary{}

	type totalsRow struct {
		TotalInvoices int64
		TotalSales    float64
		AverageAreaM2 float64
	}
	var totals totalsRow
	err := ir.DB.Model(&models.Invoice{}).
		Select("COUNT(id) AS total_invoices, COALESCE(SUM(total), 0) AS total_sales, COALESCE(AVG(area_m2), 0) AS average_area_m2").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute invoice totals: %w", err)
	}
	summary.TotalInvoices = totals.TotalInvoices
	summary.TotalSales = totals.TotalSales
	summary.AverageAreaM2 = totals.AverageAreaM2

	err = ir.DB.Model(&models.Invoice{}).
		Select("status, COUNT(id) AS count, COALESCE(SUM(total), 0) AS amount").
		Group("status").
		Order("status").
		Scan(&summary.ByState).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute per-state summary: %w", err)
	}

	return summary, nil
}
