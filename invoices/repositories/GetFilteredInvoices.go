package repositories

import (
	"strconv"
	"strings"
	"time"

	"invoicing-backend/db/models"

	"gorm.io/gorm"
)

// invoicesQueryBuilder builds queries for invoice filtering
type invoicesQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newInvoicesQueryBuilder(db *gorm.DB, filters map[string]string) *invoicesQueryBuilder {
	return &invoicesQueryBuilder{
		query:   db.Model(&models.Invoice{}),
		filters: filters,
	}
}

func (iqb *invoicesQueryBuilder) applyBasicInvoiceFilters() *invoicesQueryBuilder {
	if status, ok := iqb.filters["status"]; ok && status != "" {
		iqb.query = iqb.query.Where("status = ?", status)
	}
	if clientName, ok := iqb.filters["client_name"]; ok && clientName != "" {
		iqb.query = iqb.query.Where("LOWER(client_name) LIKE ?", "%"+strings.ToLower(clientName)+"%")
	}
	if clientEmail, ok := iqb.filters["client_email"]; ok && clientEmail != "" {
		iqb.query = iqb.query.Where("LOWER(client_email) LIKE ?", "%"+strings.ToLower(clientEmail)+"%")
	}
	if color, ok := iqb.filters["color"]; ok && color != "" {
		iqb.query = iqb.query.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(color)+"%")
	}
	return iqb
}

// applyDateRangeFilter bounds issue dates to [from, end-of-day(to)] inclusive.
func (iqb *invoicesQueryBuilder) applyDateRangeFilter() *invoicesQueryBuilder {
	if from, ok := iqb.filters["date_from"]; ok && from != "" && from != "null" {
		if parsed, err := time.ParseInLocation("2006-01-02", from, time.Local); err == nil {
			iqb.query = iqb.query.Where("issued_at >= ?", parsed)
		}
	}
	if to, ok := iqb.filters["date_to"]; ok && to != "" && to != "null" {
		if parsed, err := time.ParseInLocation("2006-01-02", to, time.Local); err == nil {
			endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
			iqb.query = iqb.query.Where("issued_at <= ?", endOfDay)
		}
	}
	return iqb
}

func (iqb *invoicesQueryBuilder) applyAreaRangeFilter() *invoicesQueryBuilder {
	if min, ok := iqb.filters["area_min"]; ok && min != "" {
		if parsed, err := strconv.ParseFloat(min, 64); err == nil {
			iqb.query = iqb.query.Where("area_m2 >= ?", parsed)
		}
	}
	if max, ok := iqb.filters["area_max"]; ok && max != "" {
		if parsed, err := strconv.ParseFloat(max, 64); err == nil {
			iqb.query = iqb.query.Where("area_m2 <= ?", parsed)
		}
	}
	return iqb
}

func (iqb *invoicesQueryBuilder) applyIssueDateOrder() *invoicesQueryBuilder {
	iqb.query = iqb.query.Order("issued_at DESC")
	return iqb
}

func (iqb *invoicesQueryBuilder) Limit(limit int) *invoicesQueryBuilder {
	iqb.query = iqb.query.Limit(limit)
	return iqb
}

func (iqb *invoicesQueryBuilder) Offset(offset int) *invoicesQueryBuilder {
	iqb.query = iqb.query.Offset(offset)
	return iqb
}

// GetFilteredInvoices returns filtered invoices with pagination, newest first
func (ir *invoiceRepository) GetFilteredInvoices(filters map[string]string, limit, offset int) ([]models.Invoice, int64, error) {
	iqb := newInvoicesQueryBuilder(ir.DB, filters).
		applyBasicInvoiceFilters().
		applyDateRangeFilter().
		applyAreaRangeFilter().
		applyIssueDateOrder().
		Limit(limit).
		Offset(offset)

	iqb2 := newInvoicesQueryBuilder(ir.DB, filters).
		applyBasicInvoiceFilters().
		applyDateRangeFilter().
		applyAreaRangeFilter()

	var invoices []models.Invoice
	if err := iqb.query.Preload("Lines").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := iqb2.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}
