package repositories

import (
	"fmt"
	"sort"
	"time"

	"invoicing-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardStats covers the landing-page counters for the current month.
type DashboardStats struct {
	MonthSalesTotal     float64 `json:"month_sales_total"`
	MonthInvoiceCount   int64   `json:"month_invoice_count"`
	ActiveClientCount   int64   `json:"active_client_count"`
	ActiveProductCount  int64   `json:"active_product_count"`
	PendingInvoiceCount int64   `json:"pending_invoice_count"`
}

// MonthlySales is one point of the trailing twelve-month revenue series.
type MonthlySales struct {
	Month        string  `json:"month"`
	SalesTotal   float64 `json:"sales_total"`
	InvoiceCount int64   `json:"invoice_count"`
}

// TopProduct ranks a product by quantity sold in the window.
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	QuantitySold float64   `json:"quantity_sold"`
	SalesTotal   float64   `json:"sales_total"`
}

// TopClient ranks a client by billed total in the window.
type TopClient struct {
	ClientID     uuid.UUID `json:"client_id"`
	ClientName   string    `json:"client_name"`
	InvoiceCount int64     `json:"invoice_count"`
	SalesTotal   float64   `json:"sales_total"`
}

type DashboardRepository interface {
	GetStats(now time.Time) (*DashboardStats, error)
	GetMonthlySales(now time.Time) ([]MonthlySales, error)
	GetTopProducts(now time.Time) ([]TopProduct, error)
	GetTopClients(now time.Time) ([]TopClient, error)
}

type dashboardRepository struct {
	DB *gorm.DB
}

// NewDashboardRepository initializes a new dashboard repository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{DB: db}
}

// billable scopes invoice aggregates to everything that still counts as
// revenue; voided invoices never contribute.
func (dr *dashboardRepository) billable() *gorm.DB {
	return dr.DB.Model(&models.Invoice{}).Where("status <> ?", models.InvoiceVoid)
}

func (dr *dashboardRepository) GetStats(now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type monthRow struct {
		SalesTotal   float64
		InvoiceCount int64
	}
	var month monthRow
	err := dr.billable().
		Where("issued_at >= ?", monthStart).
		Select("COALESCE(SUM(total), 0) AS sales_total, COUNT(id) AS invoice_count").
		Scan(&month).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month sales: %w", err)
	}
	stats.MonthSalesTotal = month.SalesTotal
	stats.MonthInvoiceCount = month.InvoiceCount

	if err := dr.DB.Model(&models.Client{}).Where("active = ?", true).Count(&stats.ActiveClientCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count active clients: %w", err)
	}
	if err := dr.DB.Model(&models.Product{}).Where("active = ?", true).Count(&stats.ActiveProductCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}
	if err := dr.DB.Model(&models.Invoice{}).Where("status = ?", models.InvoicePending).Count(&stats.PendingInvoiceCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending invoices: %w", err)
	}

	return stats, nil
}

// GetMonthlySales returns the twelve months ending at now, oldest first.
// Bucketing happens in Go so the query stays portable across SQL dialects.
func (dr *dashboardRepository) GetMonthlySales(now time.Time) ([]MonthlySales, error) {
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	type row struct {
		IssuedAt time.Time
		Total    float64
	}
	var rows []row
	err := dr.billable().
		Where("issued_at >= ?", windowStart).
		Select("issued_at, total").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sales window: %w", err)
	}

	buckets := make(map[string]*MonthlySales, 12)
	for i := 0; i < 12; i++ {
		month := windowStart.AddDate(0, i, 0).Format("2006-01")
		buckets[month] = &MonthlySales{Month: month}
	}
	for _, r := range rows {
		month := r.IssuedAt.In(now.Location()).Format("2006-01")
		bucket, ok := buckets[month]
		if !ok {
			continue
		}
		bucket.SalesTotal += r.Total
		bucket.InvoiceCount++
	}

	series := make([]MonthlySales, 0, 12)
	for _, bucket := range buckets {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series, nil
}

// GetTopProducts ranks products by quantity sold over the last 30 days.
func (dr *dashboardRepository) GetTopProducts(now time.Time) ([]TopProduct, error) {
	windowStart := now.AddDate(0, 0, -30)

	var products []TopProduct
	err := dr.DB.Model(&models.InvoiceLine{}).
		Select("products.id AS product_id, products.code AS code, products.name AS name, "+
			"SUM(invoice_lines.quantity) AS quantity_sold, COALESCE(SUM(invoice_lines.subtotal), 0) AS sales_total").
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Joins("JOIN products ON products.id = invoice_lines.product_id").
		Where("invoices.status <> ?", models.InvoiceVoid).
		Where("invoices.issued_at >= ?", windowStart).
		Group("products.id, products.code, products.name").
		Order("quantity_sold DESC").
		Limit(10).
		Scan(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	return products, nil
}

// GetTopClients ranks clients by billed total over the last 90 days.
func (dr *dashboardRepository) GetTopClients(now time.Time) ([]TopClient, error) {
	windowStart := now.AddDate(0, 0, -90)

	var clients []TopClient
	err := dr.billable().
		Select("client_id, client_name, COUNT(id) AS invoice_count, COALESCE(SUM(total), 0) AS sales_total").
		Where("issued_at >= ?", windowStart).
		Group("client_id, client_name").
		Order("sales_total DESC").
		Limit(10).
		Scan(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank clients: %w", err)
	}
	return clients, nil
}
