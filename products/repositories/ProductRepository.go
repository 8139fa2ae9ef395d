package repositories

import (
	"errors"
	"fmt"
	"strings"

	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductRepository interface {
	CreateProduct(product *models.Product) (*models.Product, error)
	GetProductByID(id uuid.UUID) (*models.Product, error)
	GetProductByCode(code string) (*models.Product, error)
	GetFilteredProducts(filters map[string]string, limit, offset int) ([]models.Product, int64, error)
	UpdateProduct(product *models.Product) error
	CodeTaken(code string, excludeID uuid.UUID) (bool, error)
	SetProductActive(id uuid.UUID, active bool) (*models.Product, error)
	SetProductStock(id uuid.UUID, stock int) (*models.Product, error)
}

type productRepository struct {
	DB *gorm.DB
}

// NewProductRepository initializes a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (pr *productRepository) CreateProduct(product *models.Product) (*models.Product, error) {
	taken, err := pr.CodeTaken(product.Code, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("a product with this code already exists")
	}

	if err := pr.DB.Create(product).Error; err != nil {
		config.Logger.Error("Failed to create product", zap.Error(err))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	config.Logger.Info("Created product successfully",
		zap.String("productID", product.ID.String()),
		zap.String("code", product.Code))

	return product, nil
}

// CodeTaken reports whether another product already uses the code. The
// uniqueness check spans active and inactive rows.
func (pr *productRepository) CodeTaken(code string, excludeID uuid.UUID) (bool, error) {
	query := pr.DB.Model(&models.Product{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product code: %w", err)
	}
	return count > 0, nil
}

func (pr *productRepository) GetProductByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := pr.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (pr *productRepository) GetProductByCode(code string) (*models.Product, error) {
	var product models.Product
	if err := pr.DB.First(&product, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (pr *productRepository) GetFilteredProducts(filters map[string]string, limit, offset int) ([]models.Product, int64, error) {
	query := pr.DB.Model(&models.Product{})

	if active, ok := filters["active"]; ok && active != "" {
		query = query.Where("active = ?", active == "true" || active == "1")
	}
	if category, ok := filters["category"]; ok && category != "" {
		query = query.Where("category = ?", category)
	}
	if search, ok := filters["search"]; ok && search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (pr *productRepository) UpdateProduct(product *models.Product) error {
	if err := pr.DB.Save(product).Error; err != nil {
		config.Logger.Error("Failed to update product", zap.Error(err),
			zap.String("productID", product.ID.String()))
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// SetProductActive flips the soft-delete flag; rows are never removed.
func (pr *productRepository) SetProductActive(id uuid.UUID, active bool) (*models.Product, error) {
	product, err := pr.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	product.Active = active
	if err := pr.DB.Model(product).Update("active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update product active flag: %w", err)
	}

	return product, nil
}

func (pr *productRepository) SetProductStock(id uuid.UUID, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, apperr.Invalid("stock cannot be negative")
	}

	product, err := pr.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	product.Stock = stock
	if err := pr.DB.Model(product).Update("stock", stock).Error; err != nil {
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}

	return product, nil
}
