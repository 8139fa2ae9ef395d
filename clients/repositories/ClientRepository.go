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

type ClientRepository interface {
	CreateClient(client *models.Client) (*models.Client, error)
	GetClientByID(id uuid.UUID) (*models.Client, error)
	GetClientByNationalID(nationalID string) (*models.Client, error)
	GetFilteredClients(filters map[string]string, limit, offset int) ([]models.Client, int64, error)
	UpdateClient(client *models.Client) error
	SetClientActive(id uuid.UUID, active bool) (*models.Client, error)
}

type clientRepository struct {
	DB *gorm.DB
}

// NewClientRepository initializes a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{DB: db}
}

func (cr *clientRepository) CreateClient(client *models.Client) (*models.Client, error) {
	// Duplicate check first so the caller gets a Conflict instead of a raw
	// constraint violation; the unique index is still the real guarantee.
	var existing models.Client
	err := cr.DB.Where("national_id = ?", client.NationalID).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("a client with this national ID already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check national ID: %w", err)
	}

	if err := cr.DB.Create(client).Error; err != nil {
		config.Logger.Error("Failed to create client", zap.Error(err))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	config.Logger.Info("Created client successfully",
		zap.String("clientID", client.ID.String()),
		zap.String("nationalID", client.NationalID))

	return client, nil
}

func (cr *clientRepository) GetClientByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := cr.DB.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (cr *clientRepository) GetClientByNationalID(nationalID string) (*models.Client, error) {
	var client models.Client
	if err := cr.DB.First(&client, "national_id = ?", nationalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (cr *clientRepository) GetFilteredClients(filters map[string]string, limit, offset int) ([]models.Client, int64, error) {
	query := cr.DB.Model(&models.Client{})

	if active, ok := filters["active"]; ok && active != "" {
		query = query.Where("active = ?", active == "true" || active == "1")
	}
	if search, ok := filters["search"]; ok && search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(national_id) LIKE ? OR LOWER(email) LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (cr *clientRepository) UpdateClient(client *models.Client) error {
	if err := cr.DB.Save(client).Error; err != nil {
		config.Logger.Error("Failed to update client", zap.Error(err),
			zap.String("clientID", client.ID.String()))
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// SetClientActive flips the soft-delete flag. The row itself is never removed
// so historical invoices keep resolving.
func (cr *clientRepository) SetClientActive(id uuid.UUID, active bool) (*models.Client, error) {
	client, err := cr.GetClientByID(id)
	if err != nil {
		return nil, err
	}

	client.Active = active
	if err := cr.DB.Model(client).Update("active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update client active flag: %w", err)
	}

	return client, nil
}
