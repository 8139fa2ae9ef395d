package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	clients_repositories "invoicing-backend/clients/repositories"
	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/invoices/repositories"
	"invoicing-backend/invoices/requests"
	products_repositories "invoicing-backend/products/repositories"
	"invoicing-backend/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Notifier delivers a rendered invoice by email. Implementations report
// failure through the returned error; apperr.ErrUnavailable means the
// transport has no usable configuration and nothing was attempted.
type Notifier interface {
	SendInvoice(ctx context.Context, email InvoiceEmail) error
}

// StoredImage describes a persisted invoice image.
type StoredImage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ImageStore validates, persists and normalizes invoice images.
type ImageStore interface {
	Save(filename string, content []byte) (*StoredImage, error)
	Delete(path string) bool
	PublicURL(path string) string
}

// InvoiceService orchestrates the invoice lifecycle: billing calculation,
// number assignment, state transitions, image attachment and email delivery.
type InvoiceService struct {
	InvoiceRepo repositories.InvoiceRepository
	ClientRepo  clients_repositories.ClientRepository
	ProductRepo products_repositories.ProductRepository
	Notifier    Notifier
	Images      ImageStore
	Redis       *redis.Client

	NumberPrefix string
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	clientRepo clients_repositories.ClientRepository,
	productRepo products_repositories.ProductRepository,
	notifier Notifier,
	images ImageStore,
	rdb *redis.Client,
) *InvoiceService {
	return &InvoiceService{
		InvoiceRepo:  invoiceRepo,
		ClientRepo:   clientRepo,
		ProductRepo:  productRepo,
		Notifier:     notifier,
		Images:       images,
		Redis:        rdb,
		NumberPrefix: config.GetEnvOr("INVOICE_NUMBER_PREFIX", "GR"),
	}
}

// ComputeTotals derives subtotal, tax and total from area and unit price.
func ComputeTotals(areaM2, pricePerM2 float64) (subtotal, tax, total float64) {
	subtotal = areaM2 * pricePerM2
	tax = subtotal * models.TaxRate
	total = subtotal + tax
	return subtotal, tax, total
}

// generateInvoiceNumber produces a PREFIX-YYYYMMDD-RRRR candidate.
func (s *InvoiceService) generateInvoiceNumber() string {
	return fmt.Sprintf("%s-%s-%04d", s.NumberPrefix, time.Now().Format("20060102"), rand.Intn(10000))
}

// nextInvoiceNumber regenerates until the candidate is unused. Collisions are
// handled by regeneration, never surfaced; the DB unique index remains the
// guarantee under concurrent creation.
func (s *InvoiceService) nextInvoiceNumber() (string, error) {
	for {
		number := s.generateInvoiceNumber()
		exists, err := s.InvoiceRepo.InvoiceNumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
		config.Logger.Warn("Invoice number collision, regenerating",
			zap.String("invoiceNumber", number))
	}
}

// CreateInvoice validates the request, assigns a unique number, computes
// totals and persists the invoice (state PENDING) with any catalog lines.
// Product stock is never decremented here.
func (s *InvoiceService) CreateInvoice(req *requests.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.AreaM2 <= 0 {
		return nil, apperr.Invalid("area must be greater than 0")
	}
	if req.PricePerM2 <= 0 {
		return nil, apperr.Invalid("price per square meter must be greater than 0")
	}
	req.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if !strings.Contains(req.ClientEmail, "@") {
		return nil, apperr.Invalid("client email is not valid")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, apperr.Invalid("client name cannot be empty")
	}

	// The referenced client must exist; its current name/email are NOT used —
	// the denormalized values come from the request and freeze at creation.
	if _, err := s.ClientRepo.GetClientByID(req.ClientID); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	number, err := s.nextInvoiceNumber()
	if err != nil {
		return nil, err
	}

	subtotal, tax, total := ComputeTotals(req.AreaM2, req.PricePerM2)

	invoice := &models.Invoice{
		InvoiceNumber: number,
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Color:         req.Color,
		AreaM2:        req.AreaM2,
		PricePerM2:    req.PricePerM2,
		Description:   req.Description,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        models.InvoicePending,
		Notes:         req.Notes,
		Lines:         lines,
	}

	created, err := s.InvoiceRepo.CreateInvoice(invoice)
	if err != nil {
		return nil, err
	}

	utils.InvalidateCacheAsync(s.Redis, "dashboard")
	return created, nil
}

func (s *InvoiceService) buildLines(reqs []requests.CreateInvoiceLineRequest) ([]models.InvoiceLine, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	lines := make([]models.InvoiceLine, 0, len(reqs))
	for _, lr := range reqs {
		if lr.Quantity <= 0 {
			return nil, apperr.Invalid("line quantity must be greater than 0")
		}

		product, err := s.ProductRepo.GetProductByID(lr.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice := lr.UnitPrice
		if unitPrice <= 0 {
			unitPrice = product.UnitPrice
		}

		lines = append(lines, models.InvoiceLine{
			ProductID: product.ID,
			Quantity:  lr.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  float64(lr.Quantity) * unitPrice,
		})
	}
	return lines, nil
}

// UpdateInvoice mutates the post-creation fields: state, notes, color,
// image path. Everything else stays as written at creation.
func (s *InvoiceService) UpdateInvoice(id uuid.UUID, req *requests.UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.InvoiceRepo.GetInvoiceByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !models.ValidInvoiceStatus(*req.Status) {
		return nil, apperr.Invalid("invalid invoice status")
	}

	req.Apply(invoice)

	if err := s.InvoiceRepo.UpdateInvoice(invoice); err != nil {
		return nil, err
	}

	utils.InvalidateCacheAsync(s.Redis, "dashboard")
	return invoice, nil
}

// VoidInvoice moves the invoice to its terminal VOID state. There is no
// reversal operation.
func (s *InvoiceService) VoidInvoice(id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.InvoiceRepo.GetInvoiceByID(id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == models.InvoiceVoid {
		return nil, apperr.InvalidState("invoice is already void")
	}

	invoice.Status = models.InvoiceVoid
	if err := s.InvoiceRepo.UpdateInvoice(invoice); err != nil {
		return nil, err
	}

	config.Logger.Info("Invoice voided",
		zap.String("invoiceID", invoice.ID.String()),
		zap.String("invoiceNumber", invoice.InvoiceNumber))

	utils.InvalidateCacheAsync(s.Redis, "dashboard")
	return invoice, nil
}

// AttachImage stores a new image for the invoice, removes the previous one
// best-effort and persists the new path.
func (s *InvoiceService) AttachImage(id uuid.UUID, filename string, content []byte) (*models.Invoice, *StoredImage, error) {
	invoice, err := s.InvoiceRepo.GetInvoiceByID(id)
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.Images.Save(filename, content)
	if err != nil {
		return nil, nil, err
	}

	// Removing the replaced file is best-effort; a miss is not fatal.
	if invoice.ImagePath != nil && *invoice.ImagePath != "" {
		if !s.Images.Delete(*invoice.ImagePath) {
			config.Logger.Warn("Previous invoice image not found on delete",
				zap.String("invoiceID", invoice.ID.String()),
				zap.String("imagePath", *invoice.ImagePath))
		}
	}

	invoice.ImagePath = &stored.Path
	if err := s.InvoiceRepo.UpdateInvoice(invoice); err != nil {
		return nil, nil, err
	}

	return invoice, stored, nil
}

// SendInvoiceEmail renders and delivers the invoice. On success the sent
// flag and timestamp are set and a PENDING invoice advances to SENT; any
// other state is left alone. On failure the invoice is untouched and the
// error propagates to the caller — there is no automatic retry here.
func (s *InvoiceService) SendInvoiceEmail(ctx context.Context, id uuid.UUID, req *requests.SendInvoiceEmailRequest) (*models.Invoice, error) {
	invoice, err := s.InvoiceRepo.GetInvoiceByID(id)
	if err != nil {
		return nil, err
	}

	email := InvoiceEmail{
		InvoiceID:   invoice.ID,
		Number:      invoice.InvoiceNumber,
		Date:        invoice.IssuedAt.Format("02/01/2006"),
		ClientName:  invoice.ClientName,
		ClientEmail: invoice.ClientEmail,
		Color:       invoice.Color,
		AreaM2:      invoice.AreaM2,
		PricePerM2:  invoice.PricePerM2,
		Subtotal:    invoice.Subtotal,
		Tax:         invoice.Tax,
		Total:       invoice.Total,
		Description: invoice.Description,
		Notes:       invoice.Notes,
		Status:      string(invoice.Status),
	}
	if invoice.ImagePath != nil && *invoice.ImagePath != "" {
		url := s.Images.PublicURL(*invoice.ImagePath)
		email.ImageURL = &url
	}
	if req != nil {
		email.ExtraRecipient = req.ExtraRecipient
		email.PersonalMessage = req.PersonalMessage
	}

	if err := s.Notifier.SendInvoice(ctx, email); err != nil {
		config.Logger.Error("Invoice email delivery failed",
			zap.String("invoiceID", invoice.ID.String()),
			zap.Error(err))
		return nil, err
	}

	now := time.Now()
	invoice.EmailSent = true
	invoice.EmailSentAt = &now
	if invoice.Status == models.InvoicePending {
		invoice.Status = models.InvoiceSent
	}

	if err := s.InvoiceRepo.UpdateInvoice(invoice); err != nil {
		return nil, err
	}

	utils.InvalidateCacheAsync(s.Redis, "dashboard")
	return invoice, nil
}
