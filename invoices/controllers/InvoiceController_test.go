package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	clients_repositories "invoicing-backend/clients/repositories"
	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/invoices/repositories"
	"invoicing-backend/invoices/routes"
	"invoicing-backend/invoices/services"
	products_repositories "invoicing-backend/products/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubNotifier struct {
	err error
}

func (s *stubNotifier) SendInvoice(context.Context, services.InvoiceEmail) error { return s.err }

type stubImageStore struct{}

func (stubImageStore) Save(string, []byte) (*services.StoredImage, error) {
	return &services.StoredImage{Path: "stub.jpg", URL: "/uploads/stub.jpg"}, nil
}
func (stubImageStore) Delete(string) bool           { return true }
func (stubImageStore) PublicURL(path string) string { return "/uploads/" + path }

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	notifier *stubNotifier
}

func setupInvoiceAPI(t *testing.T, name string) *testEnv {
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

	notifier := &stubNotifier{}
	invoiceRepo := repositories.NewInvoiceRepository(db)
	invoiceService := services.NewInvoiceService(
		invoiceRepo,
		clients_repositories.NewClientRepository(db),
		products_repositories.NewProductRepository(db),
		notifier, stubImageStore{}, nil,
	)

	app := fiber.New()
	routes.InvoiceInitRoutes(app, invoiceRepo, invoiceService)

	return &testEnv{app: app, db: db, notifier: notifier}
}

var seededNationalIDs int

func (e *testEnv) seedClient(t *testing.T) *models.Client {
	t.Helper()
	seededNationalIDs++
	client := &models.Client{
		FirstName:  "Maria",
		LastName:   "Rojas",
		NationalID: fmt.Sprintf("2%08d", seededNationalIDs),
		Active:     true,
	}
	if err := e.db.Create(client).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return client
}

func (e *testEnv) request(t *testing.T, method, target string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}
	return resp
}

func decodeInvoice(t *testing.T, resp *http.Response) *models.Invoice {
	t.Helper()
	var body struct {
		Data models.Invoice `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return &body.Data
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	env := setupInvoiceAPI(t, "api_lifecycle")
	client := env.seedClient(t)

	resp := env.request(t, http.MethodPost, "/api/v1/invoices", fiber.Map{
		"client_id":    client.ID,
		"client_name":  "Maria Rojas",
		"client_email": "maria@example.com",
		"area_m2":      50,
		"price_per_m2": 12000,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeInvoice(t, resp)
	if created.Status != models.InvoicePending {
		t.Errorf("expected PENDING, got %s", created.Status)
	}

	resp = env.request(t, http.MethodGet, "/api/v1/invoices/"+created.ID.String(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 fetching by ID, got %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/api/v1/invoices/number/"+created.InvoiceNumber, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 fetching by number, got %d", resp.StatusCode)
	}
	byNumber := decodeInvoice(t, resp)
	if byNumber.ID != created.ID {
		t.Errorf("number lookup returned a different invoice")
	}

	resp = env.request(t, http.MethodGet, "/api/v1/invoices?status=PENDING", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 listing invoices, got %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodDelete, "/api/v1/invoices/"+created.ID.String(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 voiding invoice, got %d", resp.StatusCode)
	}
	resp = env.request(t, http.MethodDelete, "/api/v1/invoices/"+created.ID.String(), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 voiding twice, got %d", resp.StatusCode)
	}
}

func TestInvoiceNotFoundAndBadIDOverHTTP(t *testing.T) {
	env := setupInvoiceAPI(t, "api_errors")

	resp := env.request(t, http.MethodGet, "/api/v1/invoices/"+uuid.New().String(), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown invoice, got %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed ID, got %d", resp.StatusCode)
	}
}

func TestSendEmailFailureMapsToBadGateway(t *testing.T) {
	env := setupInvoiceAPI(t, "api_email_failure")
	client := env.seedClient(t)

	resp := env.request(t, http.MethodPost, "/api/v1/invoices", fiber.Map{
		"client_id":    client.ID,
		"client_name":  "Maria Rojas",
		"client_email": "maria@example.com",
		"area_m2":      20,
		"price_per_m2": 9000,
	})
	created := decodeInvoice(t, resp)

	env.notifier.err = fmt.Errorf("smtp down: %w", apperr.ErrTransient)
	resp = env.request(t, http.MethodPost, "/api/v1/invoices/"+created.ID.String()+"/send-email", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 for failed delivery, got %d", resp.StatusCode)
	}

	env.notifier.err = nil
	resp = env.request(t, http.MethodPost, "/api/v1/invoices/"+created.ID.String()+"/send-email", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for successful delivery, got %d", resp.StatusCode)
	}
	sent := decodeInvoice(t, resp)
	if sent.Status != models.InvoiceSent || !sent.EmailSent {
		t.Errorf("expected SENT invoice with flag set, got %s / %v", sent.Status, sent.EmailSent)
	}
}
