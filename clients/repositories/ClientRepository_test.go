package repositories

import (
	"errors"
	"fmt"
	"testing"

	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupClientTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	config.Logger = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newClient(nationalID string) *models.Client {
	email := "ana@example.com"
	return &models.Client{
		FirstName:  "Ana",
		LastName:   "Solano",
		NationalID: nationalID,
		Email:      &email,
		Active:     true,
	}
}

func TestCreateClientRejectsDuplicateNationalID(t *testing.T) {
	db := setupClientTestDB(t, "clients_duplicate")
	repo := NewClientRepository(db)

	if _, err := repo.CreateClient(newClient("101110111")); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err := repo.CreateClient(newClient("101110111"))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict for duplicate national ID, got %v", err)
	}
}

func TestDeactivatedClientStaysResolvable(t *testing.T) {
	db := setupClientTestDB(t, "clients_deactivate")
	repo := NewClientRepository(db)

	created, err := repo.CreateClient(newClient("202220222"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := repo.SetClientActive(created.ID, false); err != nil {
		t.Fatalf("failed to deactivate client: %v", err)
	}

	// Gone from the active listing...
	active, total, err := repo.GetFilteredClients(map[string]string{"active": "true"}, 100, 0)
	if err != nil {
		t.Fatalf("failed to list active clients: %v", err)
	}
	if total != 0 || len(active) != 0 {
		t.Errorf("expected no active clients, got total=%d", total)
	}

	// ...but still resolvable for historical invoices.
	found, err := repo.GetClientByID(created.ID)
	if err != nil {
		t.Fatalf("deactivated client must stay resolvable by ID: %v", err)
	}
	if found.Active {
		t.Error("expected client to be inactive")
	}
}

func TestGetFilteredClientsSearch(t *testing.T) {
	db := setupClientTestDB(t, "clients_search")
	repo := NewClientRepository(db)

	ana := newClient("303330333")
	if _, err := repo.CreateClient(ana); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	luis := newClient("404440444")
	luis.FirstName = "Luis"
	luis.LastName = "Vargas"
	if _, err := repo.CreateClient(luis); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	for _, term := range []string{"solano", "SOLANO", "30333"} {
		clients, total, err := repo.GetFilteredClients(map[string]string{"search": term}, 100, 0)
		if err != nil {
			t.Fatalf("search %q failed: %v", term, err)
		}
		if total != 1 || len(clients) != 1 || clients[0].NationalID != "303330333" {
			t.Errorf("search %q: expected only Ana, got total=%d", term, total)
		}
	}
}

func TestGetClientByNationalID(t *testing.T) {
	db := setupClientTestDB(t, "clients_by_national_id")
	repo := NewClientRepository(db)

	if _, err := repo.CreateClient(newClient("505550555")); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	found, err := repo.GetClientByNationalID("505550555")
	if err != nil {
		t.Fatalf("failed to look up client: %v", err)
	}
	if found.FullName() != "Ana Solano" {
		t.Errorf("unexpected client: %s", found.FullName())
	}

	if _, err := repo.GetClientByNationalID("999999999"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
