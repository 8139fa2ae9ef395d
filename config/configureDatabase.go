package config

import (
	"fmt"
	"log"
	"time"

	"invoicing-backend/db/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// allModels lists every model that gets migrated. This is the only place a
// new model needs to be added.
var allModels = []interface{}{
	&models.Client{},
	&models.Product{},
	&models.Invoice{},
	&models.InvoiceLine{},
	&models.EmailLog{},
}

func ConfigureDatabase() *gorm.DB {
	host := GetEnv("DB_HOST")
	user := GetEnv("POSTGRES_USER")
	password := GetEnv("POSTGRES_PASSWORD")
	dbname := GetEnv("POSTGRES_DB")
	port := GetEnv("DB_PORT")
	timezone := GetEnvOr("DB_TIMEZONE", "America/Costa_Rica")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		host, user, password, dbname, port, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("[DB-CONNECT] Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("failed to migrate tables: %v", err)
	}
	log.Println("Tables migrated successfully")

	// Connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("[DB-POOL] Failed to get underlying DB connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	log.Println("[DB-STATUS] Database setup complete")
	return db
}
