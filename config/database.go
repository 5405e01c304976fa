package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

var DB *gorm.DB

func getDBConfigByEnv(env string) string {
	var user, password, host, port, name string

	switch env {
	case "dev":
		user = os.Getenv("DEV_DB_USER")
		password = os.Getenv("DEV_DB_PASSWORD")
		host = os.Getenv("DEV_DB_HOST")
		port = os.Getenv("DEV_DB_PORT")
		name = os.Getenv("DEV_DB_NAME")
	case "prod":
		user = os.Getenv("PROD_DB_USER")
		password = os.Getenv("PROD_DB_PASSWORD")
		host = os.Getenv("PROD_DB_HOST")
		port = os.Getenv("PROD_DB_PORT")
		name = os.Getenv("PROD_DB_NAME")
	default:
		log.Fatalf("Unknown environment: %s", env)
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		host, user, password, name, port)
}

func ConnectDB() {
	var err error
	env := os.Getenv("ENV")
	dsn := getDBConfigByEnv(env)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Fail to connect to db : %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Fail to migrate db : %v", err)
	}

	fmt.Println("Successfully connected to db")
}

// Migrate creates the schema and the no-overlap exclusion constraint on
// reservations. The constraint is the store-level backstop for the
// availability check: two racing inserts for the same property and
// intersecting [start, end) ranges cannot both commit.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Amenity{},
		&models.Property{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	if !db.Migrator().HasConstraint(&models.Reservation{}, "reservations_no_overlap") {
		if err := db.Exec(
			"ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap " +
				"EXCLUDE USING gist (property_id WITH =, daterange(start_date, end_date) WITH &&)",
		).Error; err != nil {
			return err
		}
	}

	return nil
}
