package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB creates and configures a MySQL connection pool for the given DSN.
// The DSN must include parseTime=true.
func OpenDB(dsn string) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	err = db.Ping()
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		db.Close()
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

// schema creates the three record tables when they do not exist yet.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS flowers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		flower_type VARCHAR(255) NOT NULL DEFAULT '',
		name VARCHAR(255) NOT NULL DEFAULT '',
		quantity DOUBLE NOT NULL DEFAULT 0,
		wholesale_cost DOUBLE NOT NULL DEFAULT 0,
		supplier_id VARCHAR(64) NULL,
		purchase_date VARCHAR(32) NULL,
		boxes INT NULL,
		unit VARCHAR(32) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS supplier_charges (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		charge_type VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NULL,
		amount DOUBLE NOT NULL DEFAULT 0,
		supplier_id VARCHAR(64) NULL,
		charge_date VARCHAR(32) NULL,
		unit_of_charge ENUM('Per Box', 'Per Shipment') NOT NULL DEFAULT 'Per Box',
		box_count INT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
