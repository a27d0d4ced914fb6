package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL
// instance on localhost:3306 with a database named 'bazaar_test'; tests
// are skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/bazaar_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"IdempotencyKeys", "Reviews", "OrderItems", "Orders",
		"ProductVariants", "Products", "Shops", "Sessions", "Users",
	}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS Users (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		email VARCHAR(150) NOT NULL UNIQUE,
		name VARCHAR(150) NOT NULL,
		role VARCHAR(20) NOT NULL,
		profileImage VARCHAR(500),
		phone VARCHAR(30),
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL,
		updatedAt DATETIME NOT NULL
	)`

	createSessionsTable := `
	CREATE TABLE IF NOT EXISTS Sessions (
		token VARCHAR(64) NOT NULL PRIMARY KEY,
		userId VARCHAR(64) NOT NULL,
		expiresAt DATETIME NOT NULL,
		createdAt DATETIME NOT NULL,
		INDEX idx_user (userId)
	)`

	createShopsTable := `
	CREATE TABLE IF NOT EXISTS Shops (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		merchantId VARCHAR(64) NOT NULL,
		name VARCHAR(150) NOT NULL,
		description TEXT,
		category VARCHAR(100) NOT NULL,
		address VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		email VARCHAR(150),
		status VARCHAR(30) NOT NULL DEFAULT 'pending_approval',
		isOpen TINYINT(1) NOT NULL DEFAULT 1,
		acceptingOrders TINYINT(1) NOT NULL DEFAULT 1,
		minimumOrder DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		deliveryFee DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL,
		updatedAt DATETIME NOT NULL,
		INDEX idx_merchant (merchantId),
		INDEX idx_status (status)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		shopId VARCHAR(64) NOT NULL,
		name VARCHAR(150) NOT NULL,
		description TEXT,
		category VARCHAR(100) NOT NULL,
		brand VARCHAR(100),
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL,
		updatedAt DATETIME NOT NULL,
		INDEX idx_shop (shopId)
	)`

	createVariantsTable := `
	CREATE TABLE IF NOT EXISTS ProductVariants (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		productId VARCHAR(64) NOT NULL,
		name VARCHAR(150) NOT NULL,
		sku VARCHAR(100) NOT NULL,
		mrp DECIMAL(10,2) NOT NULL,
		sellingPrice DECIMAL(10,2) NOT NULL,
		stockQuantity INT NOT NULL DEFAULT 0,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		FOREIGN KEY (productId) REFERENCES Products(id) ON DELETE CASCADE,
		INDEX idx_product (productId)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id VARCHAR(32) NOT NULL PRIMARY KEY,
		customerId VARCHAR(64) NOT NULL,
		shopId VARCHAR(64) NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL,
		deliveryFee DECIMAL(10,2) NOT NULL,
		totalAmount DECIMAL(10,2) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT 'pending',
		deliveryMode VARCHAR(20) NOT NULL,
		deliveryAddress VARCHAR(255),
		customerNote TEXT,
		merchantNote TEXT,
		createdAt DATETIME NOT NULL,
		updatedAt DATETIME NOT NULL,
		INDEX idx_customer (customerId),
		INDEX idx_shop (shopId)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		orderId VARCHAR(32) NOT NULL,
		productId VARCHAR(64) NOT NULL,
		variantId VARCHAR(64) NOT NULL,
		productName VARCHAR(150) NOT NULL,
		variantName VARCHAR(150) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		unitPrice DECIMAL(10,2) NOT NULL,
		totalPrice DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	createReviewsTable := `
	CREATE TABLE IF NOT EXISTS Reviews (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		customerId VARCHAR(64) NOT NULL,
		shopId VARCHAR(64),
		productId VARCHAR(64),
		orderId VARCHAR(32) NOT NULL UNIQUE,
		rating INT NOT NULL,
		title VARCHAR(200),
		comment TEXT,
		isVerified TINYINT(1) NOT NULL DEFAULT 0,
		isApproved TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL,
		INDEX idx_shop (shopId)
	)`

	createIdempotencyTable := `
	CREATE TABLE IF NOT EXISTS IdempotencyKeys (
		idemKey VARCHAR(128) NOT NULL,
		customerId VARCHAR(64) NOT NULL,
		orderId VARCHAR(32) NOT NULL,
		createdAt DATETIME NOT NULL,
		PRIMARY KEY (idemKey, customerId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Users", createUsersTable},
		{"Sessions", createSessionsTable},
		{"Shops", createShopsTable},
		{"Products", createProductsTable},
		{"ProductVariants", createVariantsTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
		{"Reviews", createReviewsTable},
		{"IdempotencyKeys", createIdempotencyTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
