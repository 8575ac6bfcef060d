package migrations

import (
	"database/sql"
	"time"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'CUSTOMER',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS categories (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL,
		parent_id CHAR(36) NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DOUBLE NOT NULL,
		stock INT NOT NULL,
		images TEXT NOT NULL,
		category_id CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	);`,
	`CREATE TABLE IF NOT EXISTS carts (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id CHAR(36) PRIMARY KEY,
		cart_id CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		quantity INT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY cart_product_idx (cart_id, product_id),
		FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(id)
	);`,
	`CREATE TABLE IF NOT EXISTS wishlists (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS wishlist_items (
		id CHAR(36) PRIMARY KEY,
		wishlist_id CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY wishlist_product_idx (wishlist_id, product_id),
		FOREIGN KEY (wishlist_id) REFERENCES wishlists(id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(id)
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		status VARCHAR(20) NOT NULL,
		total DOUBLE NOT NULL,
		address VARCHAR(500) NOT NULL,
		payment_id VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id CHAR(36) PRIMARY KEY,
		order_id CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		quantity INT NOT NULL,
		price DOUBLE NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(id)
	);`,
}

// AutoMigrate creates every table if it does not exist. Statement order
// matters: parents before children.
func AutoMigrate(db *sql.DB, retries int) error {
	for _, query := range tables {
		if err := execWithRetry(db, query, retries); err != nil {
			return err
		}
	}
	return nil
}

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	for i := 0; err != nil && i < retries; i++ {
		time.Sleep(1 * time.Second)
		_, err = db.Exec(query)
	}
	return err
}
