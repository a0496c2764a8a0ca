package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// tables is applied in order; every statement is idempotent.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS user_type (
		id         BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		user_type  VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS "user" (
		user_id    BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name       VARCHAR(50)  NOT NULL DEFAULT '',
		username   VARCHAR(50)  NOT NULL DEFAULT '',
		password   VARCHAR(100) NOT NULL DEFAULT '',
		email      VARCHAR(52)  NOT NULL DEFAULT '',
		"type"     BIGINT REFERENCES user_type (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS pharmacy (
		pharmacy_id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name        VARCHAR(50)  NOT NULL,
		address     VARCHAR(100) NOT NULL DEFAULT '',
		lat         NUMERIC      NOT NULL DEFAULT 0,
		lng         NUMERIC      NOT NULL DEFAULT 0,
		contact     VARCHAR(50)  NOT NULL DEFAULT '',
		owner       BIGINT REFERENCES "user" (user_id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS pharmacy_image (
		name        VARCHAR(44) PRIMARY KEY,
		pharmacy_id BIGINT NOT NULL REFERENCES pharmacy (pharmacy_id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS category (
		category_id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name        VARCHAR(50) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		product_id  BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name        VARCHAR(60)  NOT NULL,
		code        VARCHAR(12)  NOT NULL,
		description VARCHAR(200) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS product_category (
		product_id  BIGINT NOT NULL REFERENCES product (product_id),
		category_id BIGINT NOT NULL REFERENCES category (category_id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		PRIMARY KEY (product_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_image (
		name       VARCHAR(44) PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES product (product_id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		product_id  BIGINT  NOT NULL REFERENCES product (product_id),
		pharmacy_id BIGINT  NOT NULL REFERENCES pharmacy (pharmacy_id),
		stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		price       NUMERIC NOT NULL CHECK (price >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		PRIMARY KEY (product_id, pharmacy_id)
	)`,
	`CREATE TABLE IF NOT EXISTS advertisement (
		advertisement_id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		advertisement_title       VARCHAR(25) NOT NULL,
		advertisement_description VARCHAR(50) NOT NULL,
		advertisement_image       VARCHAR(50) NOT NULL,
		owner                     BIGINT REFERENCES "user" (user_id),
		created_at                TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE INDEX IF NOT EXISTS user_type_idx ON "user" ("type")`,
	`CREATE INDEX IF NOT EXISTS pharmacy_owner_idx ON pharmacy (owner)`,
	`CREATE INDEX IF NOT EXISTS pharmacy_image_pharmacy_idx ON pharmacy_image (pharmacy_id)`,
	`CREATE INDEX IF NOT EXISTS product_category_category_idx ON product_category (category_id)`,
	`CREATE INDEX IF NOT EXISTS product_image_product_idx ON product_image (product_id)`,
	`CREATE INDEX IF NOT EXISTS inventory_pharmacy_idx ON inventory (pharmacy_id)`,
	`CREATE INDEX IF NOT EXISTS advertisement_owner_idx ON advertisement (owner)`,
}

// Migrate creates schema and every table inside it in one transaction.
func Migrate(ctx context.Context, db *sqlx.DB, schema string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ident := pq.QuoteIdentifier(schema)
	if _, err := tx.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+ident); err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}
	if _, err := tx.ExecContext(ctx, "SET LOCAL search_path TO "+ident); err != nil {
		return fmt.Errorf("set search_path: %w", err)
	}
	for i, stmt := range tables {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return tx.Commit()
}
