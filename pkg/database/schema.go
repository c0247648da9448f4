package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/brgy-tracker-api/pkg/config"
)

// tableDDL lists the tables in creation order. {{id}} is replaced by the
// dialect's auto-increment primary key declaration.
var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS seniors (
		id {{id}},
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		middle_name VARCHAR(100),
		birth_date DATE NOT NULL,
		gender VARCHAR(20) NOT NULL,
		address VARCHAR(255) NOT NULL,
		contact_number VARCHAR(20),
		osca_id VARCHAR(50) UNIQUE,
		barangay VARCHAR(100) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		notes VARCHAR(1000),
		created_at DATE NOT NULL,
		updated_at DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pwds (
		id {{id}},
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		middle_name VARCHAR(100),
		birth_date DATE NOT NULL,
		gender VARCHAR(20) NOT NULL,
		address VARCHAR(255) NOT NULL,
		contact_number VARCHAR(20),
		pwd_id VARCHAR(50) UNIQUE,
		disability_type VARCHAR(100) NOT NULL,
		barangay VARCHAR(100) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		notes VARCHAR(1000),
		created_at DATE NOT NULL,
		updated_at DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS benefits (
		id {{id}},
		beneficiary_type VARCHAR(20) NOT NULL,
		beneficiary_id INTEGER NOT NULL,
		benefit_type VARCHAR(100) NOT NULL,
		amount DOUBLE PRECISION,
		description VARCHAR(500),
		distribution_date DATE NOT NULL,
		distributed_by VARCHAR(100),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATE NOT NULL,
		updated_at DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id {{id}},
		beneficiary_type VARCHAR(20) NOT NULL,
		beneficiary_id INTEGER NOT NULL,
		visit_date DATE NOT NULL,
		visit_time VARCHAR(20),
		visit_type VARCHAR(50) NOT NULL,
		purpose VARCHAR(500),
		visited_by VARCHAR(100),
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		notes VARCHAR(1000),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assistance_drives (
		id {{id}},
		drive_name VARCHAR(200) NOT NULL,
		drive_type VARCHAR(50) NOT NULL,
		target_beneficiaries VARCHAR(20) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		location VARCHAR(255) NOT NULL,
		description VARCHAR(1000),
		organizer VARCHAR(100),
		status VARCHAR(20) NOT NULL DEFAULT 'planned',
		participants_count INTEGER DEFAULT 0,
		created_at DATE NOT NULL,
		updated_at DATE NOT NULL
	)`,
}

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == config.DriverPostgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, ddl := range tableDDL {
		stmt := strings.ReplaceAll(ddl, "{{id}}", idColumn)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return tx.Commit()
}
