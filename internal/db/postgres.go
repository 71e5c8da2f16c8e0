package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Connect opens the clinic database with OpenTelemetry instrumentation.
// DATABASE_URL wins over the individual DB_* variables when set.
func Connect() (*sql.DB, error) {
	dbname := os.Getenv("DB_NAME")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")

		if host == "" || user == "" || password == "" || dbname == "" {
			return nil, fmt.Errorf("missing required database environment variables")
		}
		if port == "" {
			port = "5432"
		}

		tz := os.Getenv("DB_TIMEZONE")
		if tz == "" {
			tz = "UTC"
		}

		connStr = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			host, port, user, password, dbname, tz,
		)
	}

	return Open(connStr, dbname)
}

// Open connects with an explicit connection string
func Open(connStr, dbname string) (*sql.DB, error) {
	attrs := otelsql.WithAttributes(
		semconv.DBSystemPostgreSQL,
		semconv.DBName(dbname),
	)

	db, err := otelsql.Open("postgres", connStr, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := otelsql.RegisterDBStatsMetrics(db, attrs); err != nil {
		log.Printf("Warning: failed to register database stats metrics: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("✓ Connected to PostgreSQL database (OpenTelemetry enabled)")
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS clinic_records (
	kind       TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	seq        BIGSERIAL,
	body       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS idx_clinic_records_kind_seq ON clinic_records (kind, seq);
CREATE UNIQUE INDEX IF NOT EXISTS idx_clinic_payments_invoice
	ON clinic_records ((body->>'invoice_number')) WHERE kind = 'payments';
`

// EnsureSchema creates the document table shared by every clinic collection
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("✓ Database schema ready")
	return nil
}
