package payment

import (
	"database/sql"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
)

const Kind = "payments"

type Repository = store.Repository[Payment]

func NewMemoryRepository(now time.Time) *store.Memory[Payment] {
	return store.NewMemory(SeedPayments(now)...)
}

func NewPostgresRepository(db *sql.DB) *store.Postgres[Payment] {
	return store.NewPostgres[Payment](db, Kind)
}
