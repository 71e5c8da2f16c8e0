package prescription

import (
	"database/sql"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
)

const Kind = "prescriptions"

type Repository = store.Repository[Prescription]

func NewMemoryRepository(now time.Time) *store.Memory[Prescription] {
	return store.NewMemory(SeedPrescriptions(now)...)
}

func NewPostgresRepository(db *sql.DB) *store.Postgres[Prescription] {
	return store.NewPostgres[Prescription](db, Kind)
}
