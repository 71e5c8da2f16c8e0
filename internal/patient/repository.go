package patient

import (
	"database/sql"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
)

// Kind is the collection name of patients in clinic_records
const Kind = "patients"

// Repository is the storage contract used by Service
type Repository = store.Repository[Patient]

// NewMemoryRepository returns an in-memory repository holding the demo patients
func NewMemoryRepository(now time.Time) *store.Memory[Patient] {
	return store.NewMemory(SeedPatients(now)...)
}

func NewPostgresRepository(db *sql.DB) *store.Postgres[Patient] {
	return store.NewPostgres[Patient](db, Kind)
}
