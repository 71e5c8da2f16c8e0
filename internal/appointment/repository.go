package appointment

import (
	"database/sql"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
)

const Kind = "appointments"

type Repository = store.Repository[Appointment]

func NewMemoryRepository(now time.Time) *store.Memory[Appointment] {
	return store.NewMemory(SeedAppointments(now)...)
}

func NewPostgresRepository(db *sql.DB) *store.Postgres[Appointment] {
	return store.NewPostgres[Appointment](db, Kind)
}
