package dental

import (
	"database/sql"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
)

const Kind = "tooth_problems"

type Repository = store.Repository[Problem]

func NewMemoryRepository(now time.Time) *store.Memory[Problem] {
	return store.NewMemory(SeedProblems(now)...)
}

func NewPostgresRepository(db *sql.DB) *store.Postgres[Problem] {
	return store.NewPostgres[Problem](db, Kind)
}
