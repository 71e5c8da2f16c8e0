package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/auth"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/config"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/dental"
	apihttp "github.com/WailSalutem-Health-Care/clinic-service/internal/http"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/live"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/prescription"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/reports"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
)

type repositories struct {
	patients      patient.Repository
	appointments  appointment.Repository
	payments      payment.Repository
	prescriptions prescription.Repository
	dental        dental.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("clinic-service starting (env=%s, storage=%s)", cfg.Environment, cfg.StorageDriver)

	// Telemetry
	if cfg.TelemetryEnabled {
		provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics disabled: %v", err)
	}

	// Storage
	repos, database, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if database != nil {
		defer database.Close()
	}

	// Events go to the broker (when enabled) and to live websocket clients
	hub := live.NewHub()
	go hub.Run(ctx)

	publishers := messaging.FanOut{hub}
	if cfg.RabbitMQEnabled {
		rabbit, err := messaging.NewPublisher()
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, events stay local: %v", err)
		} else {
			publishers = append(publishers, rabbit)
		}
	}
	defer publishers.Close()

	patients := patient.NewService(repos.patients, publishers, metrics)
	appointments := appointment.NewService(repos.appointments, publishers, metrics)
	payments := payment.NewService(repos.payments, publishers, metrics)

	services := apihttp.Services{
		Patients:       patients,
		Appointments:   appointments,
		Payments:       payments,
		Prescriptions:  prescription.NewService(repos.prescriptions, publishers, metrics),
		Dental:         dental.NewService(repos.dental, publishers, metrics),
		Reports:        reports.NewService(patients, appointments, payments, metrics),
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        metrics,
	}

	// Auth
	if cfg.AuthEnabled {
		perms, err := auth.LoadPermissions(cfg.PermissionsFile)
		if err != nil {
			log.Fatalf("Failed to load permissions: %v", err)
		}

		authCfg := auth.LoadConfig()
		jwks, err := auth.NewJWKS(authCfg.JWKSURL, 10*time.Minute)
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", authCfg.JWKSURL, err)
		}
		defer jwks.Close()

		services.Verifier = auth.NewVerifier(authCfg, jwks)
		services.Permissions = perms
		log.Printf("✓ Authentication enabled (issuer %s)", authCfg.Issuer)
	} else {
		log.Println("Warning: authentication disabled, every route is public")
	}

	router := apihttp.SetupRouter(services)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apihttp.CORSMiddleware(cfg.AllowedOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("✓ Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// openStorage returns the repositories for the configured driver. The
// database is nil for in-memory storage.
func openStorage(ctx context.Context, cfg config.Config) (repositories, *sql.DB, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Println("Using in-memory storage")
		return memoryRepositories(time.Now(), cfg.SeedData), nil, nil
	}

	database, err := db.Connect()
	if err != nil {
		return repositories{}, nil, err
	}
	if err := db.EnsureSchema(ctx, database); err != nil {
		database.Close()
		return repositories{}, nil, err
	}

	repos := repositories{
		patients:      patient.NewPostgresRepository(database),
		appointments:  appointment.NewPostgresRepository(database),
		payments:      payment.NewPostgresRepository(database),
		prescriptions: prescription.NewPostgresRepository(database),
		dental:        dental.NewPostgresRepository(database),
	}

	if cfg.SeedData {
		if err := seedAll(ctx, repos, time.Now()); err != nil {
			database.Close()
			return repositories{}, nil, err
		}
	}
	return repos, database, nil
}

func memoryRepositories(now time.Time, seeded bool) repositories {
	if !seeded {
		return repositories{
			patients:      store.NewMemory[patient.Patient](),
			appointments:  store.NewMemory[appointment.Appointment](),
			payments:      store.NewMemory[payment.Payment](),
			prescriptions: store.NewMemory[prescription.Prescription](),
			dental:        store.NewMemory[dental.Problem](),
		}
	}
	return repositories{
		patients:      patient.NewMemoryRepository(now),
		appointments:  appointment.NewMemoryRepository(now),
		payments:      payment.NewMemoryRepository(now),
		prescriptions: prescription.NewMemoryRepository(now),
		dental:        dental.NewMemoryRepository(now),
	}
}

// seedAll fills empty collections with the demo records
func seedAll(ctx context.Context, repos repositories, now time.Time) error {
	counts := make(map[string]int)
	var err error

	if counts[patient.Kind], err = store.Seed(ctx, repos.patients, patient.SeedPatients(now)); err != nil {
		return err
	}
	if counts[appointment.Kind], err = store.Seed(ctx, repos.appointments, appointment.SeedAppointments(now)); err != nil {
		return err
	}
	if counts[payment.Kind], err = store.Seed(ctx, repos.payments, payment.SeedPayments(now)); err != nil {
		return err
	}
	if counts[prescription.Kind], err = store.Seed(ctx, repos.prescriptions, prescription.SeedPrescriptions(now)); err != nil {
		return err
	}
	if counts[dental.Kind], err = store.Seed(ctx, repos.dental, dental.SeedProblems(now)); err != nil {
		return err
	}

	log.Printf("✓ Seed data ready: %v", counts)
	return nil
}
