//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/auth"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/dental"
	httpserver "github.com/WailSalutem-Health-Care/clinic-service/internal/http"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/prescription"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/reports"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/testutil"
)

var kinds = []string{patient.Kind, appointment.Kind, payment.Kind, prescription.Kind, dental.Kind}

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest wires every service over a real Postgres database behind the
// full router with JWT auth and the role map from config/permissions.yml
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db, kinds...)

	mockPublisher := testutil.NewMockPublisher()

	perms, err := auth.LoadPermissions("../../config/permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	verifier, privateKey := testutil.CreateTestVerifier(t)

	patients := patient.NewService(patient.NewPostgresRepository(db), mockPublisher, nil)
	appointments := appointment.NewService(appointment.NewPostgresRepository(db), mockPublisher, nil)
	payments := payment.NewService(payment.NewPostgresRepository(db), mockPublisher, nil)

	router := httpserver.SetupRouter(httpserver.Services{
		Patients:      patients,
		Appointments:  appointments,
		Payments:      payments,
		Prescriptions: prescription.NewService(prescription.NewPostgresRepository(db), mockPublisher, nil),
		Dental:        dental.NewService(dental.NewPostgresRepository(db), mockPublisher, nil),
		Reports:       reports.NewService(patients, appointments, payments, nil),
		Verifier:      verifier,
		Permissions:   perms,
	})

	return &TestServer{
		Server:        httptest.NewServer(router),
		DB:            db,
		MockPublisher: mockPublisher,
		PrivateKey:    privateKey,
	}
}

// Cleanup cleans up all test resources
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	ts.Server.Close()
	testutil.CleanupTestDB(t, ts.DB, kinds...)
	ts.DB.Close()
}

// NewClient creates a new HTTP test client for this server with the given token
func (ts *TestServer) NewClient(token string) *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
