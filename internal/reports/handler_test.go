package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	buildFunc    func(ctx context.Context, rangeKey string) (*Analytics, error)
	overviewFunc func(ctx context.Context) (*Overview, error)
	exportFunc   func(ctx context.Context, section, rangeKey string) (*ExportFile, error)
}

func (m *mockService) Build(ctx context.Context, rangeKey string) (*Analytics, error) {
	return m.buildFunc(ctx, rangeKey)
}

func (m *mockService) Overview(ctx context.Context) (*Overview, error) {
	return m.overviewFunc(ctx)
}

func (m *mockService) Export(ctx context.Context, section, rangeKey string) (*ExportFile, error) {
	return m.exportFunc(ctx, section, rangeKey)
}

func TestHandlerGetAnalytics_PassesRange(t *testing.T) {
	var got string
	h := NewHandler(&mockService{
		buildFunc: func(ctx context.Context, rangeKey string) (*Analytics, error) {
			got = rangeKey
			return &Analytics{Range: Window{Key: rangeKey}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/reports?range=3m", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got != "3m" {
		t.Errorf("Expected range 3m, got %s", got)
	}
}

func TestHandlerGetAnalytics_UnknownRange(t *testing.T) {
	h := NewHandler(&mockService{
		buildFunc: func(ctx context.Context, rangeKey string) (*Analytics, error) {
			return nil, ErrUnknownRange
		},
	})

	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/reports?range=2w", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "validation_error" {
		t.Errorf("Expected validation_error, got %s", body["error"])
	}
}

func TestHandlerExport_WritesCSV(t *testing.T) {
	h := NewHandler(&mockService{
		exportFunc: func(ctx context.Context, section, rangeKey string) (*ExportFile, error) {
			return &ExportFile{Filename: "rapport-" + section + ".csv", Data: []byte("id\n1\n")}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/reports/export?section=patients", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv, got %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "rapport-patients.csv") {
		t.Errorf("Expected filename in disposition, got %s", cd)
	}
	if rec.Body.String() != "id\n1\n" {
		t.Errorf("Unexpected body %q", rec.Body.String())
	}
}

func TestHandlerGetOverview_RealService(t *testing.T) {
	h := NewHandler(seeded().service())

	rec := httptest.NewRecorder()
	h.GetOverview(rec, httptest.NewRequest(http.MethodGet, "/reports/overview", nil))

	var body struct {
		Success  bool     `json:"success"`
		Overview Overview `json:"overview"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if !body.Success || body.Overview.TodayAppointments != 3 {
		t.Errorf("Unexpected body: %+v", body)
	}
}
