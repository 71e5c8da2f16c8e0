package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	ServiceInterface
	updateStatusFunc func(ctx context.Context, id string, req UpdateStatusRequest) (*PaymentView, error)
	createFunc       func(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error)
	statsFunc        func(ctx context.Context) (*FinancialStats, error)
}

func (m *mockService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*PaymentView, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) Stats(ctx context.Context) (*FinancialStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func route(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/payments/stats", h.GetStats).Methods(http.MethodGet)
	r.HandleFunc("/payments", h.CreatePayment).Methods(http.MethodPost)
	r.HandleFunc("/payments/{id}/status", h.UpdatePaymentStatus).Methods(http.MethodPatch)
	return r
}

func TestHandlerUpdatePaymentStatus_PassesAmount(t *testing.T) {
	var got UpdateStatusRequest
	h := NewHandler(&mockService{
		updateStatusFunc: func(ctx context.Context, id string, req UpdateStatusRequest) (*PaymentView, error) {
			got = req
			return &PaymentView{Payment: Payment{ID: id, Status: req.Status}}, nil
		},
	})

	body := bytes.NewBufferString(`{"status":"paye","amount_paid":500}`)
	rec := httptest.NewRecorder()
	route(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/payments/1/status", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got.Status != StatusPaid || got.AmountPaid == nil || *got.AmountPaid != 500 {
		t.Errorf("Unexpected request passed to service: %+v", got)
	}
}

func TestHandlerUpdatePaymentStatus_AmountOptional(t *testing.T) {
	var got UpdateStatusRequest
	h := NewHandler(&mockService{
		updateStatusFunc: func(ctx context.Context, id string, req UpdateStatusRequest) (*PaymentView, error) {
			got = req
			return &PaymentView{}, nil
		},
	})

	rec := httptest.NewRecorder()
	route(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/payments/1/status", bytes.NewBufferString(`{"status":"annule"}`)))

	if rec.Code != http.StatusOK || got.AmountPaid != nil {
		t.Errorf("Expected status-only update, got code %d amount %v", rec.Code, got.AmountPaid)
	}
}

func TestHandlerCreatePayment_DuplicateInvoice(t *testing.T) {
	h := NewHandler(&mockService{
		createFunc: func(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error) {
			return nil, ErrDuplicateInvoice
		},
	})

	rec := httptest.NewRecorder()
	route(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(`{"invoice_number":"F-2024-001"}`)))

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "duplicate_invoice" {
		t.Errorf("Expected duplicate_invoice, got %s", body["error"])
	}
}

func TestHandlerGetStats(t *testing.T) {
	h := NewHandler(&mockService{
		statsFunc: func(ctx context.Context) (*FinancialStats, error) {
			return &FinancialStats{TotalRevenue: 1600, Count: 5}, nil
		},
	})

	rec := httptest.NewRecorder()
	route(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/stats", nil))

	var body struct {
		Success bool           `json:"success"`
		Stats   FinancialStats `json:"stats"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if !body.Success || body.Stats.TotalRevenue != 1600 {
		t.Errorf("Unexpected body: %+v", body)
	}
}

func TestHandlerListPayments_RealService(t *testing.T) {
	svc, _ := newTestService(t)
	h := NewHandler(svc)

	rec := httptest.NewRecorder()
	h.ListPayments(rec, httptest.NewRequest(http.MethodGet, "/payments?status=paye&limit=1", nil))

	var body struct {
		Payments   []PaymentView `json:"payments"`
		Total      int           `json:"total"`
		Pagination struct {
			TotalRecords int  `json:"total_records"`
			HasNext      bool `json:"has_next"`
		} `json:"pagination"`
	}
	json.NewDecoder(rec.Body).Decode(&body)

	if len(body.Payments) != 1 || body.Total != 2 {
		t.Errorf("Expected one of two paid payments, got %d of %d", len(body.Payments), body.Total)
	}
	if body.Pagination.TotalRecords != 2 || !body.Pagination.HasNext {
		t.Errorf("Unexpected pagination: %+v", body.Pagination)
	}
}
