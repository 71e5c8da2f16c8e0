//go:build integration

package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/testutil"
)

// TestE2E_PatientVisitFlow registers a patient, books and confirms a visit,
// bills it and checks the dashboard overview
func TestE2E_PatientVisitFlow(t *testing.T) {
	ts := SetupE2ETest(t)
	defer ts.Cleanup(t)

	reception := ts.NewClient(testutil.GenerateReceptionistToken(t, ts.PrivateKey))
	accountant := ts.NewClient(testutil.GenerateAccountantToken(t, ts.PrivateKey))

	// Register the patient
	patientResp := reception.POST(t, "/patients", map[string]interface{}{
		"last_name":  "Idrissi",
		"first_name": "Salma",
		"birth_date": "1990-04-12",
		"phone":      "0612345678",
		"sex":        "F",
		"blood_type": "O+",
	})
	testutil.AssertStatusCode(t, patientResp, http.StatusCreated)

	var patientResult struct {
		Patient struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"patient"`
	}
	testutil.DecodeJSON(t, patientResp, &patientResult)
	patientID := patientResult.Patient.ID
	if patientID == "" {
		t.Fatal("Expected patient ID to be generated")
	}
	if patientResult.Patient.Status != "actif" {
		t.Errorf("Expected status 'actif', got '%s'", patientResult.Patient.Status)
	}
	ts.MockPublisher.AssertEventPublished(t, messaging.EventPatientCreated)

	// Book tomorrow at 09:00 and confirm it
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	apptResp := reception.POST(t, "/appointments", map[string]interface{}{
		"patient_id":   patientID,
		"patient_name": "Salma Idrissi",
		"date":         tomorrow,
		"time":         "09:00",
		"type":         "Consultation générale",
		"doctor":       "Dr. Alami",
	})
	testutil.AssertStatusCode(t, apptResp, http.StatusCreated)

	var apptResult struct {
		Appointment struct {
			ID string `json:"id"`
		} `json:"appointment"`
	}
	testutil.DecodeJSON(t, apptResp, &apptResult)

	clash := reception.POST(t, "/appointments", map[string]interface{}{
		"patient_id":   patientID,
		"patient_name": "Salma Idrissi",
		"date":         tomorrow,
		"time":         "09:00",
		"type":         "Contrôle",
		"doctor":       "Dr. Alami",
	})
	testutil.AssertStatusCode(t, clash, http.StatusConflict)
	clash.Body.Close()

	confirm := reception.PATCH(t, "/appointments/"+apptResult.Appointment.ID+"/status", map[string]interface{}{
		"status": "confirmee",
	})
	testutil.AssertStatusCode(t, confirm, http.StatusOK)
	confirm.Body.Close()

	// Bill the visit; only accounting may settle it
	payResp := reception.POST(t, "/payments", map[string]interface{}{
		"patient_id":   patientID,
		"patient_name": "Salma Idrissi",
		"amount_due":   500,
		"method":       "carte",
		"type":         "consultation",
	})
	testutil.AssertStatusCode(t, payResp, http.StatusCreated)

	var payResult struct {
		Payment struct {
			ID            string `json:"id"`
			InvoiceNumber string `json:"invoice_number"`
			Status        string `json:"status"`
		} `json:"payment"`
	}
	testutil.DecodeJSON(t, payResp, &payResult)
	if payResult.Payment.Status != "en_attente" {
		t.Errorf("Expected status 'en_attente', got '%s'", payResult.Payment.Status)
	}

	settle := map[string]interface{}{"status": "paye", "amount_paid": 500}
	denied := reception.PATCH(t, "/payments/"+payResult.Payment.ID+"/status", settle)
	testutil.AssertStatusCode(t, denied, http.StatusForbidden)
	denied.Body.Close()

	paid := accountant.PATCH(t, "/payments/"+payResult.Payment.ID+"/status", settle)
	testutil.AssertStatusCode(t, paid, http.StatusOK)

	var paidResult struct {
		Payment struct {
			Remaining float64 `json:"remaining"`
			Status    string  `json:"status"`
		} `json:"payment"`
	}
	testutil.DecodeJSON(t, paid, &paidResult)
	if paidResult.Payment.Status != "paye" || paidResult.Payment.Remaining != 0 {
		t.Errorf("Expected paid invoice with nothing remaining, got %+v", paidResult.Payment)
	}

	// Dashboard overview reflects all of it
	overviewResp := accountant.GET(t, "/reports/overview")
	testutil.AssertStatusCode(t, overviewResp, http.StatusOK)

	var overviewResult struct {
		Overview struct {
			TotalPatients int     `json:"total_patients"`
			MonthRevenue  float64 `json:"month_revenue"`
			Upcoming      []struct {
				ID string `json:"id"`
			} `json:"upcoming"`
		} `json:"overview"`
	}
	testutil.DecodeJSON(t, overviewResp, &overviewResult)

	if overviewResult.Overview.TotalPatients != 1 {
		t.Errorf("Expected 1 patient, got %d", overviewResult.Overview.TotalPatients)
	}
	if overviewResult.Overview.MonthRevenue != 500 {
		t.Errorf("Expected month revenue 500, got %v", overviewResult.Overview.MonthRevenue)
	}
	if len(overviewResult.Overview.Upcoming) != 1 || overviewResult.Overview.Upcoming[0].ID != apptResult.Appointment.ID {
		t.Errorf("Expected the confirmed visit as only upcoming appointment, got %+v", overviewResult.Overview.Upcoming)
	}
}

// TestE2E_DentalTreatmentFlow follows a tooth problem through a session and a payment
func TestE2E_DentalTreatmentFlow(t *testing.T) {
	ts := SetupE2ETest(t)
	defer ts.Cleanup(t)

	doctor := ts.NewClient(testutil.GenerateDoctorToken(t, ts.PrivateKey))

	createResp := doctor.POST(t, "/dental/problems", map[string]interface{}{
		"tooth":        46,
		"patient_id":   "p-46",
		"patient_name": "Youssef Amrani",
		"problem":      "Carie profonde",
		"severity":     "severe",
	})
	testutil.AssertStatusCode(t, createResp, http.StatusCreated)

	var created struct {
		Problem struct {
			ID string `json:"id"`
		} `json:"problem"`
	}
	testutil.DecodeJSON(t, createResp, &created)
	problemPath := "/dental/problems/" + created.Problem.ID

	start := doctor.PATCH(t, problemPath+"/status", map[string]interface{}{"status": "en_cours"})
	testutil.AssertStatusCode(t, start, http.StatusOK)
	start.Body.Close()

	session := doctor.POST(t, problemPath+"/sessions", map[string]interface{}{
		"date":   time.Now().Format("2006-01-02"),
		"doctor": "Dr. Tazi",
		"cost":   600,
		"status": "terminee",
	})
	testutil.AssertStatusCode(t, session, http.StatusCreated)
	session.Body.Close()

	payment := doctor.POST(t, problemPath+"/payments", map[string]interface{}{"amount": 200})
	testutil.AssertStatusCode(t, payment, http.StatusOK)
	payment.Body.Close()

	chartResp := doctor.GET(t, "/dental/patients/p-46/chart")
	testutil.AssertStatusCode(t, chartResp, http.StatusOK)

	var chart struct {
		Chart struct {
			Summary struct {
				Cost      float64 `json:"cost"`
				Paid      float64 `json:"paid"`
				Remaining float64 `json:"remaining"`
			} `json:"summary"`
		} `json:"chart"`
	}
	testutil.DecodeJSON(t, chartResp, &chart)

	if chart.Chart.Summary.Cost != 600 || chart.Chart.Summary.Paid != 200 || chart.Chart.Summary.Remaining != 400 {
		t.Errorf("Expected cost 600, paid 200, remaining 400, got %+v", chart.Chart.Summary)
	}
	ts.MockPublisher.AssertEventCount(t, messaging.EventDentalSessionAdded, 1)
}
