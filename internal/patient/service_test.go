package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/testutil"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *testutil.MockPublisher) {
	t.Helper()
	pub := testutil.NewMockPublisher()
	svc := NewService(NewMemoryRepository(fixedNow), pub, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, pub
}

func validCreateRequest() CreatePatientRequest {
	return CreatePatientRequest{
		LastName:  "Tazi",
		FirstName: "Youssef",
		BirthDate: "2000-02-29",
		Phone:     "+212 6 55 44 33 22",
		Email:     "youssef.tazi@email.com",
		Sex:       SexMale,
		BloodType: "AB+",
		Allergies: []string{" Latex ", ""},
	}
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.List(context.Background(), ListFilter{Search: "amina"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Patients) != 1 || result.Patients[0].FullName() != "Amina Benali" {
		t.Errorf("Expected only Amina Benali, got %+v", result.Patients)
	}
}

func TestList_SearchMatchesPhone(t *testing.T) {
	svc, _ := newTestService(t)

	result, _ := svc.List(context.Background(), ListFilter{Search: "98 76"})
	if len(result.Patients) != 1 || result.Patients[0].ID != "2" {
		t.Errorf("Expected patient 2 by phone, got %+v", result.Patients)
	}
}

func TestList_StatusSentinel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SetStatus(ctx, "3", StatusInactive); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, _ := svc.List(ctx, ListFilter{Status: "tous"})
	if len(all.Patients) != 3 {
		t.Errorf("Expected 3 patients for tous, got %d", len(all.Patients))
	}

	inactive, _ := svc.List(ctx, ListFilter{Status: "inactif"})
	if len(inactive.Patients) != 1 || inactive.Patients[0].ID != "3" {
		t.Errorf("Expected only patient 3, got %+v", inactive.Patients)
	}

	stats := inactive.Stats
	if stats.Total != 3 || stats.Active != 2 || stats.Inactive != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.ActivePercent < 66.6 || stats.ActivePercent > 66.7 {
		t.Errorf("Expected ~66.67%% active, got %v", stats.ActivePercent)
	}
}

func TestList_EmptyRepository(t *testing.T) {
	svc := NewService(storeWithNothing(), nil, nil)

	result, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Stats.ActivePercent != 0 {
		t.Errorf("Expected 0%% active for empty list, got %v", result.Stats.ActivePercent)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}

func TestGet_ComputesAgeAndBadge(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Age != 39 {
		t.Errorf("Expected age 39, got %d", p.Age)
	}
	if p.Badge == nil || p.Badge.Label != "Actif" {
		t.Errorf("Expected Actif badge, got %+v", p.Badge)
	}
}

func TestCreate_Success(t *testing.T) {
	svc, pub := newTestService(t)

	p, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.ID == "" {
		t.Error("Expected generated id")
	}
	if p.Status != StatusActive {
		t.Errorf("Expected status actif, got %s", p.Status)
	}
	if p.RegistrationDate != "2024-06-15" {
		t.Errorf("Expected registration today, got %s", p.RegistrationDate)
	}
	if len(p.Allergies) != 1 || p.Allergies[0] != "Latex" {
		t.Errorf("Expected cleaned allergies, got %v", p.Allergies)
	}

	pub.AssertEventCount(t, messaging.EventPatientCreated, 1)
	data, ok := pub.GetLastEventByKey(messaging.EventPatientCreated).Data().(messaging.PatientCreatedData)
	if !ok || data.PatientID != p.ID {
		t.Errorf("Unexpected event payload: %+v", data)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreatePatientRequest)
	}{
		{"missing last name", func(r *CreatePatientRequest) { r.LastName = " " }},
		{"missing first name", func(r *CreatePatientRequest) { r.FirstName = "" }},
		{"missing phone", func(r *CreatePatientRequest) { r.Phone = "" }},
		{"bad birth date", func(r *CreatePatientRequest) { r.BirthDate = "15/03/1985" }},
		{"future birth date", func(r *CreatePatientRequest) { r.BirthDate = "2030-01-01" }},
		{"bad sex", func(r *CreatePatientRequest) { r.Sex = "X" }},
		{"bad blood type", func(r *CreatePatientRequest) { r.BloodType = "C+" }},
		{"bad email", func(r *CreatePatientRequest) { r.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub := newTestService(t)
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
			pub.AssertEventNotPublished(t, messaging.EventPatientCreated)
		})
	}
}

func TestCreate_BloodTypeOptional(t *testing.T) {
	svc, _ := newTestService(t)
	req := validCreateRequest()
	req.BloodType = ""

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Errorf("Expected blood type to be optional, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, pub := newTestService(t)
	phone := "+212 6 00 00 00 00"

	p, err := svc.Update(context.Background(), "2", UpdatePatientRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Phone != phone {
		t.Errorf("Expected phone %s, got %s", phone, p.Phone)
	}
	if p.LastName != "Alami" || p.BloodType != "O-" {
		t.Errorf("Expected other fields untouched, got %+v", p.Patient)
	}
	pub.AssertEventPublished(t, messaging.EventPatientUpdated)
}

func TestUpdate_InvalidFieldLeavesRecordUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	phone := "+212 6 00 00 00 00"
	bad := "Z-"

	_, err := svc.Update(ctx, "2", UpdatePatientRequest{Phone: &phone, BloodType: &bad})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation, got %v", err)
	}

	p, _ := svc.Get(ctx, "2")
	if p.Phone != "+212 6 98 76 54 32" {
		t.Errorf("Expected phone unchanged after failed update, got %s", p.Phone)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	name := "X"

	_, err := svc.Update(context.Background(), "missing", UpdatePatientRequest{LastName: &name})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}

func TestSetStatus_PublishesOnlyOnChange(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SetStatus(ctx, "1", StatusActive); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	pub.AssertEventNotPublished(t, messaging.EventPatientStatusChanged)

	p, err := svc.SetStatus(ctx, "1", StatusInactive)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Status != StatusInactive {
		t.Errorf("Expected inactif, got %s", p.Status)
	}

	data := pub.GetLastEventByKey(messaging.EventPatientStatusChanged).Data().(messaging.StatusChangedData)
	if data.OldStatus != "actif" || data.NewStatus != "inactif" {
		t.Errorf("Unexpected transition payload: %+v", data)
	}
}

func TestSetStatus_Unknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetStatus(context.Background(), "1", Status("archive"))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestAddTreatment_DefaultsToOngoing(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.AddTreatment(context.Background(), "3", AddTreatmentRequest{
		Name:      "Kinésithérapie",
		StartDate: "2024-06-01",
		Doctor:    "Dr. Tazi",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(p.Treatments) != 1 || p.Treatments[0].Status != TreatmentOngoing {
		t.Errorf("Expected one ongoing treatment, got %+v", p.Treatments)
	}
}

func TestAddTreatment_EndBeforeStart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddTreatment(context.Background(), "3", AddTreatmentRequest{
		Name:      "Kinésithérapie",
		StartDate: "2024-06-01",
		EndDate:   "2024-05-01",
		Doctor:    "Dr. Tazi",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestAddSession_CompletedRefreshesLastVisit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.AddSession(ctx, "3", AddSessionRequest{
		Date:   "2024-06-14",
		Time:   "09:30",
		Type:   "Contrôle",
		Doctor: "Dr. Lazrak",
		Status: SessionCompleted,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.LastVisit != "2024-06-14" {
		t.Errorf("Expected last visit 2024-06-14, got %q", p.LastVisit)
	}
	if p.Sessions[0].Duration != 30 {
		t.Errorf("Expected default duration 30, got %d", p.Sessions[0].Duration)
	}

	p, _ = svc.AddSession(ctx, "3", AddSessionRequest{
		Date:   "2024-06-20",
		Time:   "09:30",
		Type:   "Contrôle",
		Doctor: "Dr. Lazrak",
	})
	if p.LastVisit != "2024-06-14" {
		t.Errorf("Expected scheduled session to leave last visit alone, got %q", p.LastVisit)
	}
}

func TestAddPayment_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddPayment(ctx, "2", AddPaymentRequest{Amount: 0, Method: MethodCash}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for zero amount, got %v", err)
	}
	if _, err := svc.AddPayment(ctx, "2", AddPaymentRequest{Amount: 100, Method: "bitcoin"}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown method, got %v", err)
	}

	p, err := svc.AddPayment(ctx, "2", AddPaymentRequest{Amount: 250, Method: MethodCheque, Description: "Bilan"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	last := p.Payments[len(p.Payments)-1]
	if last.Date != "2024-06-15" || last.Status != PaymentPaid {
		t.Errorf("Expected defaults today/paye, got %+v", last)
	}
}

func TestAddPayment_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddPayment(context.Background(), "nope", AddPaymentRequest{Amount: 10, Method: MethodCash})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}

func TestPublishFailure_DoesNotFailMutation(t *testing.T) {
	svc, pub := newTestService(t)
	pub.FailWith(errors.New("broker down"))

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Errorf("Expected create to succeed despite publish failure, got %v", err)
	}
}

func TestAge(t *testing.T) {
	p := Patient{BirthDate: "1985-03-15"}

	if got := p.Age(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)); got != 38 {
		t.Errorf("Expected 38 the day before birthday, got %d", got)
	}
	if got := p.Age(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); got != 39 {
		t.Errorf("Expected 39 on birthday, got %d", got)
	}
	if got := (Patient{BirthDate: "unknown"}).Age(fixedNow); got != 0 {
		t.Errorf("Expected 0 for unparsable birth date, got %d", got)
	}
}

func storeWithNothing() Repository {
	return store.NewMemory[Patient]()
}
