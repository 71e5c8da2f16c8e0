//go:build integration

package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/testutil"
	"github.com/google/uuid"
)

func newTestPostgres(t *testing.T) *Postgres[testRecord] {
	t.Helper()
	database := testutil.SetupTestDB(t)
	kind := "test_" + uuid.New().String()
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, database, kind)
		database.Close()
	})
	return NewPostgres[testRecord](database, kind)
}

func TestPostgres_CreateGetList_Integration(t *testing.T) {
	ctx := context.Background()
	repo := newTestPostgres(t)

	for _, id := range []string{"b", "a", "c"} {
		if _, err := repo.Create(ctx, testRecord{ID: id, Name: "rec-" + id}); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "rec-a" {
		t.Errorf("Expected rec-a, got %s", got.Name)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 3 || items[0].ID != "b" || items[2].ID != "c" {
		t.Errorf("Expected insertion order [b a c], got %+v", items)
	}
}

func TestPostgres_Duplicate_Integration(t *testing.T) {
	ctx := context.Background()
	repo := newTestPostgres(t)

	if _, err := repo.Create(ctx, testRecord{ID: "a"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, testRecord{ID: "a"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestPostgres_GetNotFound_Integration(t *testing.T) {
	repo := newTestPostgres(t)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_Update_Integration(t *testing.T) {
	ctx := context.Background()
	repo := newTestPostgres(t)
	repo.Create(ctx, testRecord{ID: "a", Paid: 1})

	boom := errors.New("boom")
	if _, err := repo.Update(ctx, "a", func(r *testRecord) error { r.Paid = 50; return boom }); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	got, _ := repo.Get(ctx, "a")
	if got.Paid != 1 {
		t.Errorf("Expected rejected mutation to be discarded, got %v", got.Paid)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Update(ctx, "a", func(r *testRecord) error { r.Paid++; return nil })
		}()
	}
	wg.Wait()

	got, _ = repo.Get(ctx, "a")
	if got.Paid != 11 {
		t.Errorf("Expected 11 after concurrent increments, got %v", got.Paid)
	}
}

func TestPostgres_LockSerializesReplicas_Integration(t *testing.T) {
	ctx := context.Background()
	first := newTestPostgres(t)

	other := testutil.SetupTestDB(t)
	t.Cleanup(func() { other.Close() })
	second := NewPostgres[testRecord](other, first.kind)

	// each writer numbers its record after the ones it can see
	next := func(repo *Postgres[testRecord]) error {
		unlock, err := repo.Lock(ctx, "numbering")
		if err != nil {
			return err
		}
		defer unlock()

		items, err := repo.List(ctx)
		if err != nil {
			return err
		}
		_, err = repo.Create(ctx, testRecord{ID: strconv.Itoa(len(items) + 1)})
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		repo := first
		if i%2 == 1 {
			repo = second
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- next(repo)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Expected every numbered insert to succeed, got %v", err)
		}
	}
	items, _ := first.List(ctx)
	if len(items) != 20 {
		t.Errorf("Expected 20 records, got %d", len(items))
	}
}

type invoiceRecord struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
}

func (r invoiceRecord) RecordID() string { return r.ID }

func TestPostgres_UniqueInvoiceNumber_Integration(t *testing.T) {
	ctx := context.Background()
	database := testutil.SetupTestDB(t)
	repo := NewPostgres[invoiceRecord](database, "payments")

	invoice := "F-TEST-" + uuid.New().String()
	a := invoiceRecord{ID: uuid.New().String(), InvoiceNumber: invoice}
	b := invoiceRecord{ID: uuid.New().String(), InvoiceNumber: invoice}
	t.Cleanup(func() {
		database.Exec("DELETE FROM clinic_records WHERE kind = 'payments' AND id IN ($1, $2)", a.ID, b.ID)
		database.Close()
	})

	if _, err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, b); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for a reused invoice number, got %v", err)
	}
}
