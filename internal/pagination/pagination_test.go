package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseParams(t *testing.T) {
	testCases := []struct {
		query string
		page  int
		limit int
	}{
		{"", DefaultPage, DefaultLimit},
		{"?page=3&limit=5", 3, 5},
		{"?page=0&limit=-1", DefaultPage, DefaultLimit},
		{"?page=abc", DefaultPage, DefaultLimit},
		{"?limit=1000", DefaultPage, MaxLimit},
	}

	for _, tc := range testCases {
		p := ParseParams(httptest.NewRequest("GET", "/patients"+tc.query, nil))
		if p.Page != tc.page || p.Limit != tc.limit {
			t.Errorf("%q: expected page=%d limit=%d, got %+v", tc.query, tc.page, tc.limit, p)
		}
	}
}

func TestRequested(t *testing.T) {
	if Requested(httptest.NewRequest("GET", "/patients?status=actif", nil)) {
		t.Error("Expected no pagination without page/limit")
	}
	if !Requested(httptest.NewRequest("GET", "/patients?limit=2", nil)) {
		t.Error("Expected pagination with limit")
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Slice(items, Params{Page: 2, Limit: 2})
	if len(page) != 2 || page[0] != 3 || page[1] != 4 {
		t.Errorf("Expected [3 4], got %v", page)
	}
	if meta.TotalPages != 3 || !meta.HasNext || !meta.HasPrevious || meta.TotalRecords != 5 {
		t.Errorf("Unexpected meta: %+v", meta)
	}

	last, meta := Slice(items, Params{Page: 3, Limit: 2})
	if len(last) != 1 || last[0] != 5 || meta.HasNext {
		t.Errorf("Expected [5] and no next page, got %v %+v", last, meta)
	}

	past, _ := Slice(items, Params{Page: 9, Limit: 2})
	if len(past) != 0 {
		t.Errorf("Expected empty page, got %v", past)
	}

	empty, meta := Slice([]int{}, Params{Page: 1, Limit: 10})
	if len(empty) != 0 || meta.TotalPages != 1 {
		t.Errorf("Unexpected empty result: %v %+v", empty, meta)
	}
}
