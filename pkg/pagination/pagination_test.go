package pagination

import (
	"net/url"
	"testing"
)

func TestParseParams_Defaults(t *testing.T) {
	params := ParseParams(url.Values{}, 10, 100)
	if params.Page != 1 || params.Limit != 10 || params.Skip != 0 {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestParseParams_PageClampsToOne(t *testing.T) {
	for _, raw := range []string{"0", "-3", "abc", ""} {
		query := url.Values{"page": {raw}}
		if got := ParseParams(query, 10, 100).Page; got != 1 {
			t.Fatalf("page %q: expected 1, got %d", raw, got)
		}
	}
}

func TestParseParams_LimitClamps(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"500", 100},
		{"100", 100},
		{"0", 1},
		{"-2", 1},
		{"25", 25},
		{"junk", 10},
		{"", 10},
	}
	for _, tt := range tests {
		query := url.Values{"limit": {tt.raw}}
		if got := ParseParams(query, 10, 100).Limit; got != tt.want {
			t.Fatalf("limit %q: expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestParseParams_Skip(t *testing.T) {
	query := url.Values{"page": {"3"}, "limit": {"20"}}
	params := ParseParams(query, 10, 100)
	if params.Skip != 40 {
		t.Fatalf("expected skip 40, got %d", params.Skip)
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantField string
		wantDesc  bool
	}{
		{"defaults", url.Values{}, "created_at", true},
		{"asc", url.Values{"sortBy": {"name"}, "sortOrder": {"asc"}}, "name", false},
		{"anything else means desc", url.Values{"sortBy": {"name"}, "sortOrder": {"descending"}}, "name", true},
		{"disallowed field falls back", url.Values{"sortBy": {"password_hash"}}, "created_at", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort := ParseSort(tt.query, "created_at", "created_at", "name")
			if sort.Field != tt.wantField || sort.Desc != tt.wantDesc {
				t.Fatalf("got %+v, want field=%s desc=%v", sort, tt.wantField, tt.wantDesc)
			}
		})
	}
}

func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		total      int64
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"middle page", 2, 15, 10, 2, false, true},
		{"first of many", 1, 95, 10, 10, true, false},
		{"exact division", 2, 20, 10, 2, false, true},
		{"empty set", 1, 0, 10, 0, false, false},
		{"empty set beyond first page", 3, 0, 10, 0, false, true},
		{"single item", 1, 1, 10, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvelope(tt.page, tt.total, tt.limit)
			if env.TotalPages != tt.totalPages {
				t.Fatalf("totalPages: got %d want %d", env.TotalPages, tt.totalPages)
			}
			if env.HasNextPage != tt.hasNext {
				t.Fatalf("hasNextPage: got %v want %v", env.HasNextPage, tt.hasNext)
			}
			if env.HasPrevPage != tt.hasPrev {
				t.Fatalf("hasPrevPage: got %v want %v", env.HasPrevPage, tt.hasPrev)
			}
			if env.CurrentPage != tt.page || env.TotalItems != tt.total || env.ItemsPerPage != tt.limit {
				t.Fatalf("echoed fields mismatch: %+v", env)
			}
		})
	}
}
