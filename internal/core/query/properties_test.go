package query

import (
	"brokerage-service/internal/core/domain"
	"testing"
	"time"
)

func sampleCatalog() []domain.Property {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var items []domain.Property
	for i, in := range domain.SampleProperties() {
		items = append(items, domain.NewProperty(in.Title, in, base.Add(time.Duration(i)*time.Minute)))
	}
	return items
}

func titles(items []domain.Property) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ptr[T any](v T) *T { return &v }

func TestFilterProperties(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.PropertyFilters
		want    []string
	}{
		{
			name: "no filters returns newest first",
			want: []string{"Luxury 4BR Duplex", "Commercial Land", "Residential Land"},
		},
		{
			name:    "price range excludes duplex",
			filters: domain.PropertyFilters{MinPrice: ptr(5_000_000.0), MaxPrice: ptr(50_000_000.0)},
			want:    []string{"Commercial Land", "Residential Land"},
		},
		{
			name:    "price bounds are inclusive",
			filters: domain.PropertyFilters{MinPrice: ptr(35_000_000.0), MaxPrice: ptr(35_000_000.0)},
			want:    []string{"Commercial Land"},
		},
		{
			name:    "type is exact",
			filters: domain.PropertyFilters{Type: ptr(domain.TypeLuxuryHome)},
			want:    []string{"Luxury 4BR Duplex"},
		},
		{
			name:    "location is case-insensitive substring",
			filters: domain.PropertyFilters{Location: ptr("LEKKI")},
			want:    []string{"Luxury 4BR Duplex", "Residential Land"},
		},
		{
			name:    "featured",
			filters: domain.PropertyFilters{Featured: ptr(false)},
			want:    []string{"Residential Land"},
		},
		{
			name:    "min bedrooms skips records without bedrooms",
			filters: domain.PropertyFilters{MinBedrooms: ptr(3)},
			want:    []string{"Luxury 4BR Duplex"},
		},
		{
			name:    "status",
			filters: domain.PropertyFilters{Status: ptr(domain.StatusSold)},
			want:    []string{},
		},
		{
			name:    "filters are combined",
			filters: domain.PropertyFilters{Featured: ptr(true), Location: ptr("ajah")},
			want:    []string{"Commercial Land"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(FilterProperties(sampleCatalog(), tt.filters))
			if !equalStrings(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterPropertiesUnparseablePrice(t *testing.T) {
	items := sampleCatalog()
	items[0].Price = "call for price"

	all := FilterProperties(items, domain.PropertyFilters{})
	if len(all) != 3 {
		t.Fatalf("unparseable price must not hide record without price filter, got %d", len(all))
	}
	ranged := FilterProperties(items, domain.PropertyFilters{MinPrice: ptr(0.0)})
	for _, p := range ranged {
		if p.Title == items[0].Title {
			t.Fatalf("record with unparseable price returned for price filter")
		}
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ranged))
	}
}

func TestFilterPropertiesDoesNotMutateInput(t *testing.T) {
	items := sampleCatalog()
	first := items[0].ID
	_ = FilterProperties(items, domain.PropertyFilters{})
	if items[0].ID != first {
		t.Fatalf("input slice reordered")
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]bool{
		"85000000":   true,
		" 12.5 ":     true,
		"0":          true,
		"":           false,
		"-1":         false,
		"NaN":        false,
		"Inf":        false,
		"12,500,000": false,
	}
	for raw, ok := range cases {
		if _, got := ParsePrice(raw); got != ok {
			t.Errorf("ParsePrice(%q) ok=%v, want %v", raw, got, ok)
		}
	}
}

func TestSortByRecencyIsStable(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.Contact{
		{ID: "a", CreatedAt: ts},
		{ID: "b", CreatedAt: ts.Add(time.Hour)},
		{ID: "c", CreatedAt: ts},
	}
	got := SortContacts(items)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if !equalStrings(ids, []string{"b", "a", "c"}) {
		t.Fatalf("unexpected order %v", ids)
	}
	if items[0].ID != "a" {
		t.Fatalf("SortContacts must not reorder its input")
	}
}

func TestFilterInquiries(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.PropertyInquiry{
		{ID: "1", PropertyID: "p1", CreatedAt: ts},
		{ID: "2", PropertyID: "p2", CreatedAt: ts.Add(time.Minute)},
		{ID: "3", PropertyID: "p1", CreatedAt: ts.Add(2 * time.Minute)},
	}
	got := FilterInquiries(items, domain.InquiryFilters{PropertyID: ptr("p1")})
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "1" {
		t.Fatalf("unexpected inquiries %+v", got)
	}
	if all := FilterInquiries(items, domain.InquiryFilters{}); len(all) != 3 || all[0].ID != "3" {
		t.Fatalf("unexpected unfiltered inquiries %+v", all)
	}
}
