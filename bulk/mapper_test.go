package bulk

import (
	"reflect"
	"testing"
)

func TestMapRow_HeaderAliases(t *testing.T) {
	row := map[string]string{
		"Title":         "2BHK in Baner",
		"property_type": "Apartment",
		"Transaction":   "Sell",
		"price":         "85,00,000",
		"Area":          "980",
		"area unit":     "SqFt",
		"Locality":      "Baner",
		"address":       "12 Sunshine Residency, Baner, Pune",
		"owner name":    "Anil",
		"owner mobile":  "9876543210",
		"listing_type":  "Open Market",
	}

	in := MapRow(row)

	if in.Title != "2BHK in Baner" {
		t.Fatalf("title not mapped: %q", in.Title)
	}
	if in.PropertyType != "Apartment" {
		t.Fatalf("propertyType not mapped: %q", in.PropertyType)
	}
	if in.TransactionType != "sale" {
		t.Fatalf("expected transactionType sale, got %q", in.TransactionType)
	}
	if in.SizeUnit != "sq.ft" {
		t.Fatalf("expected sizeUnit sq.ft, got %q", in.SizeUnit)
	}
	if in.ListingType != "shared" {
		t.Fatalf("expected listingType shared, got %q", in.ListingType)
	}
	if in.FullAddress != "12 Sunshine Residency, Baner, Pune" {
		t.Fatalf("fullAddress not mapped: %q", in.FullAddress)
	}
}

func TestMapRow_EnumNormalization(t *testing.T) {
	cases := []struct {
		field    string
		raw      string
		expected string
	}{
		{"sizeUnit", "  SQ FT ", "sq.ft"},
		{"sizeUnit", "square meters", "sq.m"},
		{"sizeUnit", "Acres", "acre"},
		{"sizeUnit", "hectare", ""},
		{"listingType", "Co-Listing", "colisting"},
		{"listingType", "co listing", "colisting"},
		{"listingType", "OPEN", "shared"},
		{"listingType", "Exclusive", "exclusive"},
		{"transactionType", "RENT", "rent"},
		{"transactionType", "sell", "sale"},
		{"rentFrequency", "Month", "monthly"},
		{"rentFrequency", "Annual", "yearly"},
	}
	for _, tc := range cases {
		in := MapRow(map[string]string{tc.field: tc.raw})
		got := ""
		switch tc.field {
		case "sizeUnit":
			got = in.SizeUnit
		case "listingType":
			got = in.ListingType
		case "transactionType":
			got = in.TransactionType
		case "rentFrequency":
			got = in.RentFrequency
		}
		if got != tc.expected {
			t.Fatalf("%s=%q expected %q, got %q", tc.field, tc.raw, tc.expected, got)
		}
	}
}

func TestMapRow_RentFrequencyInferredFromPrice(t *testing.T) {
	in := MapRow(map[string]string{
		"transactionType": "rent",
		"price":           "25,000 per month",
	})
	if in.RentFrequency != "monthly" {
		t.Fatalf("expected monthly inferred from price, got %q", in.RentFrequency)
	}

	in = MapRow(map[string]string{
		"transactionType": "sale",
		"price":           "25,000 per month",
	})
	if in.RentFrequency != "" {
		t.Fatalf("no inference expected for sale, got %q", in.RentFrequency)
	}
}

func TestMapRow_BooleanTokens(t *testing.T) {
	cases := []struct {
		raw      string
		expected *bool
	}{
		{"true", boolPtr(true)},
		{"YES", boolPtr(true)},
		{"1", boolPtr(true)},
		{"n", boolPtr(false)},
		{"0", boolPtr(false)},
		{"maybe", nil},
		{"", nil},
	}
	for _, tc := range cases {
		in := MapRow(map[string]string{"isPubliclyVisible": tc.raw})
		if tc.expected == nil {
			if in.IsPubliclyVisible != nil {
				t.Fatalf("isPubliclyVisible=%q expected undefined, got %v", tc.raw, *in.IsPubliclyVisible)
			}
			continue
		}
		if in.IsPubliclyVisible == nil || *in.IsPubliclyVisible != *tc.expected {
			t.Fatalf("isPubliclyVisible=%q expected %v, got %v", tc.raw, *tc.expected, in.IsPubliclyVisible)
		}
	}
}

func TestParseScopeOfWork(t *testing.T) {
	cases := []struct {
		in       string
		expected []string
	}{
		{`["photos","site visits"]`, []string{"photos", "site visits"}},
		{"photos | site visits | paperwork", []string{"photos", "site visits", "paperwork"}},
		{"photos, site visits", []string{"photos", "site visits"}},
		{"photos", []string{"photos"}},
		{"", nil},
		{" | | ", nil},
	}
	for _, tc := range cases {
		if got := ParseScopeOfWork(tc.in); !reflect.DeepEqual(got, tc.expected) {
			t.Fatalf("ParseScopeOfWork(%q) expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

func boolPtr(b bool) *bool { return &b }
