package handlers

import (
	"testing"

	"BrokerConnect/models"
)

func TestParsePriceValue(t *testing.T) {
	cases := []struct {
		in       string
		expected float64
	}{
		{"8500000", 8500000},
		{"85,00,000", 8500000},
		{"₹2.4 Cr", 24000000},
		{"2.4 crore", 24000000},
		{"75 Lakh", 7500000},
		{"75 lacs", 7500000},
		{"₹75 L", 7500000},
		{"25k", 25000},
		{"25,000 per month", 25000},
	}
	for _, tc := range cases {
		got, err := parsePriceValue(tc.in)
		if err != nil {
			t.Fatalf("parsePriceValue(%q) error: %v", tc.in, err)
		}
		if got != tc.expected {
			t.Fatalf("parsePriceValue(%q) expected %v, got %v", tc.in, tc.expected, got)
		}
	}

	if _, err := parsePriceValue("price on request"); err == nil {
		t.Fatalf("expected error for a price with no digits")
	}
}

func TestFilterPrice(t *testing.T) {
	properties := []models.Property{
		{Title: "A", Price: "₹2.4 Cr"},
		{Title: "B", Price: "75 Lakh"},
		{Title: "C", Price: "25,000 per month"},
		{Title: "D", Price: "price on request"},
	}

	// Between 50 lakh and 1 crore only B qualifies; unparseable D is kept.
	got := filterPrice(properties, "5000000", "10000000")
	if len(got) != 2 || got[0].Title != "B" || got[1].Title != "D" {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	// Min only.
	got = filterPrice(properties, "10000000", "")
	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "D" {
		t.Fatalf("unexpected min-only result: %+v", got)
	}

	// No bounds passes everything through untouched.
	got = filterPrice(properties, "", "")
	if len(got) != len(properties) {
		t.Fatalf("expected passthrough, got %+v", got)
	}
}
