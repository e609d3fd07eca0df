package utils

import (
	"reflect"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"9876543210", "+919876543210"},
		{"98765 43210", "+919876543210"},
		{"98765-43210", "+919876543210"},
		{"09876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"+91 98765 43210", "+919876543210"},
		{"+44 7911 123456", "+447911123456"},
		{"  +1 (415) 555-2671 ", "+14155552671"},
		{"12345", "+12345"},
		{"", ""},
		{"no digits here", ""},
		{"+", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.expected {
			t.Fatalf("NormalizePhone(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestNormalizePhoneList(t *testing.T) {
	cases := []struct {
		in       string
		expected []string
	}{
		{"9876543210, 9876543211", []string{"+919876543210", "+919876543211"}},
		{"9876543210;9876543210", []string{"+919876543210"}},
		{"9876543210|+919876543210", []string{"+919876543210"}},
		{"9876543210\nabc\n9876543211", []string{"+919876543210", "+919876543211"}},
		{"", nil},
		{"  ,  ;  ", nil},
	}
	for _, tc := range cases {
		if got := NormalizePhoneList(tc.in); !reflect.DeepEqual(got, tc.expected) {
			t.Fatalf("NormalizePhoneList(%q) expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}
