package sms

import (
	"strings"
	"testing"
)

func baseInput() ConsentInput {
	return ConsentInput{
		OwnerName:    "Ramesh Kumar",
		AgentName:    "Priya Sharma",
		Title:        "Spacious 3BHK with park view",
		Location:     "Andheri West, Mumbai",
		PropertyType: "Apartment",
		BHK:          3,
		Size:         "1450",
		SizeUnit:     "sq.ft",
		Price:        "₹2.4 Cr",
		ListingType:  "exclusive",
		ConsentURL:   "https://example.com/consent/0123456789abcdef0123456789abcdef",
	}
}

func TestComposeConsentMessage_ContainsCoreFields(t *testing.T) {
	msg := ComposeConsentMessage(baseInput())
	for _, want := range []string{"Ramesh Kumar", "Priya Sharma", "Spacious 3BHK with park view", "₹2.4 Cr", "https://example.com/consent/"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeConsentMessage_Deterministic(t *testing.T) {
	in := baseInput()
	first := ComposeConsentMessage(in)
	second := ComposeConsentMessage(in)
	if first != second {
		t.Fatalf("composer is not deterministic:\n%s\n---\n%s", first, second)
	}
}

func TestComposeConsentMessage_NeverExceedsLimit(t *testing.T) {
	long := strings.Repeat("Very Long Piece Of Text ", 40)
	cases := []ConsentInput{
		baseInput(),
		func() ConsentInput {
			in := baseInput()
			in.Title = long
			return in
		}(),
		func() ConsentInput {
			in := baseInput()
			in.Title = long
			in.Location = long
			in.PropertyType = long
			in.Price = long
			return in
		}(),
		func() ConsentInput {
			in := baseInput()
			in.OwnerName = long
			in.AgentName = long
			return in
		}(),
	}
	for i, in := range cases {
		msg := ComposeConsentMessage(in)
		if n := len([]rune(msg)); n > MaxMessageLength {
			t.Fatalf("case %d: message length %d exceeds %d", i, n, MaxMessageLength)
		}
	}
}

func TestComposeConsentMessage_DropsListingLineFirst(t *testing.T) {
	in := baseInput()
	in.Title = strings.Repeat("T", 120)
	in.Location = strings.Repeat("L", 80)

	msg := ComposeConsentMessage(in)
	if strings.Contains(msg, "Listing type:") {
		t.Fatalf("expected listing line to be dropped first:\n%s", msg)
	}
	if !strings.Contains(msg, "Price: ₹2.4 Cr") {
		t.Fatalf("price must survive truncation:\n%s", msg)
	}
	if !strings.Contains(msg, "Review & approve:") {
		t.Fatalf("review link must survive truncation:\n%s", msg)
	}
}

func TestComposeConsentMessage_HardTruncation(t *testing.T) {
	// Nothing droppable or shortenable helps once the greeting itself is
	// oversized, so the body must end in the truncation ellipsis at the limit.
	in := baseInput()
	in.OwnerName = strings.Repeat("O", 200)
	in.AgentName = strings.Repeat("A", 200)

	msg := ComposeConsentMessage(in)
	if n := len([]rune(msg)); n != MaxMessageLength {
		t.Fatalf("expected exactly %d runes after hard truncation, got %d", MaxMessageLength, n)
	}
	if !strings.HasSuffix(msg, "…") {
		t.Fatalf("expected truncation ellipsis:\n%s", msg)
	}
}

func TestComposeConsentMessage_DescriptionNeverIncluded(t *testing.T) {
	// The composer has no description input at all; this guards against one
	// being threaded through the details line by accident.
	msg := ComposeConsentMessage(baseInput())
	lines := strings.Split(msg, "\n")
	if len(lines) > 6 {
		t.Fatalf("unexpected extra segments: %d lines\n%s", len(lines), msg)
	}
}

func TestShorten(t *testing.T) {
	cases := []struct {
		in       string
		max      int
		expected string
	}{
		{"short", 40, "short"},
		{strings.Repeat("a", 40), 40, strings.Repeat("a", 40)},
		{strings.Repeat("a", 41), 40, strings.Repeat("a", 39) + "…"},
	}
	for _, tc := range cases {
		if got := shorten(tc.in, tc.max); got != tc.expected {
			t.Fatalf("shorten(%q, %d) expected %q, got %q", tc.in, tc.max, tc.expected, got)
		}
	}
}
