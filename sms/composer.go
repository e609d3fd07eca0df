package sms

import (
	"fmt"
	"strings"
)

const MaxMessageLength = 320

// ConsentInput carries the property, owner and agent fields the consent
// message is built from.
type ConsentInput struct {
	OwnerName    string
	AgentName    string
	Title        string
	Location     string
	PropertyType string
	BHK          int
	Size         string
	SizeUnit     string
	Price        string
	ListingType  string
	ConsentURL   string
}

type segment struct {
	name string
	text string
}

// ComposeConsentMessage assembles the owner-consent SMS body. When the joined
// segments exceed 320 characters, optional parts are dropped or shortened in a
// fixed priority: the listing-type line first, then the details line, then the
// title and location are shortened, and as a last resort the whole body is
// truncated to 319 characters plus an ellipsis. The price and the review link
// always survive.
func ComposeConsentMessage(in ConsentInput) string {
	segs := buildSegments(in)
	if msg := assemble(segs); len([]rune(msg)) <= MaxMessageLength {
		return msg
	}

	segs = drop(segs, "listing")
	if msg := assemble(segs); len([]rune(msg)) <= MaxMessageLength {
		return msg
	}

	segs = drop(segs, "details")
	if msg := assemble(segs); len([]rune(msg)) <= MaxMessageLength {
		return msg
	}

	segs = replace(segs, "title", titleLine(shorten(in.Title, 40), shorten(in.Location, 25)))
	if msg := assemble(segs); len([]rune(msg)) <= MaxMessageLength {
		return msg
	}

	runes := []rune(assemble(segs))
	return string(runes[:MaxMessageLength-1]) + "…"
}

func buildSegments(in ConsentInput) []segment {
	var segs []segment

	segs = append(segs, segment{
		name: "greeting",
		text: fmt.Sprintf("Hi %s, %s wants to list your property:", in.OwnerName, in.AgentName),
	})

	segs = append(segs, segment{name: "title", text: titleLine(in.Title, in.Location)})

	if details := detailsLine(in); details != "" {
		segs = append(segs, segment{name: "details", text: details})
	}

	if in.Price != "" {
		segs = append(segs, segment{name: "price", text: "Price: " + in.Price})
	}

	segs = append(segs, segment{name: "link", text: "Review & approve: " + in.ConsentURL})

	if in.ListingType != "" {
		segs = append(segs, segment{name: "listing", text: "Listing type: " + in.ListingType})
	}

	return segs
}

func titleLine(title, location string) string {
	line := fmt.Sprintf("%q", title)
	if location != "" {
		line += " in " + location
	}
	return line
}

func detailsLine(in ConsentInput) string {
	var parts []string
	if in.BHK > 0 {
		parts = append(parts, fmt.Sprintf("%d BHK", in.BHK))
	}
	if in.PropertyType != "" {
		parts = append(parts, in.PropertyType)
	}
	if in.Size != "" && in.SizeUnit != "" {
		parts = append(parts, in.Size+" "+in.SizeUnit)
	}
	return strings.Join(parts, ", ")
}

func drop(segs []segment, name string) []segment {
	out := make([]segment, 0, len(segs))
	for _, s := range segs {
		if s.name != name {
			out = append(out, s)
		}
	}
	return out
}

func replace(segs []segment, name, text string) []segment {
	out := make([]segment, len(segs))
	copy(out, segs)
	for i := range out {
		if out[i].name == name {
			out[i].text = text
		}
	}
	return out
}

func assemble(segs []segment) string {
	lines := make([]string, 0, len(segs))
	for _, s := range segs {
		lines = append(lines, s.text)
	}
	return strings.Join(lines, "\n")
}

func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
