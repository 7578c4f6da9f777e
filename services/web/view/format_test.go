package view

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		4.5:  "$4.50",
		15:   "$15.00",
		3:    "$3.00",
		0:    "$0.00",
		2.25: "$2.25",
	}
	for in, want := range cases {
		if got := FormatPrice(in); got != want {
			t.Fatalf("FormatPrice(%v): expected %s, got %s", in, want, got)
		}
	}
}

func TestPerHourLabel(t *testing.T) {
	if got := PerHourLabel(4.5); got != "$4.50 / hour" {
		t.Fatalf("expected $4.50 / hour, got %s", got)
	}
}

func TestFormatRating(t *testing.T) {
	if got := FormatRating(4.9); got != "4.9" {
		t.Fatalf("expected 4.9, got %s", got)
	}
	if got := FormatRating(5); got != "5" {
		t.Fatalf("expected 5, got %s", got)
	}
}

func TestFeatureIcon(t *testing.T) {
	cases := map[string]string{
		"CCTV":        "fa-video",
		"Underground": "fa-warehouse",
		"EV Charging": "fa-check",
		"anything":    "fa-check",
	}
	for in, want := range cases {
		if got := FeatureIcon(in); got != want {
			t.Fatalf("FeatureIcon(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestSearchHeading(t *testing.T) {
	if got := SearchHeading(""); got != "Parking in your area" {
		t.Fatalf("unexpected heading %q", got)
	}
	if got := SearchHeading("Downtown"); got != "Parking in Downtown" {
		t.Fatalf("unexpected heading %q", got)
	}
}
