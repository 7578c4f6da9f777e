package view

import (
	"fmt"
	"strconv"
	"strings"
)

// Categories are the shortcut chips on the home view.
var Categories = []string{"Underground", "EV Charging", "CCTV", "Overnight", "Valet", "Monthly"}

// ImagePlaceholder replaces images that fail to load.
const ImagePlaceholder = "/static/placeholder.svg"

// FormatPrice renders a currency amount with two decimals, e.g. $4.50.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// PerHourLabel is the detail page price line, e.g. $4.50 / hour.
func PerHourLabel(pricePerHour float64) string {
	return FormatPrice(pricePerHour) + " / hour"
}

// FormatRating uses the shortest decimal form: 4.9, 5.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FeatureIcon picks an icon class for a feature tag.
func FeatureIcon(feature string) string {
	switch feature {
	case "CCTV":
		return "fa-video"
	case "Underground":
		return "fa-warehouse"
	default:
		return "fa-check"
	}
}

func SearchHeading(query string) string {
	if strings.TrimSpace(query) == "" {
		return "Parking in your area"
	}
	return "Parking in " + query
}
