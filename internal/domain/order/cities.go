package order

import "strings"

// DefaultCity is the catch-all serviceability bucket. Searches scoped to an
// unrecognized city code see the unfiltered catalog rather than an empty one.
const DefaultCity = "default"

// STD-code to city mapping for the serviceability filter. Codes arrive as
// "std:080" or "std080".
var cityCodes = map[string]string{
	"std011":  "Delhi",
	"std022":  "Mumbai",
	"std033":  "Kolkata",
	"std040":  "Hyderabad",
	"std044":  "Chennai",
	"std079":  "Ahmedabad",
	"std080":  "Bengaluru",
	"std0120": "Noida",
	"std0124": "Gurugram",
	"std0141": "Jaipur",
	"std020":  "Pune",
	"std0522": "Lucknow",
	"std0512": "Kanpur",
	"std0172": "Chandigarh",
	"std0484": "Kochi",
}

// MapCityCode resolves a protocol city code to a city name, falling back to
// DefaultCity for empty or unknown codes.
func MapCityCode(code string) string {
	if code == "" {
		return DefaultCity
	}
	normalized := "std" + strings.TrimPrefix(strings.TrimPrefix(code, "std:"), "std")
	if city, ok := cityCodes[normalized]; ok {
		return city
	}
	return DefaultCity
}
