package order

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	baseDeliveryCharge    = 30.0
	defaultDeliveryCharge = 40.0
	perKmCharge           = 10.0
	freeDistanceKm        = 3.0
	heavyItemCharge       = 20.0
	heavyWeightKg         = 5.0

	basePackingCharge   = 10.0
	perItemCharge       = 5.0
	specialPackCharge   = 15.0

	// TaxRate is the GST applied to the item subtotal.
	TaxRate = 0.18
)

// DeliveryInput carries what the charge heuristics need about the drop
// location and the picked items.
type DeliveryInput struct {
	GPS         string
	AreaCode    string
	TotalWeight float64
}

// DeliveryCharge estimates the delivery charge for a drop location. Missing
// location information yields the flat default.
func DeliveryCharge(in DeliveryInput) float64 {
	if in.GPS == "" && in.AreaCode == "" {
		return defaultDeliveryCharge
	}

	distance := estimateDistance(in.GPS, in.AreaCode)
	charge := baseDeliveryCharge
	if distance > freeDistanceKm {
		charge += (distance - freeDistanceKm) * perKmCharge
	}
	if in.TotalWeight > heavyWeightKg {
		charge += heavyItemCharge
	}
	return charge
}

// estimateDistance derives a rough distance in km from GPS coordinates, or
// from the pincode when no coordinates are present.
func estimateDistance(gps, areaCode string) float64 {
	if gps != "" {
		parts := strings.SplitN(gps, ",", 2)
		if len(parts) == 2 {
			lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errLat == nil && errLng == nil {
				if lat < 0 {
					lat = -lat
				}
				if lng < 0 {
					lng = -lng
				}
				return lat + lng/10
			}
		}
	}
	if len(areaCode) >= 2 {
		if tail, err := strconv.Atoi(areaCode[len(areaCode)-2:]); err == nil {
			return float64(tail)/10 + freeDistanceKm
		}
	}
	return 5
}

// PackingCharge is a base charge plus a per-additional-unit charge, with a
// surcharge when any item needs special packaging.
func PackingCharge(unitCount int, specialPackaging bool) float64 {
	charge := basePackingCharge
	if unitCount > 1 {
		charge += float64(unitCount-1) * perItemCharge
	}
	if specialPackaging {
		charge += specialPackCharge
	}
	return charge
}

// FormatAmount renders a charge the way the protocol prices are quoted.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
