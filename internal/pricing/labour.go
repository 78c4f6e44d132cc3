package pricing

import (
	"fmt"
	"strings"

	"bilty-backend/internal/models"
)

// CalculateLabour computes the loading/unloading charge. An empty unit means
// the caller didn't specify one and defaults to per-nag; anything else
// unrecognized is rejected.
func CalculateLabour(packages, weight, rate float64, unit models.LabourUnit) (float64, error) {
	if unit == "" {
		unit = models.LabourUnitPerNag
	}
	switch unit {
	case models.LabourUnitPerKg:
		return Round2(weight * rate), nil
	case models.LabourUnitPerNag:
		return Round2(packages * rate), nil
	case models.LabourUnitPerBilty:
		return Round2(rate), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabourUnit, unit)
	}
}

type CityInfo struct {
	Name string
	Code string
}

// LabourDefaults: fallback labour rates used when no contract covers the
// selection. The hub city (our own station) loads cheaper than outstation
// destinations; both rates and the marker come from configuration.
type LabourDefaults struct {
	HubMarker   string
	HubRate     float64
	GeneralRate float64
}

// DefaultLabourRate picks the fallback rate for a destination. The hub is
// matched case-insensitively against the city name or code containing the
// configured marker.
func DefaultLabourRate(city CityInfo, d LabourDefaults) float64 {
	marker := strings.ToUpper(strings.TrimSpace(d.HubMarker))
	if marker != "" {
		if strings.Contains(strings.ToUpper(city.Name), marker) ||
			strings.Contains(strings.ToUpper(city.Code), marker) {
			return d.HubRate
		}
	}
	return d.GeneralRate
}
