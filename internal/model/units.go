package model

import (
	"fmt"
	"strings"
)

// Unit is the energy unit used for console output.
type Unit string

const (
	UnitWh  Unit = "Wh"
	UnitKWh Unit = "kWh"
	UnitJ   Unit = "J"
)

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kwh":
		return UnitKWh, nil
	case "wh":
		return UnitWh, nil
	case "j":
		return UnitJ, nil
	default:
		return "", fmt.Errorf("unsupported unit: %q", s)
	}
}

// Convert expresses an amount of Wh in u.
func (u Unit) Convert(wh float64) float64 {
	switch u {
	case UnitWh:
		return wh
	case UnitJ:
		return wh * 3600
	default:
		return wh / 1000
	}
}
