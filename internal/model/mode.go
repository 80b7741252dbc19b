package model

import "fmt"

// Mode selects how a year is simulated.
// Keep these values stable; they are used in CSV output and the API.
type Mode string

const (
	// ModeCapacitySearch finds the smallest battery that keeps the household
	// self-sufficient for the whole year.
	ModeCapacitySearch Mode = "capacity-search"
	// ModeFixedCapacity evaluates a battery of a given size.
	ModeFixedCapacity Mode = "fixed-capacity"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCapacitySearch, ModeFixedCapacity:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unsupported mode: %q", s)
	}
}
