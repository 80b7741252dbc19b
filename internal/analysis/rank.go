package analysis

import (
	"fmt"
	"sort"

	"battery-sizing/internal/model"
)

// RankBy selects the ordering used by RankYears.
type RankBy string

const (
	// RankByCapacity puts years without a solution first, then the largest
	// required capacity.
	RankByCapacity RankBy = "capacity"
	// RankBySelfSufficiency puts the lowest self-sufficiency first.
	RankBySelfSufficiency RankBy = "self_sufficiency"
)

func ParseRankBy(s string) (RankBy, error) {
	switch RankBy(s) {
	case RankByCapacity, RankBySelfSufficiency:
		return RankBy(s), nil
	default:
		return "", fmt.Errorf("unsupported rank order: %q", s)
	}
}

type RankedYear struct {
	Rank int `json:"rank"`
	model.YearStats
}

// RankYears orders years worst first. Ties keep chronological order.
func RankYears(years []model.YearStats, by RankBy) []RankedYear {
	out := make([]RankedYear, 0, len(years))
	for _, y := range years {
		out = append(out, RankedYear{YearStats: y})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case RankBySelfSufficiency:
			if a.SelfSufficiencyPct != b.SelfSufficiencyPct {
				return a.SelfSufficiencyPct < b.SelfSufficiencyPct
			}
		default:
			if a.CapacitySolved != b.CapacitySolved {
				return !a.CapacitySolved
			}
			if a.CapacityWh != b.CapacityWh {
				return a.CapacityWh > b.CapacityWh
			}
		}
		return a.Year < b.Year
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
