package model

import (
	"fmt"
	"time"
)

// JoulePerCm2ToWhPerM2 converts a daily irradiation sum in J/cm² into Wh/m².
const JoulePerCm2ToWhPerM2 = 10000.0 / 3600.0

// Sample is one cleaned row of the station feed.
type Sample struct {
	Date           time.Time
	IrradianceWhM2 float64
	SunshineHours  float64
}

// DailyRecord is a sample enriched with the plant and household parameters.
// Records are immutable once derived.
type DailyRecord struct {
	Date           time.Time
	IrradianceWhM2 float64
	SunshineHours  float64

	YieldWh       float64
	TargetWh      float64
	TargetNightWh float64
	SurplusWh     float64
}

// MissedTarget reports whether the day generated less than it consumed.
func (r DailyRecord) MissedTarget() bool {
	return r.SurplusWh < 0
}

func (r DailyRecord) Season() Season {
	return SeasonOf(r.Date.Month())
}

// Season buckets months the way the summer tool filters them.
type Season string

const (
	SeasonSummer Season = "summer"
	SeasonWinter Season = "winter"
)

// SeasonOf returns summer for May through August.
func SeasonOf(m time.Month) Season {
	if m > time.April && m < time.September {
		return SeasonSummer
	}
	return SeasonWinter
}

// Derive enriches samples with yield, target and surplus.
func Derive(samples []Sample, p PlantParams) []DailyRecord {
	out := make([]DailyRecord, 0, len(samples))
	target := p.TargetWh()
	for _, s := range samples {
		y := p.YieldWh(s.IrradianceWhM2)
		out = append(out, DailyRecord{
			Date:           s.Date,
			IrradianceWhM2: s.IrradianceWhM2,
			SunshineHours:  s.SunshineHours,
			YieldWh:        y,
			TargetWh:       target,
			TargetNightWh:  p.TargetNightWh,
			SurplusWh:      y - target,
		})
	}
	return out
}

// YearSeries is the ordered run of records belonging to one calendar year.
type YearSeries struct {
	Year    int
	Records []DailyRecord
}

func (s YearSeries) Len() int { return len(s.Records) }

func (s YearSeries) Surpluses() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.SurplusWh
	}
	return out
}

// Summer returns the May to August part of the series.
func (s YearSeries) Summer() YearSeries {
	out := YearSeries{Year: s.Year}
	for _, r := range s.Records {
		if r.Season() == SeasonSummer {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// SplitByYear groups records into year series, preserving order.
func SplitByYear(records []DailyRecord) map[int]YearSeries {
	out := map[int]YearSeries{}
	for _, r := range records {
		y := r.Date.Year()
		s := out[y]
		s.Year = y
		s.Records = append(s.Records, r)
		out[y] = s
	}
	return out
}

// YearBounds returns the first year present and one past the last.
func YearBounds(records []DailyRecord) (from, to int) {
	if len(records) == 0 {
		return 0, 0
	}
	from, to = records[0].Date.Year(), records[0].Date.Year()
	for _, r := range records[1:] {
		y := r.Date.Year()
		if y < from {
			from = y
		}
		if y > to {
			to = y
		}
	}
	return from, to + 1
}

// CheckOrder returns an error naming the first record that does not come
// strictly after its predecessor.
func CheckOrder(records []DailyRecord) error {
	for i := 1; i < len(records); i++ {
		if !records[i].Date.After(records[i-1].Date) {
			return &OrderError{
				Index: i,
				Prev:  records[i-1].Date,
				Date:  records[i].Date,
			}
		}
	}
	return nil
}

// OrderError reports a record that breaks chronological order.
type OrderError struct {
	Index int
	Prev  time.Time
	Date  time.Time
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("record %d (%s) does not follow %s",
		e.Index, e.Date.Format(time.DateOnly), e.Prev.Format(time.DateOnly))
}
