package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"battery-sizing/internal/model"
)

// MissingValue marks an invalid reading in DWD station products.
const MissingValue = -999.0

const (
	colDate       = "MESS_DATUM"
	colIrradiance = "FG_STRAHL"
	colSunshine   = "SD_STRAHL"
)

var ErrMissingColumn = errors.New("missing column")

// LoadDWD reads a DWD daily solar product (produkt_st_tag_*.txt).
func LoadDWD(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := ParseDWD(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// ParseDWD parses the ';'-separated daily product. Rows whose global
// irradiation carries the missing-value marker are dropped; irradiation is
// converted from J/cm² to Wh/m². A missing sunshine reading is kept as 0.
func ParseDWD(r io.Reader) ([]model.Sample, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
		}
		return nil, err
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	dateIdx, ok := cols[colDate]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colDate)
	}
	fgIdx, ok := cols[colIrradiance]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colIrradiance)
	}
	sdIdx, hasSD := cols[colSunshine]

	var out []model.Sample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) <= dateIdx || len(rec) <= fgIdx {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(dateIdx, fgIdx)+1, len(rec))
		}

		fg, err := parseValue(rec[fgIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, colIrradiance, err)
		}
		if fg == MissingValue {
			continue
		}
		date, err := time.Parse("20060102", strings.TrimSpace(rec[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, colDate, err)
		}

		s := model.Sample{
			Date:           date,
			IrradianceWhM2: fg * model.JoulePerCm2ToWhPerM2,
		}
		if hasSD && sdIdx < len(rec) {
			sd, err := parseValue(rec[sdIdx])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, colSunshine, err)
			}
			if sd != MissingValue {
				s.SunshineHours = sd
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func parseValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
