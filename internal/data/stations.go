package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"battery-sizing/internal/model"
)

var ErrNotFound = errors.New("not found")

// Station records a downloaded station product.
type Station struct {
	ID        string `json:"id"`
	File      string `json:"file"`
	Samples   int    `json:"samples"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
	UpdatedAt string `json:"updated_at"` // RFC 3339
}

// NewStation describes a product file from its parsed samples.
func NewStation(id, file string, samples []model.Sample, now time.Time) Station {
	st := Station{
		ID:        id,
		File:      file,
		Samples:   len(samples),
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}
	if len(samples) > 0 {
		st.FirstDate = samples[0].Date.Format(time.DateOnly)
		st.LastDate = samples[len(samples)-1].Date.Format(time.DateOnly)
	}
	return st
}

// StationList is the manifest kept next to downloaded products.
type StationList struct {
	UpdatedAt string    `json:"updated_at"`
	Stations  []Station `json:"stations"`
}

// Upsert replaces the entry with the same id or adds a new one, keeping the
// list sorted by id.
func (l *StationList) Upsert(s Station) {
	for i := range l.Stations {
		if l.Stations[i].ID == s.ID {
			l.Stations[i] = s
			return
		}
	}
	l.Stations = append(l.Stations, s)
	sort.Slice(l.Stations, func(i, j int) bool { return l.Stations[i].ID < l.Stations[j].ID })
}

func (l *StationList) Find(id string) (Station, error) {
	for _, s := range l.Stations {
		if s.ID == id {
			return s, nil
		}
	}
	return Station{}, fmt.Errorf("station %s: %w", id, ErrNotFound)
}

// LoadStations loads the manifest. A missing file yields an empty list.
func LoadStations(filePath string) (*StationList, error) {
	raw, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return &StationList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stations file: %w", err)
	}

	var list StationList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse stations file: %w", err)
	}

	return &list, nil
}

// SaveStations saves the manifest as indented JSON.
func SaveStations(list *StationList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stations: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write stations file: %w", err)
	}

	return nil
}

// DefaultStationsPath returns the manifest path, honouring STATIONS_FILE.
func DefaultStationsPath() string {
	if path := os.Getenv("STATIONS_FILE"); path != "" {
		return path
	}
	return "./data/stations.json"
}
