package handlers

import (
	"fmt"
	"path/filepath"
	"sync"

	"battery-sizing/internal/data"
	"battery-sizing/internal/model"
)

// SampleSource resolves a station id to its parsed samples.
// Parsed files are kept in memory; the manifest is re-read on every lookup
// so newly fetched stations show up without a restart.
type SampleSource struct {
	DefaultFile  string
	StationsPath string

	mu     sync.RWMutex
	loaded map[string][]model.Sample
}

func NewSampleSource(defaultFile, stationsPath string) *SampleSource {
	return &SampleSource{
		DefaultFile:  defaultFile,
		StationsPath: stationsPath,
		loaded:       make(map[string][]model.Sample),
	}
}

// Samples returns the samples of stationID, or of the default file when
// stationID is empty. Unknown stations wrap data.ErrNotFound.
func (s *SampleSource) Samples(stationID string) ([]model.Sample, error) {
	path, err := s.resolve(stationID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	samples, ok := s.loaded[path]
	s.mu.RUnlock()
	if ok {
		return samples, nil
	}

	samples, err = data.LoadDWD(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.loaded[path] = samples
	s.mu.Unlock()
	return samples, nil
}

// Stations lists the manifest entries.
func (s *SampleSource) Stations() (*data.StationList, error) {
	return data.LoadStations(s.StationsPath)
}

func (s *SampleSource) resolve(stationID string) (string, error) {
	if stationID == "" {
		if s.DefaultFile == "" {
			return "", fmt.Errorf("no default data file: %w", data.ErrNotFound)
		}
		return s.DefaultFile, nil
	}
	id, err := data.NormalizeStationID(stationID)
	if err != nil {
		return "", err
	}
	list, err := s.Stations()
	if err != nil {
		return "", err
	}
	st, err := list.Find(id)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(st.File) {
		return st.File, nil
	}
	// Manifest paths are relative to the manifest.
	return filepath.Join(filepath.Dir(s.StationsPath), st.File), nil
}
