package data

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultDWDBaseURL is the DWD open data server.
	DefaultDWDBaseURL = "https://opendata.dwd.de"

	dailySolarPath = "/climate_environment/CDC/observations_germany/climate/daily/solar"
	productPrefix  = "produkt_st_tag_"

	// Station archives are a few hundred kB; anything far beyond that is
	// not a daily product.
	maxArchiveBytes = 64 << 20
)

// DWDClient downloads daily solar products from the DWD open data server.
type DWDClient struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

// NewDWDClient creates a new client.
// If baseURL is empty, defaults to DefaultDWDBaseURL.
func NewDWDClient(baseURL string, logger *slog.Logger) *DWDClient {
	if baseURL == "" {
		baseURL = DefaultDWDBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DWDClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		Logger: logger.With("module", "dwd"),
	}
}

// DWDError represents a failed request to the open data server.
type DWDError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *DWDError) Error() string {
	return e.Message
}

// NormalizeStationID left-pads a station id to the five digits used in
// DWD file names.
func NormalizeStationID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("station id is required")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("station id must be numeric: %q", id)
		}
	}
	if len(id) > 5 {
		return "", fmt.Errorf("station id too long: %q", id)
	}
	return strings.Repeat("0", 5-len(id)) + id, nil
}

// ArchiveURL returns the URL of a station's daily solar archive.
func (c *DWDClient) ArchiveURL(stationID string) (string, error) {
	id, err := NormalizeStationID(stationID)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(c.BaseURL + dailySolarPath + "/tageswerte_ST_" + id + "_row.zip")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	return u.String(), nil
}

// FetchDaily downloads a station archive and returns the product file name
// and its contents.
func (c *DWDClient) FetchDaily(ctx context.Context, stationID string) (string, []byte, error) {
	archiveURL, err := c.ArchiveURL(stationID)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.Logger.Info("request", slog.String("url", archiveURL))
	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Error("request failed", slog.Any("error", err), slog.Duration("duration", time.Since(start)))
		return "", nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Info("response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil, &DWDError{
			StatusCode: resp.StatusCode,
			Code:       "STATION_NOT_FOUND",
			Message:    fmt.Sprintf("no daily solar archive for station %s", stationID),
		}
	default:
		return "", nil, &DWDError{
			StatusCode: resp.StatusCode,
			Code:       "DWD_ERROR",
			Message:    fmt.Sprintf("open data server returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read archive: %w", err)
	}
	if len(raw) > maxArchiveBytes {
		return "", nil, fmt.Errorf("archive exceeds %d bytes", maxArchiveBytes)
	}

	name, body, err := extractProduct(raw)
	if err != nil {
		return "", nil, err
	}
	c.Logger.Info("extracted product", slog.String("file", name), slog.Int("bytes", len(body)))
	return name, body, nil
}

// SaveDaily downloads a station archive and writes the product into dir.
func (c *DWDClient) SaveDaily(ctx context.Context, stationID, dir string) (string, error) {
	name, body, err := c.FetchDaily(ctx, stationID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write product: %w", err)
	}
	return path, nil
}

func extractProduct(raw []byte) (string, []byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to open archive: %w", err)
	}
	for _, f := range zr.File {
		base := filepath.Base(f.Name)
		if !strings.HasPrefix(base, productPrefix) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		body, err := io.ReadAll(io.LimitReader(rc, maxArchiveBytes))
		rc.Close()
		if err != nil {
			return "", nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return base, body, nil
	}
	return "", nil, &DWDError{Code: "PRODUCT_NOT_FOUND", Message: "archive contains no " + productPrefix + " file"}
}
