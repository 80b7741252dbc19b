package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"battery-sizing/internal/data"
	"battery-sizing/internal/logging"

	"github.com/spf13/pflag"
)

func main() {
	var (
		manifest = pflag.String("stations", data.DefaultStationsPath(), "Station manifest to update")
		outDir   = pflag.String("dir", "", "Directory for product files (default: next to the manifest)")
		baseURL  = pflag.String("base-url", data.DefaultDWDBaseURL, "DWD open data server")
		logLevel = pflag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: fetch-station [flags] STATION_ID...\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, *logLevel)
	if *outDir == "" {
		*outDir = filepath.Dir(*manifest)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	list, err := data.LoadStations(*manifest)
	if err != nil {
		logger.Error("loading manifest", slog.Any("error", err))
		os.Exit(1)
	}

	client := data.NewDWDClient(*baseURL, logger)
	failed := 0
	for _, arg := range pflag.Args() {
		st, err := fetch(ctx, client, arg, *outDir, *manifest)
		if err != nil {
			logger.Error("fetching station", slog.String("station", arg), slog.Any("error", err))
			failed++
			continue
		}
		list.Upsert(st)
		logger.Info("station updated",
			slog.String("station", st.ID),
			slog.Int("samples", st.Samples),
			slog.String("first", st.FirstDate),
			slog.String("last", st.LastDate))
	}

	list.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := data.SaveStations(list, *manifest); err != nil {
		logger.Error("saving manifest", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Printf("Saved %d stations to %s\n", len(list.Stations), *manifest)
	if failed > 0 {
		os.Exit(1)
	}
}

func fetch(ctx context.Context, client *data.DWDClient, arg, dir, manifest string) (data.Station, error) {
	id, err := data.NormalizeStationID(arg)
	if err != nil {
		return data.Station{}, err
	}
	path, err := client.SaveDaily(ctx, id, dir)
	if err != nil {
		return data.Station{}, err
	}
	samples, err := data.LoadDWD(path)
	if err != nil {
		return data.Station{}, fmt.Errorf("downloaded product is unreadable: %w", err)
	}

	// The API resolves relative entries against the manifest directory.
	file := path
	if rel, err := filepath.Rel(filepath.Dir(manifest), path); err == nil {
		file = rel
	}
	return data.NewStation(id, file, samples, time.Now()), nil
}
