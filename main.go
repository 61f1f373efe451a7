package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trainlab/internal/config"
	"trainlab/internal/export"
	"trainlab/internal/remote"
	"trainlab/internal/service"
	"trainlab/internal/store"
	"trainlab/internal/trainload"
	"trainlab/internal/tui"
)

func main() {
	importDir := flag.String("import-fit", "", "import .fit files from a directory and exit")
	exportPath := flag.String("export", "", "write the training-load series to a parquet file and exit")
	syncOnly := flag.Bool("sync", false, "sync remote activities and exit")
	flag.Parse()

	if err := run(*importDir, *exportPath, *syncOnly); err != nil {
		log.Fatal(err)
	}
}

func run(importDir, exportPath string, syncOnly bool) error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set your athlete thresholds, and the remote API token if you")
		fmt.Println("want activity sync (TRAINLAB_API_TOKEN also works).")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	s, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	if err := seedProfile(s, cfg); err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}

	// Create services
	var client *remote.Client
	if cfg.HasRemote() {
		client = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIToken)
	}
	syncSvc := service.NewSyncService(s, client)
	estSvc := service.NewEstimationService(s)
	querySvc := service.NewQueryService(s, estSvc)

	// Headless modes
	if importDir != "" {
		return runImport(syncSvc, importDir)
	}
	if exportPath != "" {
		return runExport(querySvc, exportPath)
	}
	if syncOnly {
		return runSync(syncSvc)
	}

	// Launch TUI
	app := tui.NewApp(s, querySvc, estSvc, syncSvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// seedProfile copies athlete settings from the config file into the
// stored profile when none exists yet.
func seedProfile(s *store.Store, cfg *config.Config) error {
	_, err := s.GetProfile()
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoProfile) {
		return err
	}

	p := &store.Profile{}
	set := false
	if cfg.Athlete.FTPWatts > 0 {
		v := cfg.Athlete.FTPWatts
		p.FTPWatts = &v
		set = true
	}
	if cfg.Athlete.ThresholdHR > 0 {
		v := cfg.Athlete.ThresholdHR
		p.ThresholdHR = &v
		set = true
	}
	if cfg.Athlete.MaxHR > 0 {
		v := cfg.Athlete.MaxHR
		p.MaxHR = &v
		set = true
	}
	if cfg.Athlete.RestingHR > 0 {
		v := cfg.Athlete.RestingHR
		p.RestingHR = &v
		set = true
	}
	if cfg.Athlete.WeightKg > 0 {
		v := cfg.Athlete.WeightKg
		p.WeightKg = &v
		set = true
	}
	if cfg.Athlete.StartingCTL > 0 {
		v := cfg.Athlete.StartingCTL
		p.StartingCTL = &v
		set = true
	}
	if cfg.Athlete.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", cfg.Athlete.BirthDate); err == nil {
			p.BirthDate = &t
			set = true
		}
	}

	if !set {
		return nil
	}
	return s.SaveProfile(p)
}

func runImport(syncSvc *service.SyncService, dir string) error {
	result, err := syncSvc.ImportFITDir(dir)
	if err != nil {
		return fmt.Errorf("importing fit files: %w", err)
	}
	fmt.Printf("Imported %d activities (%d skipped)\n", result.Stored, result.Skipped)
	return nil
}

func runExport(querySvc *service.QueryService, path string) error {
	now := time.Now()
	days, err := querySvc.DailyLoad(now.AddDate(0, 0, -service.HistoryDays), now)
	if err != nil {
		return fmt.Errorf("loading daily stress: %w", err)
	}
	points, err := trainload.ComputeSeries(days, 0, 0)
	if err != nil {
		return fmt.Errorf("computing load series: %w", err)
	}

	if err := export.WriteSeriesFile(path, points, nil); err != nil {
		return err
	}
	fmt.Printf("Wrote %d points to %s\n", len(points), path)
	return nil
}

func runSync(syncSvc *service.SyncService) error {
	result, err := syncSvc.SyncRemote(context.Background(), func(fetched int) {
		fmt.Printf("\rFetched %d activities...", fetched)
	})
	if err != nil {
		return fmt.Errorf("syncing: %w", err)
	}
	fmt.Printf("\nStored %d activities (%d skipped)\n", result.Stored, result.Skipped)
	return nil
}
