package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trainlab/internal/fitimport"
	"trainlab/internal/remote"
	"trainlab/internal/store"
)

// ErrNoRemote is returned when sync is requested without a configured
// remote client
var ErrNoRemote = errors.New("remote sync is not configured")

// SyncService pulls completed activities into the store from the
// remote platform, FIT files, and manual entry.
type SyncService struct {
	store  *store.Store
	client *remote.Client // nil when remote sync is not configured
}

// NewSyncService creates a new sync service. client may be nil.
func NewSyncService(s *store.Store, client *remote.Client) *SyncService {
	return &SyncService{store: s, client: client}
}

// SyncResult summarizes one sync run
type SyncResult struct {
	Fetched int
	Stored  int
	Skipped int
}

// SyncRemote fetches activities since the last sync and upserts them.
// A small overlap window guards against activities uploaded late.
func (s *SyncService) SyncRemote(ctx context.Context, onProgress func(fetched int)) (*SyncResult, error) {
	if s.client == nil {
		return nil, ErrNoRemote
	}

	var after time.Time
	if last, ok, err := s.store.GetLastSyncedAt(); err != nil {
		return nil, err
	} else if ok {
		after = last.AddDate(0, 0, -SyncOverlapDays)
	}

	activities, err := s.client.GetAllActivities(ctx, after, onProgress)
	if err != nil {
		return nil, fmt.Errorf("fetching remote activities: %w", err)
	}

	result := &SyncResult{Fetched: len(activities)}
	for _, ra := range activities {
		sport := ra.NormalizedSport()
		if sport == "" {
			result.Skipped++
			continue
		}

		a := &store.Activity{
			Source:          "remote",
			ExternalID:      fmt.Sprintf("%d", ra.ID),
			Name:            ra.Name,
			Sport:           sport,
			StartDate:       ra.StartDate,
			DurationSeconds: ra.DurationSeconds,
			TSS:             ra.TrainingStress,
			IntensityFactor: ra.IntensityFactor(),
		}
		if ra.DistanceMeters > 0 {
			d := ra.DistanceMeters
			a.DistanceMeters = &d
		}
		if ra.HasPowerMeter && ra.AverageWatts > 0 {
			p := ra.AverageWatts
			a.AvgPower = &p
		}
		if ra.HasHeartrateSensor && ra.AverageHeartrate > 0 {
			hr := ra.AverageHeartrate
			a.AvgHeartrate = &hr
		}

		if err := s.store.UpsertActivity(a); err != nil {
			return result, err
		}
		result.Stored++
	}

	if err := s.store.SetLastSyncedAt(time.Now()); err != nil {
		return result, err
	}
	return result, nil
}

// ImportFITDir imports every FIT file in a directory using the stored
// athlete thresholds to derive intensity.
func (s *SyncService) ImportFITDir(dir string) (*SyncResult, error) {
	var ftp, thresholdHR float64
	if p, err := s.store.GetProfile(); err == nil {
		if p.FTPWatts != nil {
			ftp = *p.FTPWatts
		}
		if p.ThresholdHR != nil {
			thresholdHR = *p.ThresholdHR
		}
	} else if !errors.Is(err, store.ErrNoProfile) {
		return nil, err
	}

	importer := fitimport.NewImporter(ftp, thresholdHR)
	activities, skipped, err := importer.ImportDir(dir)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Fetched: len(activities) + len(skipped), Skipped: len(skipped)}
	for _, a := range activities {
		if err := s.store.UpsertActivity(a); err != nil {
			return result, err
		}
		result.Stored++
	}
	return result, nil
}

// AddManualActivity records an activity entered by hand. The stress is
// computed from duration and intensity when not supplied.
func (s *SyncService) AddManualActivity(a *store.Activity) error {
	if a.Sport == "" {
		return errors.New("manual activity needs a sport")
	}
	a.Source = "manual"
	if a.ExternalID == "" {
		a.ExternalID = a.StartDate.UTC().Format(time.RFC3339)
	}
	if a.TSS == 0 && a.IntensityFactor > 0 {
		a.TSS = float64(a.DurationSeconds) / 3600.0 * a.IntensityFactor * a.IntensityFactor * 100.0
	}
	return s.store.UpsertActivity(a)
}
