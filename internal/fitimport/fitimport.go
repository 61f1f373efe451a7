// Package fitimport decodes .FIT activity files and converts their
// session summaries into stored activities with a measured training
// stress.
package fitimport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tormoder/fit"

	"trainlab/internal/store"
)

// ErrNoSession is returned when a FIT file has no session summary
var ErrNoSession = errors.New("fit file contains no session")

// invalid sentinel values per the FIT profile
const (
	invalidUint8  = 0xFF
	invalidUint16 = 0xFFFF
)

// fallbackIF is used when a file carries neither power nor heart rate
const fallbackIF = 0.70

// Importer converts FIT files into activities using the athlete's
// thresholds to derive intensity.
type Importer struct {
	ftpWatts    float64
	thresholdHR float64
}

// NewImporter creates an importer. Zero thresholds are allowed; the
// importer then falls back to a conservative fixed intensity.
func NewImporter(ftpWatts, thresholdHR float64) *Importer {
	return &Importer{ftpWatts: ftpWatts, thresholdHR: thresholdHR}
}

// ImportFile decodes one FIT file into an activity ready to store.
// The file's base name becomes the external ID so re-imports are
// idempotent.
func (im *Importer) ImportFile(path string) (*store.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fit file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("reading activity from %s: %w", filepath.Base(path), err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoSession)
	}
	session := activity.Sessions[0]

	durationSeconds := int(session.GetTotalTimerTimeScaled())
	if durationSeconds <= 0 {
		durationSeconds = int(session.GetTotalElapsedTimeScaled())
	}

	a := &store.Activity{
		Source:          "fit",
		ExternalID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Name:            sessionName(session.Sport.String(), session.StartTime),
		Sport:           normalizeSport(session.Sport.String()),
		StartDate:       session.StartTime.UTC(),
		DurationSeconds: durationSeconds,
	}

	if d := session.GetTotalDistanceScaled(); d > 0 {
		dist := d
		a.DistanceMeters = &dist
	}
	if session.AvgPower != invalidUint16 && session.AvgPower > 0 {
		p := float64(session.AvgPower)
		a.AvgPower = &p
	}
	if session.AvgHeartRate != invalidUint8 && session.AvgHeartRate > 0 {
		hr := float64(session.AvgHeartRate)
		a.AvgHeartrate = &hr
	}

	a.IntensityFactor = im.intensityFor(session)
	a.TSS = float64(durationSeconds) / 3600.0 * a.IntensityFactor * a.IntensityFactor * 100.0

	return a, nil
}

// ImportDir imports every .fit file in a directory, skipping files
// that fail to decode. It returns the imported activities and the
// paths that were skipped.
func (im *Importer) ImportDir(dir string) ([]*store.Activity, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading directory: %w", err)
	}

	var activities []*store.Activity
	var skipped []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".fit") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		a, err := im.ImportFile(path)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		activities = append(activities, a)
	}
	return activities, skipped, nil
}

// intensityFor derives the decimal intensity factor for a session.
// Normalized power against FTP is preferred, then average heart rate
// against threshold, then a fixed conservative fallback.
func (im *Importer) intensityFor(session *fit.SessionMsg) float64 {
	if im.ftpWatts > 0 && session.NormalizedPower != invalidUint16 && session.NormalizedPower > 0 {
		return clampIF(float64(session.NormalizedPower) / im.ftpWatts)
	}
	if im.ftpWatts > 0 && session.AvgPower != invalidUint16 && session.AvgPower > 0 {
		return clampIF(float64(session.AvgPower) / im.ftpWatts)
	}
	if im.thresholdHR > 0 && session.AvgHeartRate != invalidUint8 && session.AvgHeartRate > 0 {
		return clampIF(float64(session.AvgHeartRate) / im.thresholdHR)
	}
	return fallbackIF
}

func clampIF(v float64) float64 {
	if v < 0.30 {
		return 0.30
	}
	if v > 1.50 {
		return 1.50
	}
	return v
}

var fitSports = map[string]string{
	"Cycling":          "bike",
	"Running":          "run",
	"Swimming":         "swim",
	"Training":         "strength",
	"FitnessEquipment": "strength",
}

func normalizeSport(s string) string {
	if mapped, ok := fitSports[s]; ok {
		return mapped
	}
	return strings.ToLower(s)
}

func sessionName(sport string, start time.Time) string {
	return fmt.Sprintf("%s %s", sport, start.Format("2006-01-02"))
}
