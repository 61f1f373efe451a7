package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateLayout = time.RFC3339

func parseStoredDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// GetProfile fetches the athlete profile, or ErrNoProfile when none is saved
func (s *Store) GetProfile() (*Profile, error) {
	row := s.db.QueryRow(`
		SELECT ftp_watts, threshold_hr, max_hr, resting_hr, weight_kg, birth_date, starting_ctl, updated_at
		FROM profile WHERE id = 1`)

	var p Profile
	var birthDate, updatedAt sql.NullString
	err := row.Scan(&p.FTPWatts, &p.ThresholdHR, &p.MaxHR, &p.RestingHR, &p.WeightKg, &birthDate, &p.StartingCTL, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	if birthDate.Valid {
		t, err := time.Parse(dateLayout, birthDate.String)
		if err != nil {
			return nil, fmt.Errorf("parsing birth date: %w", err)
		}
		p.BirthDate = &t
	}
	if updatedAt.Valid {
		if t, err := time.Parse(dateLayout, updatedAt.String); err == nil {
			p.UpdatedAt = t
		}
	}
	return &p, nil
}

// SaveProfile upserts the singleton athlete profile
func (s *Store) SaveProfile(p *Profile) error {
	var birthDate *string
	if p.BirthDate != nil {
		bd := p.BirthDate.Format(dateLayout)
		birthDate = &bd
	}

	_, err := s.db.Exec(`
		INSERT INTO profile (id, ftp_watts, threshold_hr, max_hr, resting_hr, weight_kg, birth_date, starting_ctl, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			ftp_watts = excluded.ftp_watts,
			threshold_hr = excluded.threshold_hr,
			max_hr = excluded.max_hr,
			resting_hr = excluded.resting_hr,
			weight_kg = excluded.weight_kg,
			birth_date = excluded.birth_date,
			starting_ctl = excluded.starting_ctl,
			updated_at = excluded.updated_at`,
		p.FTPWatts, p.ThresholdHR, p.MaxHR, p.RestingHR, p.WeightKg, birthDate, p.StartingCTL,
		time.Now().UTC().Format(dateLayout))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
