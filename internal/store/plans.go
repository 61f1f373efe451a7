package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SaveActivePlan stores a periodization plan and makes it the active one,
// deactivating any previous plan.
func (s *Store) SaveActivePlan(p *Plan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE plans SET active = 0 WHERE active = 1`); err != nil {
		return fmt.Errorf("deactivating previous plan: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO plans (id, name, start_ctl, target_ctl, start_date, target_date, weekly_ramp_pct, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			start_ctl = excluded.start_ctl,
			target_ctl = excluded.target_ctl,
			start_date = excluded.start_date,
			target_date = excluded.target_date,
			weekly_ramp_pct = excluded.weekly_ramp_pct,
			active = 1`,
		p.ID, p.Name, p.StartCTL, p.TargetCTL,
		p.StartDate.UTC().Format(dateLayout), p.TargetDate.UTC().Format(dateLayout),
		p.WeeklyRampPct)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	p.Active = true
	return tx.Commit()
}

// GetActivePlan fetches the active periodization plan, or ErrNoPlan
func (s *Store) GetActivePlan() (*Plan, error) {
	row := s.db.QueryRow(`
		SELECT id, name, start_ctl, target_ctl, start_date, target_date, weekly_ramp_pct, active
		FROM plans WHERE active = 1`)

	var p Plan
	var startDate, targetDate string
	err := row.Scan(&p.ID, &p.Name, &p.StartCTL, &p.TargetCTL, &startDate, &targetDate, &p.WeeklyRampPct, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPlan
	}
	if err != nil {
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	if p.StartDate, err = parseStoredDate(startDate); err != nil {
		return nil, fmt.Errorf("parsing plan start date: %w", err)
	}
	if p.TargetDate, err = parseStoredDate(targetDate); err != nil {
		return nil, fmt.Errorf("parsing plan target date: %w", err)
	}
	return &p, nil
}

// ClearActivePlan deactivates any active plan
func (s *Store) ClearActivePlan() error {
	if _, err := s.db.Exec(`UPDATE plans SET active = 0 WHERE active = 1`); err != nil {
		return fmt.Errorf("clearing active plan: %w", err)
	}
	return nil
}
