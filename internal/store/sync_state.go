package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetLastSyncedAt returns when the remote sync last completed.
// The bool is false when no sync has run yet.
func (s *Store) GetLastSyncedAt() (time.Time, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow(`SELECT last_synced_at FROM sync_state WHERE id = 1`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading sync state: %w", err)
	}
	if !value.Valid || value.String == "" {
		return time.Time{}, false, nil
	}

	t, err := parseStoredDate(value.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing last synced time: %w", err)
	}
	return t, true, nil
}

// SetLastSyncedAt records when the remote sync last completed
func (s *Store) SetLastSyncedAt(t time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_state (id, last_synced_at) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET last_synced_at = excluded.last_synced_at`,
		t.UTC().Format(dateLayout))
	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}
