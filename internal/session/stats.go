package session

import (
	"context"
	"os"
)

// Stats holds session database statistics.
type Stats struct {
	DBPath        string `json:"db_path"`
	DBSizeBytes   int64  `json:"db_size_bytes"`
	HasSnapshot   bool   `json:"has_snapshot"`
	Activity      int    `json:"activity"`
	Errors        int    `json:"errors"`
	LastUpdatedAt string `json:"last_updated_at,omitempty"`
}

// Stats returns session database statistics.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var snapshots int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot`).Scan(&snapshots); err != nil {
		return st, err
	}
	st.HasSnapshot = snapshots > 0
	if st.HasSnapshot {
		s.db.QueryRowContext(ctx, `SELECT updated_at FROM snapshot WHERE id = 1`).Scan(&st.LastUpdatedAt)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity`).Scan(&st.Activity); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity WHERE is_error = 1`).Scan(&st.Errors); err != nil {
		return st, err
	}
	return st, nil
}
