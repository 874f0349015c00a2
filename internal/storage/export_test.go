package storage

import "time"

// SetClock replaces the repository clock.
func (r *SubmissionRepository) SetClock(now func() time.Time) {
	r.now = now
}
