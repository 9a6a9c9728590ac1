package sqlite

import (
	"time"
)

// ─── Simulation Event Log ───────────────────────────────────────────────────

// Event is one logged simulation event.
type Event struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Tick      uint64    `json:"tick"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AppendEvent records a simulation event.
func (d *DB) AppendEvent(runID string, tick uint64, kind, message string) error {
	_, err := d.db.Exec(
		`INSERT INTO sim_events (run_id, tick, kind, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, int64(tick), kind, message, time.Now().Unix(),
	)
	return err
}

// RecentEvents returns the newest events, newest first.
func (d *DB) RecentEvents(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, run_id, tick, kind, message, created_at
		 FROM sim_events ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var tick, created int64
		if err := rows.Scan(&e.ID, &e.RunID, &tick, &e.Kind, &e.Message, &created); err != nil {
			return nil, err
		}
		e.Tick = uint64(tick)
		e.CreatedAt = time.Unix(created, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}
