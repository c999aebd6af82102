package trajectory

import (
	"database/sql"
	"fmt"

	"github.com/san-kum/rkode/internal/dynamo"
)

// SQLite stores one row per state component:
//
//	trajectory_points(run_id, step, t, idx, value)
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller owns the database handle.
type SQLite struct {
	db    *sql.DB
	runID string
	step  int
}

var _ dynamo.Sink = (*SQLite)(nil)

// NewSQLite initializes the schema and returns a sink writing under runID.
// Points already stored for runID are removed.
func NewSQLite(db *sql.DB, runID string) (*SQLite, error) {
	s := &SQLite{db: db, runID: runID}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`DELETE FROM trajectory_points WHERE run_id = ?`, runID); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trajectory_points (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			t REAL NOT NULL,
			idx INTEGER NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (run_id, step, idx)
		);`,
	)
	return err
}

func (s *SQLite) Record(t float64, y dynamo.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO trajectory_points (run_id, step, t, idx, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, v := range y {
		if _, err := stmt.Exec(s.runID, s.step, t, i, v); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.step++
	return nil
}

// LoadSQLite reads the points stored for runID.
func LoadSQLite(db *sql.DB, runID string) (*Trajectory, error) {
	rows, err := db.Query(`
		SELECT step, t, idx, value FROM trajectory_points
		WHERE run_id = ?
		ORDER BY step, idx`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	traj := &Trajectory{}
	lastStep := -1
	for rows.Next() {
		var (
			step, idx int
			t, value  float64
		)
		if err := rows.Scan(&step, &t, &idx, &value); err != nil {
			return nil, err
		}
		if step != lastStep {
			traj.Times = append(traj.Times, t)
			traj.States = append(traj.States, dynamo.State{})
			lastStep = step
		}
		cur := len(traj.States) - 1
		if idx != len(traj.States[cur]) {
			return nil, fmt.Errorf("run %s step %d: missing component %d", runID, step, len(traj.States[cur]))
		}
		traj.States[cur] = append(traj.States[cur], value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return traj, nil
}

// SQLiteRuns lists the run ids stored in db.
func SQLiteRuns(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT run_id FROM trajectory_points ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
