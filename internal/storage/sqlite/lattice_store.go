package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accel-data/beamline/internal/beamline"
)

// ModelRun is one persisted model build.
type ModelRun struct {
	RunID          string    `json:"run_id"`
	Source         string    `json:"source"`
	MomentumGeV    float64   `json:"momentum_gev"`
	ArcLengthM     float64   `json:"arc_length_m"`
	ComponentCount int       `json:"component_count"`
	ElementCount   int       `json:"element_count"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// LatticeEntry is one persisted flat-lattice slot.
type LatticeEntry struct {
	RunID        string  `json:"run_id"`
	LatticeIndex int     `json:"lattice_index"`
	Name         string  `json:"name"`
	ElementType  string  `json:"element_type"`
	SPositionM   float64 `json:"s_position_m"`
	LengthM      float64 `json:"length_m"`
}

// LatticeStore handles database operations for persisted model builds.
type LatticeStore struct {
	db *DB
}

// NewLatticeStore creates a new LatticeStore.
func NewLatticeStore(db *DB) *LatticeStore {
	return &LatticeStore{db: db}
}

// SaveModel persists a finished model as a new run and returns its ID.
// The model is read, never mutated.
func (ls *LatticeStore) SaveModel(source string, momentumGeV float64, m *beamline.AcceleratorModel) (string, error) {
	runID := uuid.NewString()

	tx, err := ls.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO model_runs (run_id, source, momentum_gev, arc_length_m, component_count, element_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, source, momentumGeV, m.ArcLength(), len(m.Lattice()), m.Elements().Size(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert model run: %w", err)
	}

	elemStmt, err := tx.Prepare(`
		INSERT INTO model_elements (run_id, element_type, name, length_m)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare element insert: %w", err)
	}
	defer elemStmt.Close()

	var insertErr error
	m.Elements().Each(func(e beamline.ModelEntity) {
		if insertErr != nil {
			return
		}
		var length float64
		if c, ok := e.(interface{ Length() float64 }); ok {
			length = c.Length()
		}
		_, insertErr = elemStmt.Exec(runID, e.Type(), e.Name(), length)
	})
	if insertErr != nil {
		return "", fmt.Errorf("failed to insert element: %w", insertErr)
	}

	latStmt, err := tx.Prepare(`
		INSERT INTO model_lattice (run_id, lattice_index, name, element_type, s_position_m, length_m)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare lattice insert: %w", err)
	}
	defer latStmt.Close()

	positions := m.SPositions()
	for i, cf := range m.Lattice() {
		typ := cf.Type()
		if cf.IsComponent() {
			typ = cf.Component().Type()
		}
		if _, err := latStmt.Exec(runID, i, cf.Name(), typ, positions[i], cf.Length()); err != nil {
			return "", fmt.Errorf("failed to insert lattice entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit save: %w", err)
	}
	return runID, nil
}

// GetRun retrieves a run's metadata.
func (ls *LatticeStore) GetRun(runID string) (*ModelRun, error) {
	row := ls.db.QueryRow(`
		SELECT run_id, source, momentum_gev, arc_length_m, component_count, element_count, created_at
		FROM model_runs WHERE run_id = ?`, runID)

	var r ModelRun
	if err := row.Scan(&r.RunID, &r.Source, &r.MomentumGeV, &r.ArcLengthM,
		&r.ComponentCount, &r.ElementCount, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return &r, nil
}

// ListRuns retrieves the most recent runs, newest first.
func (ls *LatticeStore) ListRuns(limit int) ([]*ModelRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := ls.db.Query(`
		SELECT run_id, source, momentum_gev, arc_length_m, component_count, element_count, created_at
		FROM model_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*ModelRun
	for rows.Next() {
		var r ModelRun
		if err := rows.Scan(&r.RunID, &r.Source, &r.MomentumGeV, &r.ArcLengthM,
			&r.ComponentCount, &r.ElementCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// ListLattice retrieves a run's flat lattice in index order.
func (ls *LatticeStore) ListLattice(runID string) ([]*LatticeEntry, error) {
	rows, err := ls.db.Query(`
		SELECT run_id, lattice_index, name, element_type, s_position_m, length_m
		FROM model_lattice WHERE run_id = ? ORDER BY lattice_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lattice: %w", err)
	}
	defer rows.Close()

	var entries []*LatticeEntry
	for rows.Next() {
		var e LatticeEntry
		if err := rows.Scan(&e.RunID, &e.LatticeIndex, &e.Name, &e.ElementType,
			&e.SPositionM, &e.LengthM); err != nil {
			return nil, fmt.Errorf("failed to scan lattice entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// CountByType returns a run's registry element counts grouped by type tag.
func (ls *LatticeStore) CountByType(runID string) (map[string]int, error) {
	rows, err := ls.db.Query(`
		SELECT element_type, COUNT(*) FROM model_elements
		WHERE run_id = ? GROUP BY element_type`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count elements: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}
