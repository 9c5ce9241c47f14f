package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accel-data/beamline/internal/beamline"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// buildTestModel assembles a small drift-quad-drift line.
func buildTestModel(t *testing.T) *beamline.AcceleratorModel {
	t.Helper()
	ctor := beamline.NewModelConstructor()
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewDrift("D1", 1.5)))
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewQuadrupole("QF", 0.5, 12)))
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewDrift("D2", 2.0)))
	return ctor.GetModel()
}

func TestMigrationsApply(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.GreaterOrEqual(t, version, uint(1))
}

func TestSaveAndLoadModel(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewLatticeStore(db)
	model := buildTestModel(t)

	runID, err := store.SaveModel("fodo.tfs", 3.0, model)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := store.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "fodo.tfs", run.Source)
	assert.InDelta(t, 3.0, run.MomentumGeV, 1e-12)
	assert.InDelta(t, 4.0, run.ArcLengthM, 1e-9)
	assert.Equal(t, 3, run.ComponentCount)
	assert.Equal(t, model.Elements().Size(), run.ElementCount)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestListLatticeInIndexOrder(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewLatticeStore(db)
	model := buildTestModel(t)

	runID, err := store.SaveModel("test", 3.0, model)
	require.NoError(t, err)

	entries, err := store.ListLattice(runID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	wantNames := []string{"D1", "QF", "D2"}
	wantTypes := []string{"Drift", "Quadrupole", "Drift"}
	wantS := []float64{0, 1.5, 2.0}
	for i, e := range entries {
		assert.Equal(t, i, e.LatticeIndex)
		assert.Equal(t, wantNames[i], e.Name)
		assert.Equal(t, wantTypes[i], e.ElementType)
		assert.InDelta(t, wantS[i], e.SPositionM, 1e-9)
	}
}

func TestCountByTypeMatchesRegistry(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewLatticeStore(db)
	model := buildTestModel(t)
	wantCounts := model.Elements().CountByType()

	runID, err := store.SaveModel("test", 3.0, model)
	require.NoError(t, err)

	counts, err := store.CountByType(runID)
	require.NoError(t, err)
	assert.Equal(t, wantCounts, counts)
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewLatticeStore(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.SaveModel("test", 3.0, buildTestModel(t))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	seen := make(map[string]bool)
	for _, r := range runs {
		seen[r.RunID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id])
	}

	limited, err := store.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetRunUnknownID(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewLatticeStore(db)
	_, err := store.GetRun("no-such-run")
	assert.Error(t, err)
}
