package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accel-data/beamline/internal/beamline"
)

func testModel(t *testing.T) *beamline.AcceleratorModel {
	t.Helper()
	ctor := beamline.NewModelConstructor()
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewDrift("D1", 1.0)))
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewQuadrupole("QF", 0.5, 12)))
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewSectorBend("MB", 1.5, 1.2, 0.1)))
	ctor.AppendComponentFrame(beamline.NewComponentFrame(beamline.NewMonitor("BPM", 0)))
	return ctor.GetModel()
}

func TestWriteSynopticHTML(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSynopticHTML(model, &buf))

	html := buf.String()
	assert.Contains(t, html, "Beamline synoptic")
	assert.Contains(t, html, "Quadrupole")
	assert.Contains(t, html, "SectorBend")
	assert.Contains(t, html, "QF")
}

func TestSurveyPlotPNG(t *testing.T) {
	t.Parallel()

	model := testModel(t)
	path := filepath.Join(t.TempDir(), "survey.png")
	require.NoError(t, SurveyPlotPNG(model, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLatticeByTypeGroupsIndices(t *testing.T) {
	t.Parallel()

	byType := latticeByType(testModel(t))
	assert.Equal(t, []int{0}, byType["Drift"])
	assert.Equal(t, []int{1}, byType["Quadrupole"])
	assert.Equal(t, []int{2}, byType["SectorBend"])
	assert.Equal(t, []int{3}, byType["Monitor"])
}
