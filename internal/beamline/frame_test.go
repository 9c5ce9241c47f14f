package beamline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameCollector records the traversal order by entity name.
type nameCollector struct {
	names []string
}

func (c *nameCollector) ActOn(f LatticeFrame) {
	c.names = append(c.names, f.Name())
}

func TestTraversalIsPreOrder(t *testing.T) {
	t.Parallel()

	// root ( A, inner ( B, C ), D )
	root := NewSequenceFrame("ROOT", OriginAtEntrance)
	inner := NewSequenceFrame("INNER", OriginAtEntrance)
	root.AppendFrame(NewComponentFrame(NewDrift("A", 1)))
	inner.AppendFrame(NewComponentFrame(NewDrift("B", 1)))
	inner.AppendFrame(NewComponentFrame(NewDrift("C", 1)))
	root.AppendFrame(inner)
	root.AppendFrame(NewComponentFrame(NewDrift("D", 1)))

	var c nameCollector
	root.Traverse(&c)

	assert.Equal(t, []string{"ROOT", "A", "INNER", "B", "C", "D"}, c.names)
}

func TestSequenceFrameLengthSumsChildren(t *testing.T) {
	t.Parallel()

	f := NewSequenceFrame("F", OriginAtCenter)
	assert.Zero(t, f.Length())
	f.AppendFrame(NewComponentFrame(NewDrift("D1", 1.5)))
	f.AppendFrame(NewComponentFrame(NewMarker("MK")))
	f.AppendFrame(NewComponentFrame(NewDrift("D2", 0.5)))
	assert.InDelta(t, 2.0, f.Length(), 1e-12)
	assert.Equal(t, OriginAtCenter, f.Origin())
}

func TestConsolidationFreezesNestedFrames(t *testing.T) {
	t.Parallel()

	outer := NewSequenceFrame("OUTER", OriginAtEntrance)
	inner := NewSequenceFrame("INNER", OriginAtEntrance)
	inner.AppendFrame(NewComponentFrame(NewDrift("D", 2.0)))
	outer.AppendFrame(inner)

	outer.ConsolidateConstruction()
	assert.True(t, outer.Consolidated())
	assert.True(t, inner.Consolidated(), "consolidation must recurse")
	assert.InDelta(t, 2.0, outer.Length(), 1e-12)

	require.Panics(t, func() { outer.AppendFrame(NewComponentFrame(NewDrift("X", 1))) })
	require.Panics(t, func() { inner.AppendFrame(NewComponentFrame(NewDrift("X", 1))) })

	// Idempotent.
	assert.NotPanics(t, func() { outer.ConsolidateConstruction() })
}

func TestComponentFrameDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty occurrence", func(t *testing.T) {
		t.Parallel()
		cf := NewComponentFrame(nil)
		assert.False(t, cf.IsComponent())
		assert.Nil(t, cf.Component())
		assert.Equal(t, "UNNAMED", cf.Name())
		assert.Zero(t, cf.Length())
		assert.Equal(t, -1, cf.BeamlineIndex())
	})

	t.Run("carried component", func(t *testing.T) {
		t.Parallel()
		q := NewQuadrupole("QX", 0.4, 5)
		cf := NewComponentFrame(q)
		assert.True(t, cf.IsComponent())
		assert.Same(t, q, cf.Component())
		assert.Equal(t, "QX", cf.Name())
		assert.Equal(t, "ComponentFrame", cf.Type())
		assert.InDelta(t, 0.4, cf.Length(), 1e-12)
	})
}

func TestComponentTypeTags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		component AcceleratorComponent
		wantType  string
	}{
		{NewDrift("d", 1), "Drift"},
		{NewSectorBend("b", 1, 1.5, 0.1), "SectorBend"},
		{NewRectBend("b", 1, 1.5, 0.1), "RectBend"},
		{NewQuadrupole("q", 1, 10), "Quadrupole"},
		{NewSkewQuadrupole("q", 1, 10), "SkewQuadrupole"},
		{NewSextupole("s", 1, 100), "Sextupole"},
		{NewSkewSextupole("s", 1, 100), "SkewSextupole"},
		{NewOctupole("o", 1, 1000), "Octupole"},
		{NewSolenoid("sol", 1, 2), "Solenoid"},
		{NewRFCavity("rf", 1, 2, 500e6, 0), "RFCavity"},
		{NewCollimator("col", 0.5), "Collimator"},
		{NewXCorrector("xc", 0.2, 1e-4), "XCorrector"},
		{NewYCorrector("yc", 0.2, 1e-4), "YCorrector"},
		{NewMonitor("bpm", 0), "Monitor"},
		{NewMarker("mk"), "Marker"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.wantType, tc.component.Type())
	}
}

func TestSectorBendRadius(t *testing.T) {
	t.Parallel()

	b := NewSectorBend("B", 2.0, 1.2, 0.1)
	assert.InDelta(t, 20.0, b.Radius(), 1e-12)

	straight := NewSectorBend("B0", 2.0, 0, 0)
	assert.Zero(t, straight.Radius())
}
