package beamline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryDeduplicatesByIdentity(t *testing.T) {
	t.Parallel()

	r := NewElementRegistry()
	q := NewQuadrupole("Q", 0.5, 10)

	assert.True(t, r.Add(q))
	assert.False(t, r.Add(q), "re-adding the same instance is a no-op")
	assert.Equal(t, 1, r.Size())
	assert.True(t, r.Contains(q))

	// Structurally equal but distinct instances register separately.
	other := NewQuadrupole("Q", 0.5, 10)
	assert.True(t, r.Add(other))
	assert.Equal(t, 2, r.Size())
}

func TestRegistryPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	r := NewElementRegistry()
	entities := []ModelEntity{
		NewDrift("D1", 1),
		NewMarker("M1"),
		NewDrift("D2", 1),
	}
	for _, e := range entities {
		r.Add(e)
	}

	var got []string
	r.Each(func(e ModelEntity) { got = append(got, e.Name()) })
	assert.Equal(t, []string{"D1", "M1", "D2"}, got)
}

func TestRegistryIgnoresNil(t *testing.T) {
	t.Parallel()

	r := NewElementRegistry()
	assert.False(t, r.Add(nil))
	assert.Zero(t, r.Size())
}

func TestRegistryCountByType(t *testing.T) {
	t.Parallel()

	r := NewElementRegistry()
	r.Add(NewDrift("D1", 1))
	r.Add(NewDrift("D2", 1))
	r.Add(NewQuadrupole("Q1", 0.5, 10))
	r.Add(NewSequenceFrame("F", OriginAtEntrance))

	counts := r.CountByType()
	assert.Equal(t, 2, counts["Drift"])
	assert.Equal(t, 1, counts["Quadrupole"])
	assert.Equal(t, 1, counts["SequenceFrame"])

	assert.Equal(t, []string{"Drift", "Quadrupole", "SequenceFrame"}, r.Types())
}
