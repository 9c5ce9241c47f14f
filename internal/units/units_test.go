package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyUnitValidation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidEnergyUnit(GeV))
	assert.True(t, IsValidEnergyUnit(MeV))
	assert.True(t, IsValidEnergyUnit(TeV))
	assert.False(t, IsValidEnergyUnit("ev"))
	assert.False(t, IsValidEnergyUnit(""))
	assert.False(t, IsValidEnergyUnit("GeV"), "unit names are lower case")
}

func TestToGeV(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 7.0, ToGeV(7.0, GeV), 1e-12)
	assert.InDelta(t, 0.45, ToGeV(450.0, MeV), 1e-12)
	assert.InDelta(t, 7000.0, ToGeV(7.0, TeV), 1e-12)
}

func TestBrhoRoundTrip(t *testing.T) {
	t.Parallel()

	// LHC at 7 TeV: Brho is about 23349 T.m.
	brho := BrhoFromMomentum(7000.0)
	assert.InDelta(t, 23349.4, brho, 0.1)
	assert.InDelta(t, 7000.0, MomentumFromBrho(brho), 1e-9)
}

func TestRFHalfWavelength(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, SpeedOfLight/800e6, RFHalfWavelength(400e6), 1e-12)
	assert.Zero(t, RFHalfWavelength(0))
	assert.Zero(t, RFHalfWavelength(-1))
}

func TestSynchRadLossPerDipole(t *testing.T) {
	t.Parallel()

	const e, rho, twoPi = 3.0, 15.0, 6.283185307179586

	// A full turn of dipoles recovers U0 = Cgamma E^4 / rho.
	fullTurn := SynchRadLossPerDipole(e, twoPi, rho)
	assert.InDelta(t, 8.846e-5*81/rho, fullTurn, 1e-9)

	perDipole := SynchRadLossPerDipole(e, 0.1, rho)
	assert.InDelta(t, fullTurn*0.1/twoPi, perDipole, 1e-12)

	assert.Equal(t, perDipole, SynchRadLossPerDipole(e, -0.1, rho), "loss is sign independent")
	assert.Zero(t, SynchRadLossPerDipole(e, 0, rho))
	assert.Zero(t, SynchRadLossPerDipole(e, 0.1, 0))
}
