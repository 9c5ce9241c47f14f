// Package units provides shared physics constants and conversions for
// beamline construction.
package units

import "math"

// Physical constants.
const (
	// SpeedOfLight is c in m/s.
	SpeedOfLight = 2.99792458e8

	// ElectronMassGeV is the electron rest mass in GeV/c^2.
	ElectronMassGeV = 0.51099895e-3

	// ProtonMassGeV is the proton rest mass in GeV/c^2.
	ProtonMassGeV = 0.93827208816
)

// Energy unit names accepted on the command line.
const (
	GeV = "gev"
	MeV = "mev"
	TeV = "tev"
)

// ValidEnergyUnits contains all accepted energy unit values.
var ValidEnergyUnits = []string{GeV, MeV, TeV}

// IsValidEnergyUnit checks if the given unit is in the list of valid units.
func IsValidEnergyUnit(unit string) bool {
	for _, valid := range ValidEnergyUnits {
		if unit == valid {
			return true
		}
	}
	return false
}

// ToGeV converts a momentum or energy value in the given unit to GeV.
func ToGeV(value float64, unit string) float64 {
	switch unit {
	case MeV:
		return value * 1e-3
	case TeV:
		return value * 1e3
	default:
		return value
	}
}

// BrhoFromMomentum returns the magnetic rigidity B*rho in T.m for a
// reference momentum in GeV/c. Brho = p/(e c) with p in SI units.
func BrhoFromMomentum(momentumGeV float64) float64 {
	return momentumGeV * 1e9 / SpeedOfLight
}

// MomentumFromBrho is the inverse of BrhoFromMomentum.
func MomentumFromBrho(brho float64) float64 {
	return brho * SpeedOfLight / 1e9
}

// RFHalfWavelength returns half the free-space RF wavelength in metres for
// a cavity frequency in Hz. Used when single-cell cavities are forced to
// lambda/2 geometry.
func RFHalfWavelength(frequencyHz float64) float64 {
	if frequencyHz <= 0 {
		return 0
	}
	return SpeedOfLight / (2 * frequencyHz)
}

// SynchRadLossPerDipole returns the electron energy loss in GeV across one
// dipole of bend angle theta (radians) and bending radius rho (metres) at
// beam energy E (GeV). This is the classical per-dipole share of the
// isomagnetic energy loss per turn, U0 = Cgamma E^4 / rho.
func SynchRadLossPerDipole(energyGeV, theta, rho float64) float64 {
	if rho == 0 || theta == 0 {
		return 0
	}
	const cGamma = 8.846e-5 // m/GeV^3
	u0 := cGamma * math.Pow(energyGeV, 4) / math.Abs(rho)
	return u0 * math.Abs(theta) / (2 * math.Pi)
}
