// Package qspace converts diffraction angles to reciprocal-space coordinates.
package qspace

import (
	"fmt"
	"math"

	"github.com/xrdtools/xrdtools-go/pkg/xrdml/models"
)

// DefaultLambda is the Cu K-Alpha wavelength in Angstrom.
const DefaultLambda = 1.54

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// QVector converts 2Theta/Omega angle pairs (degrees) and a wavelength
// (Angstrom) to the in-plane (kpar) and out-of-plane (kperp) components of
// the scattering vector.
func QVector(twoTheta, omega []float64, lambda float64) (kpar, kperp []float64, err error) {
	if len(twoTheta) != len(omega) {
		return nil, nil, fmt.Errorf("2Theta and Omega lengths differ: %d vs %d", len(twoTheta), len(omega))
	}
	kpar = make([]float64, len(twoTheta))
	kperp = make([]float64, len(twoTheta))
	for i := range twoTheta {
		theta := radians(twoTheta[i]) / 2
		delta := theta - radians(omega[i])
		dk := 2 / lambda * math.Sin(theta)
		kpar[i] = dk * math.Sin(delta)
		kperp[i] = dk * math.Cos(delta)
	}
	return kpar, kperp, nil
}

// QMap computes the scattering vector components for a reciprocal-space map,
// applying omegaOffset (degrees) to the Omega axis. The measurement must
// carry 2Theta as the scan axis and Omega as the step axis (or vice versa).
func QMap(m *models.Measurement, omegaOffset float64) (kpar, kperp []float64, err error) {
	twoTheta, omega := m.X, m.Y
	if m.XLabel == "Omega" || m.XLabel == "Omega-2Theta" {
		twoTheta, omega = m.Y, m.X
	}
	if twoTheta == nil || omega == nil {
		return nil, nil, fmt.Errorf("measurement does not carry both 2Theta and Omega axes")
	}
	om := make([]float64, len(omega))
	for i, v := range omega {
		om[i] = v + omegaOffset
	}
	return QVector(twoTheta, om, m.Wavelength.Lambda)
}

// QToHKL rescales scattering vector components to h/k and l coordinates for
// the given lattice parameters (Angstrom) and reflection.
func QToHKL(kpar, kperp []float64, lattice [3]float64, hkl models.HKL) (x, y []float64) {
	a, b, c := lattice[0], lattice[1], lattice[2]
	inplane := math.Sqrt(math.Pow(float64(hkl.H)/a, 2) + math.Pow(float64(hkl.K)/b, 2))

	x = make([]float64, len(kpar))
	y = make([]float64, len(kperp))
	for i := range kpar {
		x[i] = kpar[i] / inplane
		y[i] = kperp[i] * c
	}
	return x, y
}

// Angles computes the 2Theta, Omega and offset angle (degrees) at which a
// given reflection of a unit cell with the given lattice parameters
// (Angstrom, right angles assumed) diffracts at wavelength lambda.
func Angles(hkl models.HKL, lambda float64, lattice [3]float64) (twoTheta, omega, delta float64) {
	a0, a1, a2 := lattice[0], lattice[1], lattice[2]
	h, k, l := float64(hkl.H), float64(hkl.K), float64(hkl.L)

	dHKL := 1 / math.Sqrt(math.Pow(h/a0, 2)+math.Pow(k/a1, 2)+math.Pow(l/a2, 2))

	theta := degrees(math.Asin(lambda / (2 * dHKL)))
	offset := degrees(math.Atan(1 / math.Sqrt(math.Pow(l/a2, 2)) / (1 / math.Sqrt(math.Pow(h/a0, 2)+math.Pow(k/a1, 2)))))

	return 2 * theta, theta - offset, offset
}
