package qspace

import (
	"math"
	"testing"

	"github.com/xrdtools/xrdtools-go/pkg/xrdml/models"
)

func TestQVectorSymmetric(t *testing.T) {
	// In the symmetric geometry (omega = 2theta/2) the scattering vector is
	// purely out of plane.
	kpar, kperp, err := QVector([]float64{30}, []float64{15}, DefaultLambda)
	if err != nil {
		t.Fatalf("QVector failed: %v", err)
	}
	if math.Abs(kpar[0]) > 1e-15 {
		t.Errorf("kpar = %v, expected 0", kpar[0])
	}
	want := 2 / DefaultLambda * math.Sin(15*math.Pi/180)
	if math.Abs(kperp[0]-want) > 1e-12 {
		t.Errorf("kperp = %v, expected %v", kperp[0], want)
	}
}

func TestQVectorLengthMismatch(t *testing.T) {
	if _, _, err := QVector([]float64{30, 31}, []float64{15}, DefaultLambda); err == nil {
		t.Error("Expected error for mismatched inputs")
	}
}

func TestQMap(t *testing.T) {
	m := &models.Measurement{
		Type:       models.TypeAreaMeasurement,
		XLabel:     "2Theta",
		YLabel:     "Omega",
		X:          []float64{30, 30},
		Y:          []float64{14, 15},
		Data:       []float64{1, 2},
		Wavelength: models.Wavelength{Lambda: DefaultLambda},
	}

	kpar, kperp, err := QMap(m, 1.0)
	if err != nil {
		t.Fatalf("QMap failed: %v", err)
	}
	// With the +1 degree offset the first point becomes symmetric.
	if math.Abs(kpar[0]) > 1e-15 {
		t.Errorf("kpar[0] = %v, expected 0", kpar[0])
	}
	if kperp[0] <= 0 {
		t.Errorf("kperp[0] = %v, expected positive", kperp[0])
	}

	m.Y = nil
	if _, _, err := QMap(m, 0); err == nil {
		t.Error("Expected error for measurement without both axes")
	}
}

func TestAnglesSymmetricReflection(t *testing.T) {
	lattice := [3]float64{3.905, 3.905, 3.905}
	tt, omega, delta := Angles(models.HKL{H: 0, K: 0, L: 1}, DefaultLambda, lattice)

	wantTheta := 180 / math.Pi * math.Asin(DefaultLambda/(2*3.905))
	if math.Abs(tt-2*wantTheta) > 1e-9 {
		t.Errorf("2Theta = %v, expected %v", tt, 2*wantTheta)
	}
	// A specular reflection has no offset.
	if delta != 0 {
		t.Errorf("delta = %v, expected 0", delta)
	}
	if math.Abs(omega-wantTheta) > 1e-9 {
		t.Errorf("omega = %v, expected %v", omega, wantTheta)
	}
}

func TestAnglesAsymmetricReflection(t *testing.T) {
	lattice := [3]float64{3.905, 3.905, 3.905}
	tt, omega, delta := Angles(models.HKL{H: 1, K: 0, L: 3}, DefaultLambda, lattice)

	if delta <= 0 {
		t.Errorf("delta = %v, expected positive offset", delta)
	}
	if math.Abs(tt/2-delta-omega) > 1e-9 {
		t.Errorf("omega = %v, expected theta-delta = %v", omega, tt/2-delta)
	}
}

func TestQToHKL(t *testing.T) {
	lattice := [3]float64{3.905, 3.905, 3.905}
	x, y := QToHKL([]float64{0.1}, []float64{0.25}, lattice, models.HKL{H: 1, K: 0, L: 3})

	if math.Abs(x[0]-0.1*3.905) > 1e-12 {
		t.Errorf("x = %v, expected %v", x[0], 0.1*3.905)
	}
	if math.Abs(y[0]-0.25*3.905) > 1e-12 {
		t.Errorf("y = %v, expected %v", y[0], 0.25*3.905)
	}
}
