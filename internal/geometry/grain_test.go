package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestPortArea(t *testing.T) {
	got := PortArea(0.02)
	want := math.Pi * 0.02 * 0.02
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("PortArea(0.02) = %g, want %g", got, want)
	}
}

func TestBurnArea(t *testing.T) {
	got := BurnArea(0.02, 0.5)
	want := 2 * math.Pi * 0.02 * 0.5
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("BurnArea = %g, want %g", got, want)
	}
}

func TestGrainValidate(t *testing.T) {
	tests := []struct {
		name  string
		grain Grain
		ok    bool
	}{
		{"valid", Grain{0.02, 0.05, 0.5}, true},
		{"zero port", Grain{0, 0.05, 0.5}, false},
		{"negative port", Grain{-0.01, 0.05, 0.5}, false},
		{"outer below port", Grain{0.05, 0.02, 0.5}, false},
		{"zero length", Grain{0.02, 0.05, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grain.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	g := Grain{InitialPortRadius: 0.02, OuterRadius: 0.05, Length: 0.5}

	r, burnedOut, err := g.Advance(0.02, 0.001, 0.01)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if burnedOut {
		t.Error("unexpected burnout")
	}
	if math.Abs(r-0.02001) > 1e-12 {
		t.Errorf("expected radius 0.02001, got %g", r)
	}
}

func TestAdvance_Burnout(t *testing.T) {
	g := Grain{InitialPortRadius: 0.02, OuterRadius: 0.05, Length: 0.5}

	r, burnedOut, err := g.Advance(0.0499, 0.5, 0.01)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !burnedOut {
		t.Fatal("expected burnout")
	}
	if r != g.OuterRadius {
		t.Errorf("radius must be pinned at outer wall, got %g", r)
	}
}

func TestAdvance_InvalidRate(t *testing.T) {
	g := Grain{InitialPortRadius: 0.02, OuterRadius: 0.05, Length: 0.5}

	for _, rate := range []float64{-0.001, math.NaN(), math.Inf(1)} {
		_, _, err := g.Advance(0.02, rate, 0.01)
		if !errors.Is(err, ErrInvalidRegressionRate) {
			t.Errorf("rate %v: expected ErrInvalidRegressionRate, got %v", rate, err)
		}
	}
}

func TestFuelMass(t *testing.T) {
	g := Grain{InitialPortRadius: 0.02, OuterRadius: 0.05, Length: 0.5}
	got := g.FuelMass(900)
	want := math.Pi * (0.05*0.05 - 0.02*0.02) * 0.5 * 900
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("FuelMass = %g, want %g", got, want)
	}
}

func TestTankVolumes(t *testing.T) {
	tank := Tank{OuterDiameter: 0.10, WallThickness: 0.003, Length: 0.6, UllageFraction: 0.8}

	if d := tank.InnerDiameter(); math.Abs(d-0.094) > 1e-12 {
		t.Errorf("inner diameter = %g, want 0.094", d)
	}
	inner := math.Pi * 0.047 * 0.047 * 0.6
	if v := tank.InnerVolume(); math.Abs(v-inner) > 1e-12 {
		t.Errorf("inner volume = %g, want %g", v, inner)
	}
	if v := tank.AvailableVolume(); math.Abs(v-0.8*inner) > 1e-12 {
		t.Errorf("available volume = %g, want %g", v, 0.8*inner)
	}
}
