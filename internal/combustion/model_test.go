package combustion

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/burnsim/internal/geometry"
	"github.com/san-kum/burnsim/internal/thermo"
)

var testFuel = Fuel{Density: 900, A: 1e-4, N: 0.5}

func testModel(nozzle NozzleModel) *Model {
	throat := geometry.PortArea(0.003)
	exit := geometry.PortArea(0.006)
	return NewModel(testFuel, nozzle, throat, exit)
}

func TestEvaluate_ZeroPortArea(t *testing.T) {
	m := testModel(NewIsentropicNozzle(1.0))

	for _, area := range []float64{0, -0.001} {
		_, err := m.Evaluate(area, 0.05, 0.5)
		if !errors.Is(err, ErrZeroPortArea) {
			t.Errorf("area %g: expected ErrZeroPortArea, got %v", area, err)
		}
	}
}

func TestEvaluate_NegativeFlow(t *testing.T) {
	m := testModel(NewIsentropicNozzle(1.0))

	_, err := m.Evaluate(0.001, 0.05, -0.1)
	if !errors.Is(err, ErrNegativeMassFlow) {
		t.Errorf("expected ErrNegativeMassFlow, got %v", err)
	}
}

func TestEvaluate_ZeroFlux(t *testing.T) {
	m := testModel(NewIsentropicNozzle(1.0))

	inst, err := m.Evaluate(geometry.PortArea(0.02), geometry.BurnArea(0.02, 0.5), 0)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	if inst.OxidizerFlux != 0 {
		t.Errorf("expected zero flux, got %g", inst.OxidizerFlux)
	}
	if inst.RegressionRate != 0 {
		t.Errorf("expected zero regression rate, got %g", inst.RegressionRate)
	}
	if inst.FuelMassFlow != 0 {
		t.Errorf("expected zero fuel flow, got %g", inst.FuelMassFlow)
	}
	if !inst.OFUndefined || !math.IsNaN(inst.OFRatio) {
		t.Error("O/F must be flagged undefined when fuel flow is zero")
	}
	if !inst.IspUndefined || !math.IsNaN(inst.Isp) {
		t.Error("Isp must be flagged undefined when total flow is zero")
	}
}

func TestEvaluate_RegressionLaw(t *testing.T) {
	m := testModel(NewIsentropicNozzle(1.0))

	portArea := geometry.PortArea(0.02)
	burnArea := geometry.BurnArea(0.02, 0.5)
	inst, err := m.Evaluate(portArea, burnArea, 0.5)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	flux := 0.5 / portArea
	rate := 1e-4 * math.Pow(flux, 0.5)
	fuelFlow := 900 * burnArea * rate

	if math.Abs(inst.OxidizerFlux-flux) > 1e-12 {
		t.Errorf("flux = %g, want %g", inst.OxidizerFlux, flux)
	}
	if math.Abs(inst.RegressionRate-rate) > 1e-15 {
		t.Errorf("rate = %g, want %g", inst.RegressionRate, rate)
	}
	if math.Abs(inst.FuelMassFlow-fuelFlow) > 1e-12 {
		t.Errorf("fuel flow = %g, want %g", inst.FuelMassFlow, fuelFlow)
	}
	if math.Abs(inst.OFRatio-0.5/fuelFlow) > 1e-9 {
		t.Errorf("O/F = %g, want %g", inst.OFRatio, 0.5/fuelFlow)
	}
	if inst.OFUndefined || inst.IspUndefined {
		t.Error("no undefined flags expected for a nominal instant")
	}
}

func TestEvaluate_ThrustEquation(t *testing.T) {
	// With a fixed exhaust velocity the thrust contract
	// F = mdot*Ve + (pe-pa)*Ae is directly checkable.
	nozzle := FixedExhaust{Velocity: 1800, ExitPressure: 1.2e5}
	m := testModel(nozzle)

	inst, err := m.Evaluate(geometry.PortArea(0.02), geometry.BurnArea(0.02, 0.5), 0.5)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	want := inst.TotalMassFlow*1800 + (1.2e5-m.AmbientPressure)*m.ExitArea
	if math.Abs(inst.Thrust-want) > 1e-9 {
		t.Errorf("thrust = %g, want %g", inst.Thrust, want)
	}

	wantIsp := want / (inst.TotalMassFlow * thermo.Gravity)
	if math.Abs(inst.Isp-wantIsp) > 1e-9 {
		t.Errorf("Isp = %g, want %g", inst.Isp, wantIsp)
	}
}

func TestChamberPressure(t *testing.T) {
	pc := ChamberPressure(0.6, geometry.PortArea(0.003), thermo.SpecificGasConstant, 3000, thermo.Gamma)
	if pc <= 0 {
		t.Fatalf("expected positive chamber pressure, got %g", pc)
	}

	// Pressure scales linearly with mass flow through the choked throat.
	pc2 := ChamberPressure(1.2, geometry.PortArea(0.003), thermo.SpecificGasConstant, 3000, thermo.Gamma)
	if math.Abs(pc2/pc-2) > 1e-9 {
		t.Errorf("expected doubled flow to double pressure: %g vs %g", pc, pc2)
	}

	if ChamberPressure(0, 1e-5, thermo.SpecificGasConstant, 3000, thermo.Gamma) != 0 {
		t.Error("zero flow must give zero pressure")
	}
}

func TestIsentropicNozzle(t *testing.T) {
	n := NewIsentropicNozzle(1.0)

	// No expansion without a favorable pressure gradient.
	ex := n.Evaluate(0.5e5, 3000)
	if ex.Velocity != 0 {
		t.Errorf("expected zero velocity below exit pressure, got %g", ex.Velocity)
	}

	ex = n.Evaluate(20e5, 3000)
	if ex.Velocity <= 0 {
		t.Fatalf("expected positive exhaust velocity, got %g", ex.Velocity)
	}

	derated := NewIsentropicNozzle(0.9).Evaluate(20e5, 3000)
	if math.Abs(derated.Velocity-0.9*ex.Velocity) > 1e-9 {
		t.Errorf("efficiency not applied: %g vs %g", derated.Velocity, ex.Velocity)
	}
}

func TestCharacteristicVelocity(t *testing.T) {
	if got := CharacteristicVelocity(10e5, 1e-5, 0.5); math.Abs(got-20) > 1e-12 {
		t.Errorf("c* = %g, want 20", got)
	}
	if got := CharacteristicVelocity(10e5, 1e-5, 0); got != 0 {
		t.Errorf("c* with zero flow = %g, want 0", got)
	}
}
