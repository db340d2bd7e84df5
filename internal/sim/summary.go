package sim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Summary is derived once from a finalized trajectory; it holds no
// independent state.
type Summary struct {
	Status             Status
	Samples            int
	BurnTime           float64 // s
	TotalImpulse       float64 // N·s
	AverageThrust      float64 // N
	PeakThrust         float64 // N
	MinThrust          float64 // N
	AverageOF          float64
	AverageIsp         float64 // s
	PeakChamberPress   float64 // Pa
	FinalChamberPress  float64 // Pa
	InitialPortRadius  float64 // m
	FinalPortRadius    float64 // m
	OxidizerConsumed   float64 // kg
	FuelConsumed       float64 // kg
	LowPressure        bool
	StructuralExceeded bool
}

// Summarize computes run statistics from the result's trajectory. Total
// impulse uses trapezoidal integration of the thrust series; averages
// over O/F and Isp skip samples flagged undefined.
func Summarize(res *Result) Summary {
	sum := Summary{
		Status:           res.Status,
		Samples:          len(res.Trajectory),
		OxidizerConsumed: res.OxidizerConsumed,
		FuelConsumed:     res.FuelConsumed,
	}
	if len(res.Trajectory) == 0 {
		return sum
	}

	tr := res.Trajectory
	times := tr.Times()
	thrust := tr.Thrust()

	sum.BurnTime = times[len(times)-1]
	sum.PeakThrust = floats.Max(thrust)
	sum.MinThrust = floats.Min(thrust)
	sum.AverageThrust = floats.Sum(thrust) / float64(len(thrust))
	if len(times) >= 2 {
		sum.TotalImpulse = integrate.Trapezoidal(times, thrust)
	}

	var ofSum, ispSum float64
	var ofCount, ispCount int
	for _, s := range tr {
		if !s.OFUndefined {
			ofSum += s.OFRatio
			ofCount++
		}
		if !s.IspUndefined {
			ispSum += s.Isp
			ispCount++
		}
		if s.LowPressure {
			sum.LowPressure = true
		}
		if s.Margin != nil && !s.Margin.OK {
			sum.StructuralExceeded = true
		}
		if s.ChamberPressure > sum.PeakChamberPress {
			sum.PeakChamberPress = s.ChamberPressure
		}
	}
	if ofCount > 0 {
		sum.AverageOF = ofSum / float64(ofCount)
	}
	if ispCount > 0 {
		sum.AverageIsp = ispSum / float64(ispCount)
	}

	sum.FinalChamberPress = tr[len(tr)-1].ChamberPressure
	sum.InitialPortRadius = tr[0].PortRadius
	sum.FinalPortRadius = tr[len(tr)-1].PortRadius
	return sum
}
