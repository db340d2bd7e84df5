package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/burnsim/internal/motor"
	"github.com/san-kum/burnsim/internal/sim"
	"github.com/san-kum/burnsim/internal/thermo"
)

// RenderSummary writes the run summary. Error runs are marked
// explicitly so a truncated trajectory is never mistaken for a
// completed burn.
func RenderSummary(w io.Writer, res *sim.Result, sum sim.Summary) error {
	if res.Status == sim.StatusError {
		fmt.Fprintf(w, "Error: %v (run aborted at step %d)\n\n", res.Err, len(res.Trajectory))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Status\t%s\n", sum.Status)
	fmt.Fprintf(tw, "Burn Time\t%.2f s\n", sum.BurnTime)
	fmt.Fprintf(tw, "Samples\t%d\n", sum.Samples)
	fmt.Fprintf(tw, "Total Impulse\t%.2f Ns\n", sum.TotalImpulse)
	fmt.Fprintf(tw, "Average Thrust\t%.2f N\n", sum.AverageThrust)
	fmt.Fprintf(tw, "Peak Thrust\t%.2f N\n", sum.PeakThrust)
	fmt.Fprintf(tw, "Minimum Thrust\t%.2f N\n", sum.MinThrust)
	fmt.Fprintf(tw, "Average O/F Ratio\t%.2f\n", sum.AverageOF)
	fmt.Fprintf(tw, "Average Isp\t%.2f s\n", sum.AverageIsp)
	fmt.Fprintf(tw, "Peak Chamber Pressure\t%.2f bar\n", sum.PeakChamberPress/1e5)
	fmt.Fprintf(tw, "Final Chamber Pressure\t%.2f bar\n", sum.FinalChamberPress/1e5)
	fmt.Fprintf(tw, "Initial Port Radius\t%.4f m\n", sum.InitialPortRadius)
	fmt.Fprintf(tw, "Final Port Radius\t%.4f m\n", sum.FinalPortRadius)
	fmt.Fprintf(tw, "Oxidizer Consumed\t%.3f kg\n", sum.OxidizerConsumed)
	fmt.Fprintf(tw, "Fuel Consumed\t%.3f kg\n", sum.FuelConsumed)
	if err := tw.Flush(); err != nil {
		return err
	}

	if sum.LowPressure {
		fmt.Fprintln(w, "\nwarning: chamber pressure dropped below 2 bar during the burn")
	}
	if sum.StructuralExceeded {
		fmt.Fprintln(w, "warning: chamber pressure exceeded the casing design limit")
	}
	return nil
}

// RenderBudget writes the structural mass budget and the resulting
// thrust-to-weight figure.
func RenderBudget(w io.Writer, b motor.MassBudget, peakThrust float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Casing Mass\t%.3f kg\n", b.Casing)
	fmt.Fprintf(tw, "Tank Mass\t%.3f kg\n", b.Tank)
	fmt.Fprintf(tw, "Fuel Mass\t%.3f kg\n", b.Fuel)
	fmt.Fprintf(tw, "Oxidizer Mass\t%.3f kg\n", b.Oxidizer)
	fmt.Fprintf(tw, "Total Mass\t%.3f kg\n", b.Total())
	if total := b.Total(); total > 0 && peakThrust > 0 {
		fmt.Fprintf(tw, "Thrust-to-Weight Ratio\t%.2f\n", peakThrust/(total*thermo.Gravity))
	}
	return tw.Flush()
}
