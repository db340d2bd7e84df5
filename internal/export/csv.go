// Package export renders finished runs for downstream consumers: CSV
// time series, terminal plots, and the textual summary.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/burnsim/internal/sim"
)

// Columns is the CSV header. The order and presence of the first five
// columns is a compatibility contract with external plotting tools; the
// remaining columns are informational extras.
var Columns = []string{
	"Time (s)",
	"Thrust (N)",
	"Port Radius (m)",
	"O/F Ratio",
	"Oxidizer Mass Flux (kg/m^2/s)",
	"Specific Impulse (s)",
	"Chamber Pressure (Pa)",
	"Regression Rate (m/s)",
}

// WriteCSV streams the trajectory as CSV. Undefined quantities are
// written as NaN, never as zero.
func WriteCSV(w io.Writer, tr sim.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return err
	}

	row := make([]string, len(Columns))
	for _, s := range tr {
		for i, v := range []float64{
			s.Time,
			s.Thrust,
			s.PortRadius,
			s.OFRatio,
			s.OxidizerFlux,
			s.Isp,
			s.ChamberPressure,
			s.RegressionRate,
		} {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
