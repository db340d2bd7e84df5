package export

import (
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/burnsim/internal/sim"
)

// plotSeries pairs a trajectory accessor with its chart caption.
var plotSeries = []struct {
	caption string
	values  func(sim.Trajectory) []float64
}{
	{"thrust (N) vs time", sim.Trajectory.Thrust},
	{"port radius (m) vs time", sim.Trajectory.PortRadii},
	{"O/F ratio vs time", sim.Trajectory.OFRatios},
	{"oxidizer mass flux (kg/m^2/s) vs time", sim.Trajectory.OxidizerFlux},
}

// RenderPlots draws ASCII charts of the principal burn series. Samples
// with an undefined O/F ratio are dropped from that chart rather than
// plotted as NaN.
func RenderPlots(w io.Writer, tr sim.Trajectory) error {
	if len(tr) == 0 {
		return fmt.Errorf("empty trajectory")
	}

	for _, s := range plotSeries {
		data := dropNaN(s.values(tr))
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
	return nil
}

func dropNaN(vals []float64) []float64 {
	out := vals[:0:0]
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
