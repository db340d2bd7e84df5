package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/burnsim/internal/config"
	"github.com/san-kum/burnsim/internal/export"
	"github.com/san-kum/burnsim/internal/materials"
	"github.com/san-kum/burnsim/internal/motor"
	"github.com/san-kum/burnsim/internal/sim"
	"github.com/san-kum/burnsim/internal/storage"
	"github.com/san-kum/burnsim/internal/thermo"
	"github.com/san-kum/burnsim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt           float64
	maxTime      float64
	flowRate     float64
	oxidizerMass float64
	portRadius   float64
	outerRadius  float64
	grainLength  float64
	material     string

	noSave bool

	sweepFlows string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "burnsim",
		Short: "hybrid rocket motor burn simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".burnsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a burn",
		RunE:  runBurn,
	}
	addMotorFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "simulate a burn with a live terminal view",
		RunE:  runLive,
	}
	addMotorFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the motor across a range of oxidizer flow rates",
		RunE:  runSweep,
	}
	addMotorFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepFlows, "flows", "0.2,0.4,0.6,0.8", "comma-separated flow rates (kg/s)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [run_id]",
		Short: "print the summary of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  summarizeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "print the motor mass budget",
		RunE:  printBudget,
	}
	addMotorFlags(budgetCmd)

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list casing materials",
		RunE:  listMaterials,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list motor presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, summaryCmd,
		exportCmd, exportCSVCmd, budgetCmd, materialsCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addMotorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&maxTime, "time", config.DefaultMaxTime, "max burn time (s)")
	cmd.Flags().Float64Var(&flowRate, "flow", 0.5, "oxidizer flow rate (kg/s)")
	cmd.Flags().Float64Var(&oxidizerMass, "oxidizer", 4.0, "oxidizer tank load (kg)")
	cmd.Flags().Float64Var(&portRadius, "port", 0.02, "initial port radius (m)")
	cmd.Flags().Float64Var(&outerRadius, "outer", 0.05, "grain outer radius (m)")
	cmd.Flags().Float64Var(&grainLength, "length", 0.5, "grain length (m)")
	cmd.Flags().StringVar(&material, "material", "SS304", "casing material")
}

// resolveConfig builds the motor configuration with preset values
// overridden by the config file, overridden by explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.MaxTime = maxTime
	}
	if cmd.Flags().Changed("flow") {
		cfg.Oxidizer.FlowRate = flowRate
	}
	if cmd.Flags().Changed("oxidizer") {
		cfg.Oxidizer.TankMass = oxidizerMass
	}
	if cmd.Flags().Changed("port") {
		cfg.Grain.PortRadius = portRadius
	}
	if cmd.Flags().Changed("outer") {
		cfg.Grain.OuterRadius = outerRadius
	}
	if cmd.Flags().Changed("length") {
		cfg.Grain.Length = grainLength
	}
	if cmd.Flags().Changed("material") {
		cfg.Casing.Material = material
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runBurn(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	solver, runCfg, err := motor.Build(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println("igniting...")
	start := time.Now()
	res, runErr := solver.Run(ctx, runCfg)
	if res == nil {
		return runErr
	}
	elapsed := time.Since(start)

	sum := sim.Summarize(res)
	if err := export.RenderSummary(os.Stdout, res, sum); err != nil {
		return err
	}

	if budget, err := motor.Budget(cfg); err == nil {
		fmt.Println()
		if err := export.RenderBudget(os.Stdout, budget, sum.PeakThrust); err != nil {
			return err
		}
	}

	fmt.Printf("\nsimulated in %v\n", elapsed)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(preset, runCfg.Dt, res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	// A burn cut short by a component failure still printed its partial
	// trajectory summary; surface the failure as the exit status.
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	solver, runCfg, err := motor.Build(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	feed := tui.NewFeed()
	solver.AddObserver(feed)
	view := tui.NewModel(cancel, feed)

	go func() {
		res, runErr := solver.Run(ctx, runCfg)
		view.Done(res, runErr)
	}()

	_, err = tea.NewProgram(view).Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rates, err := parseFlows(sweepFlows)
	if err != nil {
		return err
	}

	solver, runCfg, err := motor.Build(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runs := sim.Sweep(ctx, solver, runCfg, rates)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLOW (kg/s)\tSTATUS\tBURN (s)\tIMPULSE (Ns)\tPEAK (N)\tAVG O/F\tAVG ISP (s)")
	for _, run := range runs {
		if run.Result == nil {
			fmt.Fprintf(w, "%.3f\terror: %v\t\t\t\t\t\n", run.FlowRate, run.Err)
			continue
		}
		s := run.Summary
		fmt.Fprintf(w, "%.3f\t%s\t%.2f\t%.1f\t%.1f\t%.2f\t%.1f\n",
			run.FlowRate, s.Status, s.BurnTime, s.TotalImpulse, s.PeakThrust, s.AverageOF, s.AverageIsp)
	}
	return w.Flush()
}

func parseFlows(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	rates := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid flow rate %q: %w", p, err)
		}
		rates = append(rates, v)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no flow rates given")
	}
	return rates, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTATUS\tBURN (s)\tIMPULSE (Ns)\tPEAK (N)")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.1f\t%.1f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Status,
			run.BurnTime,
			run.TotalImpulse,
			run.PeakThrust,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nstatus: %s\nsamples: %d\n\n", meta.ID, meta.Status, len(tr))
	return export.RenderPlots(os.Stdout, tr)
}

func summarizeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	res := &sim.Result{
		Status:           sim.ParseStatus(meta.Status),
		Trajectory:       tr,
		OxidizerConsumed: meta.OxidizerConsumed,
		FuelConsumed:     meta.FuelConsumed,
	}
	if meta.Error != "" {
		res.Err = fmt.Errorf("%s", meta.Error)
	}
	return export.RenderSummary(os.Stdout, res, sim.Summarize(res))
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, tr)
}

func printBudget(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	budget, err := motor.Budget(cfg)
	if err != nil {
		return err
	}
	if err := export.RenderBudget(os.Stdout, budget, 0); err != nil {
		return err
	}
	fmt.Printf("\ntank vapor pressure at %.1f °C: %.1f bar\n",
		cfg.Oxidizer.TankTemp, thermo.N2OVaporPressure(cfg.Oxidizer.TankTemp))
	return nil
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDENSITY (kg/m^3)\tYIELD (MPa)")
	for _, name := range materials.List() {
		props, err := materials.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\n", name, props.Density, props.YieldStrength/1e6)
	}
	return w.Flush()
}
