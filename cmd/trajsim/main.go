package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/analysis"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/atmos"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/config"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/models"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/optim"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/report"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/scenario"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/storage"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/telemetry"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	configFile string
	preset     string
	// Phase plot axes
	xAxis int
	yAxis int
	// Sweep parameters
	sweepParam  string
	sweepLo     float64
	sweepHi     float64
	sweepPoints int
	sweepMetric string
	// Dispersion parameters
	numRuns    int
	windSpread float64
	spinSpread float64
	// Telemetry server
	listenAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trajsim",
		Short: "trajectory and dynamics simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trajsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 1, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 0, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid search a launch parameter against a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParameter,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	sweepCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "loft", "parameter to sweep (loft, omega, speed)")
	sweepCmd.Flags().Float64Var(&sweepLo, "lo", 10, "lower bound")
	sweepCmd.Flags().Float64Var(&sweepHi, "hi", 60, "upper bound")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "grid points")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "downrange", "metric to maximize")

	disperseCmd := &cobra.Command{
		Use:   "disperse [scenario]",
		Short: "batch dispersion study over wind and spin spreads",
		Args:  cobra.ExactArgs(1),
		RunE:  disperseRuns,
	}
	disperseCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	disperseCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	disperseCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	disperseCmd.Flags().IntVar(&numRuns, "runs", 9, "number of ensemble members")
	disperseCmd.Flags().Float64Var(&windSpread, "wind-spread", 8, "headwind..tailwind half-range (m/s)")
	disperseCmd.Flags().Float64Var(&spinSpread, "spin-spread", 100, "spin rate half-range (rad/s)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the rocket scenario in real time with prometheus telemetry",
		RunE:  serveTelemetry,
	}
	serveCmd.Flags().Float64Var(&dt, "dt", 0.1, "timestep")
	serveCmd.Flags().Float64Var(&duration, "time", 300.0, "duration")
	serveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":9091", "metrics listen address")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, compareCmd, presetsCmd, sweepCmd, disperseCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig layers preset, config file, and flags: presets seed the
// config, a file overrides the preset, and explicitly set flags win over
// both.
func buildConfig(cmd *cobra.Command, scenarioName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenarioName

	if preset != "" {
		pc := config.GetPreset(scenarioName, preset)
		if pc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenarioName))
		}
		cfg = pc
	}

	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fc.Scenario = scenarioName
		cfg = fc
	}

	if cmd.Flags().Changed("dt") || (configFile == "" && preset == "") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") || (configFile == "" && preset == "") {
		cfg.Duration = duration
	}
	if f := cmd.Flags().Lookup("integrator"); f != nil {
		if f.Changed || (configFile == "" && preset == "") {
			cfg.Integrator = integrator
		}
	}

	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := buildConfig(cmd, name)
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	sc, err := registry.Get(name, cfg)
	if err != nil {
		return err
	}

	integ, err := scenario.NewIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", name)
	start := time.Now()

	result, err := sc.Run(context.Background(), integ)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Dt, cfg.Duration, cfg.Integrator, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(report.Summary(name, cfg.Integrator, cfg.Dt, result.StepsTaken, result.Stopped, result.Metrics))

	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tINTEG\tSTOPPED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Stopped,
		)
	}

	return w.Flush()
}

// trajectoryIndices maps a scenario to its downrange and altitude slots.
// Scenarios without a spatial trajectory report ok=false and get a time
// series plot instead.
func trajectoryIndices(scenarioName string) (xIdx, zIdx int, ok bool) {
	switch scenarioName {
	case "golf":
		return models.ProjX, models.ProjZ, true
	case "rocket":
		return models.RocketX, models.RocketZ, true
	default:
		return 0, 0, false
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	if xIdx, zIdx, ok := trajectoryIndices(meta.Scenario); ok {
		fmt.Println(report.TrajectoryPlot(states, xIdx, zIdx, 80, 20))
		fmt.Println()
		fmt.Println(report.SeriesPlot(states, zIdx, "altitude vs sample"))
		return nil
	}

	switch meta.Scenario {
	case "spring":
		fmt.Println(report.SeriesPlot(states, models.SpringX, "displacement vs sample"))
		fmt.Println()
		fmt.Println(report.SeriesPlot(states, models.SpringVx, "velocity vs sample"))
	default:
		data := analysis.Series(states, 0)
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("q0 vs sample"),
		))
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("x-axis: q%d, y-axis: q%d\n\n", xAxis, yAxis)

	fmt.Println(report.PhasePlot(states, xAxis, yAxis, 80, 20))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		States:  states,
		Times:   times,
		Metrics: meta.Metrics,
		Stopped: meta.Stopped,
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	name := args[0]
	integrators := args[1:]

	cfg := config.DefaultConfig()
	cfg.Scenario = name
	cfg.Dt = dt
	cfg.Duration = duration

	registry := scenario.NewRegistry()

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", name, dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tAPEX\tTIME_MS")

	for _, intName := range integrators {
		integ, err := scenario.NewIntegrator(intName)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", intName, err)
			continue
		}

		// Fresh scenario per integrator so runs cannot contaminate each
		// other through shared model state.
		sc, err := registry.Get(name, cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := sc.Run(context.Background(), integ)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", intName, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.2f\n",
			intName, result.StepsTaken, result.Metrics["apex"],
			float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	name := args[0]
	if name != "golf" {
		return fmt.Errorf("sweep supports the golf scenario only, got: %s", name)
	}

	switch sweepParam {
	case "loft", "omega", "speed":
	default:
		return fmt.Errorf("unknown sweep parameter: %s (loft, omega, speed)", sweepParam)
	}

	registry := scenario.NewRegistry()
	integName := integrator

	grid := optim.NewGrid(
		[]string{sweepParam},
		[][]float64{optim.Span(sweepLo, sweepHi, sweepPoints)},
	)

	build := func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		cfg := config.DefaultConfig()
		cfg.Scenario = name
		cfg.Dt = dt
		cfg.Duration = duration
		if v, ok := params["loft"]; ok {
			cfg.Projectile.LoftDeg = v
		}
		if v, ok := params["omega"]; ok {
			cfg.Projectile.Omega = v
		}
		if v, ok := params["speed"]; ok {
			cfg.Projectile.Speed = v
		}

		sc, err := registry.Get(name, cfg)
		if err != nil {
			return nil, sim.Config{}, err
		}
		integ, err := scenario.NewIntegrator(integName)
		if err != nil {
			return nil, sim.Config{}, err
		}
		return sc.Simulator(integ), sc.Cfg, nil
	}

	fmt.Printf("sweeping %s over [%.2f, %.2f] in %d points, maximizing %s...\n",
		sweepParam, sweepLo, sweepHi, sweepPoints, sweepMetric)

	best, val, err := grid.Maximize(context.Background(), build, sweepMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("every grid point failed")
	}

	fmt.Printf("best %s: %.4f (%s = %.6f)\n", sweepParam, best[sweepParam], sweepMetric, val)
	return nil
}

func disperseRuns(cmd *cobra.Command, args []string) error {
	name := args[0]
	if name != "golf" {
		return fmt.Errorf("disperse supports the golf scenario only, got: %s", name)
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", numRuns)
	}
	if _, err := scenario.NewIntegrator(integrator); err != nil {
		return err
	}

	registry := scenario.NewRegistry()

	// Spread wind and spin symmetrically across the ensemble: member 0 is
	// full headwind and minimum spin, the last member full tailwind and
	// maximum spin, the middle member the nominal drive.
	scenarios := make([]*scenario.Scenario, numRuns)
	fracs := make([]float64, numRuns)
	for i := range scenarios {
		frac := 0.0
		if numRuns > 1 {
			frac = 2*float64(i)/float64(numRuns-1) - 1
		}
		fracs[i] = frac

		cfg := config.DefaultConfig()
		cfg.Scenario = name
		cfg.Dt = dt
		cfg.Duration = duration
		cfg.Projectile.WindVx = windSpread * frac
		cfg.Projectile.Omega += spinSpread * frac

		sc, err := registry.Get(name, cfg)
		if err != nil {
			return err
		}
		scenarios[i] = sc
	}

	integName := integrator
	e := sim.NewEnsemble(numRuns, func(run int) *sim.Simulator {
		// Fresh integrator per member: scratch buffers are not shared
		// across goroutines.
		integ, _ := scenario.NewIntegrator(integName)
		return scenarios[run].Simulator(integ)
	})

	fmt.Printf("dispersing %d runs (wind ±%.1f m/s, spin ±%.0f rad/s)...\n", numRuns, windSpread, spinSpread)
	results, err := e.Run(context.Background(), scenarios[0].Cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tWIND\tSPIN\tAPEX\tDOWNRANGE\tCROSSRANGE")
	for i, r := range results {
		spin := 0.0
		if p, ok := scenarios[i].System.(*models.Projectile); ok {
			spin = p.Omega
		}
		fmt.Fprintf(w, "%d\t%.2f\t%.1f\t%.2f\t%.2f\t%.2f\n",
			i,
			windSpread*fracs[i],
			spin,
			r.Metrics["apex"],
			r.Metrics["downrange"],
			r.Metrics["crossrange"],
		)
	}
	return w.Flush()
}

// pacer slows the run to wall-clock speed so scrapers see the flight
// evolve rather than a single final sample.
type pacer struct{ step time.Duration }

func (p pacer) OnStep(s float64, q ode.State) { time.Sleep(p.step) }

func serveTelemetry(cmd *cobra.Command, args []string) error {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	cfg, err := buildConfig(cmd, "rocket")
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	sc, err := registry.Get("rocket", cfg)
	if err != nil {
		return err
	}

	rocket, ok := sc.System.(*models.Rocket)
	if !ok {
		return fmt.Errorf("rocket scenario did not produce a rocket system")
	}

	integ, err := scenario.NewIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telemetry.Serve(listenAddr, logger); err != nil {
			logger.Log("level", "error", "subsys", "telemetry", "err", err)
			stop()
		}
	}()

	// The publisher gets its own atmosphere so gauge lookups never disturb
	// the model's altitude cache.
	var pubAtm atmos.Model = atmos.NewUS76()
	if cfg.Rocket.Atmosphere == "exponential" {
		pubAtm = atmos.NewExponential()
	}

	pub := telemetry.NewPublisher(rocket, pubAtm, logger, int(1/cfg.Dt))
	s := sc.Simulator(integ)
	s.AddObserver(pub)
	s.AddObserver(pacer{step: time.Duration(cfg.Dt * float64(time.Second))})

	logger.Log("level", "info", "subsys", "sim", "scenario", "rocket",
		"dt", cfg.Dt, "duration", cfg.Duration)

	result, err := s.Run(ctx, sc.Cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	logger.Log("level", "info", "subsys", "sim", "msg", "run complete",
		"steps", result.StepsTaken, "apex(m)", result.Metrics["apex"])

	// Keep serving the final sample until interrupted.
	<-ctx.Done()
	return nil
}
