package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/analysis"
	"github.com/san-kum/sortviz/internal/bench"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/gui"
	"github.com/san-kum/sortviz/internal/server"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
)

// configWithAlgorithm loads the configuration and applies an optional
// algorithm argument.
func configWithAlgorithm(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		alg, err := sorting.ParseAlgorithm(args[0])
		if err != nil {
			return nil, err
		}
		cfg.Algorithm = alg.String()
	}
	return cfg, nil
}

func openStore(dir string) (*storage.Store, error) {
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("init data dir: %w", err)
	}
	return st, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := configWithAlgorithm(cmd, args)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer closeLog()

	var st *storage.Store
	if cfg.Record {
		if st, err = openStore(cfg.DataDir); err != nil {
			return err
		}
	}

	ctrl := engine.New(cfg.Settings(), cfg.EngineOptions())
	log.Printf("tui: %s, size %d, delay %dms, seed %d", cfg.Algorithm, cfg.Size, cfg.DelayMs, cfg.Seed)

	return viz.Run(cmd.Context(), ctrl, viz.Options{
		Theme:     cfg.Theme,
		FrameRate: cfg.FrameRate,
		Seed:      cfg.Seed,
		Store:     st,
		Record:    cfg.Record,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := configWithAlgorithm(cmd, args)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	fps := 60
	if cmd.Flags().Changed("fps") {
		fps = cfg.FrameRate
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := engine.New(cfg.Settings(), cfg.EngineOptions())
	log.Printf("gui: %s, size %d, delay %dms, seed %d", cfg.Algorithm, cfg.Size, cfg.DelayMs, cfg.Seed)
	gui.Run(ctx, ctrl, gui.Options{Theme: cfg.Theme, FPS: fps})
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := configWithAlgorithm(cmd, args)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := engine.New(cfg.Settings(), cfg.EngineOptions())
	tracker := analysis.NewTracker(0)
	recorder := storage.NewRecorder(0)
	ctrl.AddObserver(tracker)
	ctrl.AddObserver(recorder)

	alg := cfg.GetAlgorithm()
	initial := ctrl.Frame().Values
	fmt.Printf("running %s sort on %d values (delay %dms, seed %d)\n", alg, len(initial), cfg.DelayMs, cfg.Seed)
	fmt.Printf("inversions: %d of %d\n", analysis.Inversions(initial), analysis.MaxInversions(len(initial)))

	res := ctrl.OnStart(ctx, alg)

	if hist := tracker.History(); len(hist) > 1 {
		graph := asciigraph.Plot(hist,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("sortedness per step"),
		)
		fmt.Println()
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("outcome: %s\n", res.Outcome)
	fmt.Printf("comparisons: %d\n", res.Stats.Comparisons)
	fmt.Printf("writes: %d\n", res.Stats.Writes)
	fmt.Printf("steps: %d\n", res.Stats.Yields)
	fmt.Printf("sortedness: %.0f%%\n", tracker.Last()*100)
	fmt.Printf("elapsed: %v\n", res.Elapsed.Round(time.Millisecond))

	frames, truncated := recorder.Frames()
	if truncated {
		log.Printf("frame buffer full, saving the first %d frames", len(frames))
	}
	id, err := st.Save(storage.NewRecord(res, cfg.Seed, cfg.Delay()), frames)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tOUTCOME\tCOMPARES\tWRITES\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%d\t%dms\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Outcome,
			run.Stats.Comparisons,
			run.Stats.Writes,
			run.ElapsedMs,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("outcome: %s\n", meta.Outcome)
	fmt.Printf("size: %d, delay: %dms, seed: %d\n", meta.Size, meta.DelayMs, meta.Seed)
	fmt.Printf("comparisons: %d, writes: %d, steps: %d\n", meta.Stats.Comparisons, meta.Stats.Writes, meta.Stats.Yields)
	fmt.Printf("initial: %v\n", meta.Initial)
	fmt.Printf("final:   %v\n", meta.Final)
	fmt.Printf("frames: %d\n\n", len(frames))

	if len(frames) < 2 {
		return nil
	}
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = analysis.Sortedness(f.Values)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("sortedness per step"),
	)
	fmt.Println(graph)

	if svgFile != "" {
		svg := export.TrendToSVG(data, 800, 200, string(viz.GetTheme(cfg.Theme).Sorted))
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if svgFile != "" && len(frames) > 0 {
		svg := export.FrameToSVG(frames[len(frames)-1], viz.GetTheme(cfg.Theme), 800, 300)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", svgFile)
	}

	if outFile != "" {
		if err := storage.ExportJSONFile(outFile, *meta, frames); err != nil {
			return err
		}
		fmt.Printf("exported %d frames to %s\n", len(frames), outFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func runBench(cmd *cobra.Command, args []string) error {
	scenario := bench.DefaultScenario()
	if len(args) > 0 {
		sc, err := bench.LoadScenario(args[0])
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		scenario = sc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	results, err := bench.Run(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tSEED\tTRIAL\tINVERSIONS\tCOMPARES\tWRITES\tSTEPS\tELAPSED\tOK")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%v\t%v\n",
			r.Algorithm,
			r.Size,
			r.Seed,
			r.Trial,
			r.Inversions,
			r.Stats.Comparisons,
			r.Stats.Writes,
			r.Stats.Yields,
			r.Elapsed,
			r.Sorted,
		)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tALGORITHM\tSIZE\tDELAY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%dms\n", name, p.Algorithm, p.Size, p.DelayMs)
	}
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := engine.New(cfg.Settings(), cfg.EngineOptions())
	srv := server.New(ctx, ctrl, server.Options{
		Store:          st,
		Record:         cfg.Record,
		Seed:           cfg.Seed,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return srv.ListenAndServe(ctx, cfg.Listen)
}
