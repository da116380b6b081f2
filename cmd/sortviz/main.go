package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	dataDir    string
	size       int
	delayMs    int
	seed       int64
	theme      string
	listen     string
	logFile    string
	record     bool
	frameRate  int
	outFile    string
	svgFile    string
)

// main registers the commands and flags and runs the TUI when no subcommand
// is given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "step-by-step sorting visualizer",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.IntVar(&size, "size", config.DefaultSize, "array size")
	pf.IntVar(&delayMs, "delay", config.DefaultDelayMs, "delay between steps (ms)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&listen, "listen", config.DefaultListen, "listen address for serve")
	pf.StringVar(&logFile, "log", "", "write logs to this file")
	pf.BoolVar(&record, "record", false, "save finished runs to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live [algorithm]",
		Short: "interactive terminal visualizer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui [algorithm]",
		Short: "desktop visualizer window (raylib)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "sort one array headless and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&svgFile, "svg", "", "write the sortedness trend as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run with its frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "also write the last frame as an svg bar chart")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario.yaml]",
		Short: "run a benchmark scenario without pacing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP and WebSocket control API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, listCmd, showCmd, exportCmd, benchCmd, presetsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then the preset, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("delay") {
		cfg.DelayMs = delayMs
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("listen") {
		cfg.Listen = listen
	}
	if flags.Changed("record") {
		cfg.Record = record
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	cfg.Clamp()

	// pin the seed so saved runs can be regenerated
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// setupLogging points the standard logger at --log. With quiet set and no
// file, logs are dropped so they cannot tear the alt screen.
func setupLogging(quiet bool) (func(), error) {
	if logFile == "" {
		if quiet {
			log.SetOutput(io.Discard)
		}
		return func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}
