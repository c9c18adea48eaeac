// Command scene-run loads a scene configuration into a headless world, ticks it for a
// while and prints a report of the load diagnostics and system timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/scenery/internal/bootstrap"
	"github.com/rotisserie/eris"
)

type options struct {
	ConfigPath string
	Duration   time.Duration
	TickRate   int
	Realtime   bool
	Strict     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.ConfigPath, "config", "", "Path of the scene configuration (YAML or JSON).")
	flag.DurationVar(&opts.Duration, "duration", 5*time.Second, "The total duration the scene should run for.")
	flag.IntVar(&opts.TickRate, "tps", 60, "Simulated ticks per second; sets the delta passed to systems.")
	flag.BoolVar(&opts.Realtime, "realtime", false, "Tick on a wall clock timer instead of as fast as possible.")
	flag.BoolVar(&opts.Strict, "strict", false, "Exit with an error if the load reported any diagnostics.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	verbose := flag.Bool("v", false, "Log debug output.")
	flag.Parse()

	if opts.ConfigPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("Unknown profile mode %q", *profileMode)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	report, err := run(context.Background(), opts, logger)
	if err != nil {
		log.Fatalf("Scene run failed: %v", err)
	}

	fmt.Println("\n\n--- Scene Run Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if opts.Strict && len(report.Diagnostics) > 0 {
		log.Fatalf("Load reported %d diagnostics", len(report.Diagnostics))
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) (*Report, error) {
	if opts.TickRate <= 0 {
		return nil, eris.Errorf("tick rate must be positive, got %d", opts.TickRate)
	}

	log.Printf("Loading %s...\n", opts.ConfigPath)
	loadStart := time.Now()
	w, loadReport, err := bootstrap.LoadWorld(ctx, opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ConfigPath:  opts.ConfigPath,
		Duration:    opts.Duration,
		TickRate:    opts.TickRate,
		LoadTime:    time.Since(loadStart),
		Diagnostics: loadReport.Diagnostics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running scene for %s...\n", opts.Duration)
	runCtx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	dt := 1 / float64(opts.TickRate)
	startTime := time.Now()

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(time.Second / time.Duration(opts.TickRate))
		defer ticker.Stop()
	}

Loop:
	for {
		if ticker != nil {
			select {
			case <-runCtx.Done():
				break Loop
			case <-ticker.C:
			}
		} else if runCtx.Err() != nil {
			break Loop
		}

		updateStart := time.Now()
		if err := w.Update(dt); err != nil {
			return nil, err
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = time.Duration(float64(report.TotalUpdates) * dt * float64(time.Second))
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.World = w.CollectStats()
	report.Scheduler = w.Stats()

	if err := w.Close(ctx); err != nil {
		logger.Warn("Closing the world failed", slog.Any("error", err))
	}

	log.Println("Scene run finished.")
	return report, nil
}
