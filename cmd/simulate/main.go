// Command simulate emulates vendor acquisitions in a watch folder and
// checks whether the MD QC agent reacts to them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mdqctest/internal/acquisition"
	"mdqctest/internal/config"
	"mdqctest/internal/logging"
	"mdqctest/internal/progress"
	"mdqctest/internal/protocol"
	"mdqctest/internal/report"
	"mdqctest/internal/suite"
)

const (
	ExitSuccess     = 0
	ExitSuiteFailed = 1
	ExitError       = 2
)

func main() {
	watchFolder := flag.String("watch-folder", "", "path to the watch folder configured in the agent (required)")
	vendorList := flag.String("vendor", "thermo", "comma-separated vendors to simulate (thermo, bruker, agilent, waters)")
	duration := flag.Duration("duration", 10*time.Second, "duration of each simulated acquisition")
	sizeMB := flag.Float64("size-mb", 5.0, "final artifact size in MB")
	cleanup := flag.Bool("cleanup", false, "remove test files after completion")
	testTimeout := flag.Bool("test-timeout", false, "create an acquisition that never finishes (stop with Ctrl+C)")
	runName := flag.String("run-name", "", "custom run name (default: auto-generated with timestamp)")
	observeTimeout := flag.Duration("observe-timeout", 0, "how long to wait for the agent (0 = duration + stability buffer)")
	configPath := flag.String("config", "", "path to YAML harness config file")
	output := flag.String("output", "text", "output format: text, json")
	quiet := flag.Bool("quiet", false, "suppress progress output")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	slog.SetDefault(logging.New(*verbose, false))

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

	// Config file values fill in anything the flags left at defaults.
	cfg := suite.Config{
		WatchFolder:    *watchFolder,
		Duration:       *duration,
		FinalSize:      int64(*sizeMB * 1024 * 1024),
		ObserveTimeout: *observeTimeout,
		Cleanup:        *cleanup,
	}
	vendorNames := splitVendors(*vendorList)

	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		if cfg.WatchFolder == "" {
			cfg.WatchFolder = fileCfg.WatchFolder
		}
		if !flagSet("duration") && fileCfg.Duration > 0 {
			cfg.Duration = fileCfg.Duration
		}
		if !flagSet("size-mb") && fileCfg.SizeMB > 0 {
			cfg.FinalSize = int64(fileCfg.SizeMB * 1024 * 1024)
		}
		if cfg.ObserveTimeout == 0 {
			cfg.ObserveTimeout = fileCfg.ObserveTimeout
		}
		if !flagSet("cleanup") {
			cfg.Cleanup = fileCfg.Cleanup
		}
		if !flagSet("vendor") && len(fileCfg.Vendors) > 0 {
			vendorNames = fileCfg.Vendors
		}
	}

	if cfg.WatchFolder == "" {
		fmt.Fprintln(os.Stderr, "error: --watch-folder is required")
		flag.Usage()
		os.Exit(ExitError)
	}

	// Vendors are validated before any filesystem mutation.
	for _, name := range vendorNames {
		v, err := protocol.Parse(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		cfg.Vendors = append(cfg.Vendors, v)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	interrupted := false
	go func() {
		<-sigCh
		interrupted = true
		if !*quiet {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		}
		cancel()
	}()

	prog := progress.NewPrinter(*quiet)

	if *testTimeout {
		os.Exit(runTimeoutTest(ctx, cfg, *runName, prog))
	}

	if !*quiet {
		names := make([]string, len(cfg.Vendors))
		for i, v := range cfg.Vendors {
			names[i] = string(v)
		}
		report.Banner(os.Stdout, cfg.WatchFolder, names, cfg.Duration, cfg.Cleanup)
	}

	orch := suite.New(cfg)
	orch.Reporter = prog
	orch.Progress = prog
	results := orch.Run(ctx)

	if *output == "json" {
		report.FormatJSON(os.Stdout, results)
	} else {
		report.FormatText(os.Stdout, results, false)
	}

	if interrupted {
		os.Exit(ExitSuccess)
	}
	if !results.Passed() {
		os.Exit(ExitSuiteFailed)
	}
	os.Exit(ExitSuccess)
}

// runTimeoutTest simulates an acquisition that never completes, so the
// agent's stability-window timeout handling can be exercised. Runs until
// interrupted.
func runTimeoutTest(ctx context.Context, cfg suite.Config, runName string, prog *progress.Printer) int {
	v := cfg.Vendors[0]
	p, err := protocol.For(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}

	prog.Print("TIMEOUT TEST MODE")
	prog.Print("This creates a file that keeps growing indefinitely.")
	prog.Print("The agent should eventually time out and mark it as failed.")
	prog.Print("Press Ctrl+C to stop the test.")

	if runName == "" {
		runName = acquisition.RunName("TIMEOUT_"+strings.ToUpper(string(v)), nil)
	}

	sim := acquisition.New(cfg.WatchFolder, p)
	sim.Reporter = prog
	run, err := sim.Simulate(ctx, acquisition.Options{
		RunName:   runName,
		Duration:  time.Hour,
		FinalSize: 1 << 30,
		Unbounded: true,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}

	prog.Print("Stopping acquisition simulation")
	if cfg.Cleanup {
		if err := run.Cleanup(); err != nil {
			slog.Warn("cleanup failed", "path", run.RootPath, "err", err)
		}
	}
	return ExitSuccess
}

func splitVendors(list string) []string {
	var out []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// flagSet reports whether a flag was passed explicitly on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
