// Command monitor displays the MD QC agent's status by reading its logs
// and failure ledger. It never talks to the agent directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mdqctest/internal/config"
	"mdqctest/internal/logging"
	"mdqctest/internal/monitor"
	"mdqctest/internal/tail"
)

const (
	ExitSuccess   = 0
	ExitUnhealthy = 1
)

func main() {
	logDir := flag.String("log-dir", "", "path to the agent's log directory (default: auto-detect)")
	dataDir := flag.String("data-dir", "", "path to the agent's data directory (default: auto-detect)")
	follow := flag.Bool("follow", false, "continuously follow log output")
	healthCheck := flag.Bool("health-check", false, "run a health check and exit")
	noColor := flag.Bool("no-color", false, "disable colorized output")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := logging.New(*verbose, *noColor)
	slog.SetDefault(logger)

	paths := config.DefaultPaths()
	if *dataDir != "" {
		paths = config.PathsIn(*dataDir)
	}
	if *logDir != "" {
		paths.LogDir = *logDir
	}

	if *healthCheck {
		if monitor.HealthCheck(os.Stdout, paths) {
			os.Exit(ExitSuccess)
		}
		os.Exit(ExitUnhealthy)
	}

	monitor.ShowStatus(os.Stdout, paths, *noColor)

	if !*follow {
		return
	}

	fmt.Println("\nFollowing agent logs... (Ctrl+C to stop)")

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	tailer := &tail.Tailer{Dir: paths.LogDir, Log: logger}
	tailer.Follow(ctx, func(e tail.Entry) {
		fmt.Println(monitor.RenderEntry(e, *noColor))
	})

	fmt.Println("\nStopped following logs")
}
