// Command rls-server runs the request-dispatch core over stdin/stdout,
// speaking the Content-Length-framed JSON-RPC line protocol described in
// this module's specification. Flag and config-loading shape follows the
// teacher's root main.go (tryLoadConfig, flag.StringVar long/short pairs).
package main

import (
	"flag"
	"fmt"
	"os"

	"rlscore/collaborators/analysis"
	"rlscore/collaborators/buildqueue"
	"rlscore/collaborators/vfs"
	"rlscore/config"
	"rlscore/dispatch"
	"rlscore/logging"
)

func main() {
	var confPath string
	var logPath string
	var logLevel string
	var projectPath string

	flag.StringVar(&confPath, "config", "", "Path to server configuration file")
	flag.StringVar(&confPath, "c", "", "Path to server configuration file (short)")
	flag.StringVar(&logPath, "log-path", "", "Path to log file (overrides config and default)")
	flag.StringVar(&logPath, "l", "", "Path to log file (short)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: verbose, debug, information, warning, error (overrides config)")
	flag.StringVar(&projectPath, "project", "", "Project root to watch for out-of-band file changes")
	flag.Parse()

	cfg, err := config.Load(confPath, "rls_config.yaml", "rls_config.example.yaml")
	if err != nil {
		// config.Load falls back to config.Default() for a missing or
		// unparseable file and currently always returns a nil error.
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err := logging.New(logging.Config{
		LogPath:         cfg.LogPath,
		Level:           cfg.LogLevel,
		RequestDeadline: cfg.RequestDeadline,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Information("rls-server: starting, deadline={Deadline}, log={LogPath}", cfg.RequestDeadline, cfg.LogPath)

	host := analysis.NewInMemoryHost()
	overlay := vfs.NewOverlay()

	runner := buildqueue.NewRunner(cfg.BuildCommand, cfg.BuildArgs, cfg.RequestDeadline*10, log)

	if projectPath != "" && len(cfg.WatchExtensions) > 0 {
		watcher, err := buildqueue.NewWatcher(projectPath, cfg.WatchExtensions, cfg.WatchInterval, runner, log)
		if err != nil {
			log.Warning("rls-server: file watcher disabled: {Error}", err)
		} else if err := watcher.Start(); err != nil {
			log.Warning("rls-server: file watcher failed to start: {Error}", err)
		} else {
			defer watcher.Stop()
		}
	}

	d := dispatch.New(os.Stdin, os.Stdout, host, overlay, runner, log, cfg.RequestDeadline)
	if err := d.Run(); err != nil {
		log.Error("rls-server: exiting on fatal error: {Error}", err)
		os.Exit(1)
	}
	log.Information("rls-server: exiting cleanly")
}
