// Command reclipd runs the reclip scheduling daemon in the foreground.
// It loads configuration from the default search path, wires the
// pipeline, and serves the control socket until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"reclip/internal/config"
	"reclip/internal/daemonrun"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: standard search path)")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	cfg, resolvedPath, exists, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !exists {
		fmt.Fprintf(os.Stderr, "no config file found at %s; run `reclip config init` first\n", resolvedPath)
		os.Exit(1)
	}

	opts := daemonrun.Options{LogLevel: *logLevel}
	if err := daemonrun.Run(context.Background(), cfg, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("reclipd: %v", err)
	}
}
