package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/streamcard/internal/app"
	"github.com/five82/streamcard/internal/export"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/streamcard/config.toml)")
	envFile := flag.String("env", "", "env file with STREAMCARD_* overrides (optional, defaults to ./.env)")
	exportFormat := flag.String("export", "", "export the saved schedule as png or jpeg and exit")
	quality := flag.String("quality", "standard", "export quality: standard or high")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, EnvFile: *envFile}
	q, err := export.ParseQuality(*quality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "streamcard: %v\n", err)
		return 2
	}
	opts.Quality = q
	if *exportFormat != "" {
		format, err := export.ParseFormat(*exportFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "streamcard: %v\n", err)
			return 2
		}
		opts.Export = true
		opts.Format = format
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "streamcard: %v\n", err)
		return 1
	}
	return 0
}
