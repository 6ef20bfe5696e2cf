// -----------------------------------------------------------------------
// Lectio - document understanding service
// Extracts structured content from uploaded documents via vision models
// -----------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ternarybob/lectio/internal/app"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/server"
)

// configFlags collects repeated -config flags
type configFlags []string

func (c *configFlags) String() string {
	return strings.Join(*c, ",")
}

func (c *configFlags) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func main() {
	common.InstallCrashHandler("./logs")
	defer common.RecoverWithCrashFile()

	var configs configFlags
	flag.Var(&configs, "config", "Path to a TOML config file (repeatable, later files override earlier)")
	port := flag.Int("port", 0, "Override server port")
	flag.IntVar(port, "p", 0, "Override server port (shorthand)")
	host := flag.String("host", "", "Override server host")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(showVersion, "v", false, "Print version and exit (shorthand)")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	common.PrintBanner(common.GetVersion())

	// Auto-discover a config file when none was specified
	if len(configs) == 0 {
		if _, err := os.Stat("lectio.toml"); err == nil {
			configs = append(configs, "lectio.toml")
		}
	}

	cfg, err := common.LoadConfig(configs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}

	logger := common.InitLogger(cfg)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	if err := application.Cleanup.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start upload cleanup")
	}

	srv := server.New(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
