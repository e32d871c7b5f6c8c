package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/reporthub/reporthub/internal/config"
	"github.com/reporthub/reporthub/internal/coordinator"
	"github.com/reporthub/reporthub/internal/logging"
	"github.com/reporthub/reporthub/internal/metrics"
)

// options are the command line flags.
type options struct {
	configFile string
	envFile    string
	logLevel   string
	lang       string
	list       bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("reporthub", flag.ContinueOnError)
	fs.StringVar(&o.configFile, "config", "", "Path to config file (YAML)")
	fs.StringVar(&o.envFile, "env-file", ".env", "Path to .env file loaded before reading the environment")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.lang, "lang", "", "Language of notification texts (en, es)")
	fs.BoolVar(&o.list, "list", false, "list report formats and channels, then exit")
	err := fs.Parse(args)
	return o, err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// initialize logging
	cleanup := initLogging(cfg)
	defer cleanup()

	m := coordinator.New(cfg)
	if opts.list {
		printInventory(os.Stdout, m)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start metrics & influx if configured
	srv, stopInflux := initMetricsAndInflux(ctx, cfg)
	defer stopInflux()

	for name, ok := range m.CheckChannels(ctx) {
		logging.Get().Debug().Str("channel", name).Bool("available", ok).Msg("channel pre-flight")
	}

	sum, err := m.Run(ctx)
	if err != nil {
		logging.Get().Error().Err(err).Msg("demonstration interrupted")
	}
	logging.Get().Info().Int("sent", sum.Sent()).Int("deliveries", len(sum.Deliveries)).Msg("demonstration finished")

	if srv != nil {
		waitAndShutdown(ctx, srv)
	}
}

// loadConfig applies defaults, the config file, the environment (after the
// .env file) and finally the CLI flags, in increasing precedence.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	// load from file if provided (overrides defaults)
	if opts.configFile != "" {
		c, err := config.LoadConfigFromFile(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed loading config: %w", err)
		}
		cfg = c
	}

	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}
	// apply env var overrides (overrides file/defaults)
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// CLI flags should have highest precedence (override env/file/defaults)
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.lang != "" {
		cfg.Language = opts.lang
	}
	return cfg, nil
}

// initLogging initializes log subsystem from config and returns a cleanup func
func initLogging(cfg *config.Config) func() {
	cleanup, err := logging.Init(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return cleanup
}

func newMetricsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.PromHandler())
	mux.Handle("/status", metrics.JSONHandler())
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// initMetricsAndInflux starts the optional metrics server and Influx pusher.
// The returned server is nil when metrics are disabled. The returned stop
// func cancels the pusher and waits for its final push.
func initMetricsAndInflux(ctx context.Context, cfg *config.Config) (*http.Server, func()) {
	stop := func() {}
	if cfg.InfluxURL != "" {
		pushCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			metrics.StartInfluxPusher(pushCtx, cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket, cfg.InfluxInterval)
		}()
		stop = func() {
			cancel()
			<-done
		}
	}
	if !cfg.MetricsEnabled {
		return nil, stop
	}
	srv := newMetricsServer(cfg.MetricsPort)
	go func() {
		logging.Get().Info().Str("addr", srv.Addr).Msg("starting metrics server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Get().Error().Err(err).Msg("metrics server stopped")
		}
	}()
	return srv, stop
}

// waitAndShutdown keeps the metrics endpoints up until ctx is cancelled by a
// signal, then gives the server up to 5 seconds to finish.
func waitAndShutdown(ctx context.Context, srv *http.Server) {
	logging.Get().Info().Msg("serving metrics until interrupted")
	<-ctx.Done()

	logging.Get().Info().Msg("shutdown signal received, stopping metrics server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Get().Warn().Err(err).Msg("metrics server shutdown")
	}
}

func printInventory(w io.Writer, m *coordinator.Manager) {
	fmt.Fprintf(w, "formats:  %s\n", strings.Join(m.Registry().Formats(), ", "))
	fmt.Fprintf(w, "channels: %s\n", strings.Join(m.Channels().Names(), ", "))
}
