// karios-server serves the reference-context API over HTTP.
//
// Usage:
//
//	karios-server [-config config/karios.yaml] [-listen 127.0.0.1:4330] [-log-file path]
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karios/internal/archive"
	"karios/internal/backend"
	"karios/internal/config"
	"karios/internal/httpapi"
	"karios/internal/refctx"
	"karios/internal/util"
)

func main() {
	defaultCfg := "config/karios.yaml"
	if p := os.Getenv("KARIOS_CONFIG"); p != "" {
		defaultCfg = p
	}
	cfgPath := flag.String("config", defaultCfg, "path to the YAML config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	logFile := flag.String("log-file", "", "also append logs to this file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	logger, closeLog, err := newLogger(cfg, *logFile)
	if err != nil {
		log.Fatalf("setting up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	client := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, logger)
	agg := refctx.New(client, logger)

	var store archive.Store
	if cfg.Archive.Enabled {
		store, err = archive.Open(cfg.Archive.Driver, cfg.Archive.Path)
		if err != nil {
			log.Fatalf("opening archive: %v", err)
		}
		defer store.Close()
		logger.Info("archive enabled", "driver", cfg.Archive.Driver, "path", cfg.Archive.Path)
	}

	srv := httpapi.NewServer(agg, store, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.Handler(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("karios server listening", "addr", httpServer.Addr, "backend", cfg.Backend.BaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down karios server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// newLogger builds the process logger from config, optionally teeing to a
// log file.
func newLogger(cfg *config.Config, logFile string) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stdout
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stdout, f)
		closeFn = func() { f.Close() }
	}

	opts := &slog.HandlerOptions{Level: util.ParseLevel(cfg.Logging.Level)}
	var h slog.Handler
	if cfg.Logging.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h), closeFn, nil
}
