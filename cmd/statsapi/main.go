// statsapi serves a stats pool at /api/CharacterStats, the endpoint battlecore
// fetches from by default.
// Usage: statsapi [--listen <addr>] [--config <file>] (--roster <dir> | --stats-file <file>)
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nathoo/battlecore/config"
	"github.com/nathoo/battlecore/loader"
	"github.com/nathoo/battlecore/logging"
	"github.com/nathoo/battlecore/web"
)

func main() {
	cfg := config.Default()
	var configFile, roster, statsFile, listen string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			fail(fmt.Errorf("%s requires a value", args[i]))
		}
		switch args[i] {
		case "--config":
			configFile = args[i+1]
		case "--roster":
			roster = args[i+1]
		case "--stats-file":
			statsFile = args[i+1]
		case "--listen":
			listen = args[i+1]
		default:
			fail(fmt.Errorf("unknown argument %q", args[i]))
		}
		i++
	}

	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			fail(err)
		}
	}
	if roster != "" || statsFile != "" {
		cfg.Stats.RosterDir, cfg.Stats.File = roster, statsFile
	}
	if listen != "" {
		cfg.API.Listen = listen
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fail(err)
	}
	defer logger.Sync()

	var pool *loader.Pool
	switch {
	case cfg.Stats.RosterDir != "":
		pool, err = loader.Load(cfg.Stats.RosterDir)
	case cfg.Stats.File != "":
		pool, err = loader.LoadJSON(cfg.Stats.File)
	default:
		err = errors.New("statsapi needs --roster or --stats-file")
	}
	if err != nil {
		logger.Error("loading stats pool", zap.Error(err))
		fail(err)
	}

	r := mux.NewRouter()
	r.Handle("/api/CharacterStats", web.StatsHandler(pool.Entries)).Methods(http.MethodGet)
	srv := &http.Server{Addr: cfg.API.Listen, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving stats",
		zap.String("addr", cfg.API.Listen),
		zap.String("source", pool.Source),
		zap.Int("entries", len(pool.Entries)))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("stats server", zap.Error(err))
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
