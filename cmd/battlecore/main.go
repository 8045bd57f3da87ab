// battlecore runs a 3v3 turn-based battle in the terminal or the browser.
// Usage: battlecore [--version] [--config <file>] [--plain] [--web <addr>]
// [--roster <dir>] [--stats-file <file>] [--stats <url>] [--seed <n>]
// [--script <file>] [--trace] [--inspect <snapshot.json>]
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/battlecore/cli"
	"github.com/nathoo/battlecore/config"
	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/loader"
	"github.com/nathoo/battlecore/logging"
	"github.com/nathoo/battlecore/tui"
	"github.com/nathoo/battlecore/web"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: battlecore [--version] [--config <file>] [--plain] [--web <addr>] [--roster <dir>] [--stats-file <file>] [--stats <url>] [--seed <n>] [--script <file>] [--trace] [--inspect <snapshot.json>]"

type flags struct {
	configFile string
	plain      bool
	trace      bool
	webAddr    string
	roster     string
	statsFile  string
	statsURL   string
	seed       int64
	scriptFile string
	inspect    string
}

func main() {
	f, done, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if done {
		return
	}
	if f.inspect != "" {
		data, err := os.ReadFile(f.inspect)
		if err == nil {
			err = cli.Inspect(os.Stdout, data)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := config.Default()
	if f.configFile != "" {
		if cfg, err = config.Load(f.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	applyFlags(&cfg, f)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	useTUI := f.webAddr == "" && f.scriptFile == "" && !f.plain && isTerminal()
	var logger *zap.Logger
	if useTUI {
		logger, err = logging.Quiet(cfg.Log)
	} else {
		logger, err = logging.New(cfg.Log)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := loadPool(ctx, cfg.Stats)
	if err != nil {
		logger.Error("loading stats pool", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error loading stats: %v\n", err)
		os.Exit(1)
	}
	for _, w := range pool.Warnings {
		logger.Warn("stats pool", zap.String("warning", w))
	}
	title := pool.Title
	if title == "" {
		title = "battlecore"
	}

	if f.webAddr != "" {
		cfg.Web.Listen = f.webAddr
	}
	switch {
	case f.webAddr != "":
		err = serveWeb(ctx, cfg, pool, logger)
	case useTUI:
		err = runTUI(cfg, pool, title, logger)
	default:
		err = runCLI(ctx, cfg, f, pool, title, logger)
	}
	if err != nil {
		logger.Error("battlecore exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the command line. done is set when nothing is left to run.
func parseArgs(args []string) (f flags, done bool, err error) {
	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		*i++
		return args[*i], nil
	}
	for i := 0; i < len(args); i++ {
		var v string
		switch args[i] {
		case "--version":
			fmt.Printf("battlecore %s (commit %s, built %s)\n", version, commit, date)
			return f, true, nil
		case "--plain":
			f.plain = true
		case "--trace":
			f.trace = true
		case "--config":
			v, err = value(&i, args[i])
			f.configFile = v
		case "--web":
			v, err = value(&i, args[i])
			f.webAddr = v
		case "--roster":
			v, err = value(&i, args[i])
			f.roster = v
		case "--stats-file":
			v, err = value(&i, args[i])
			f.statsFile = v
		case "--stats":
			v, err = value(&i, args[i])
			f.statsURL = v
		case "--script":
			v, err = value(&i, args[i])
			f.scriptFile = v
		case "--inspect":
			v, err = value(&i, args[i])
			f.inspect = v
		case "--seed":
			if v, err = value(&i, args[i]); err == nil {
				if f.seed, err = strconv.ParseInt(v, 10, 64); err != nil {
					err = fmt.Errorf("--seed: %w", err)
				}
			}
		default:
			err = fmt.Errorf("unknown argument %q", args[i])
		}
		if err != nil {
			return f, false, err
		}
	}
	return f, false, nil
}

// applyFlags lets the command line override the config file. A stats flag
// replaces every configured source.
func applyFlags(cfg *config.Config, f flags) {
	if f.roster != "" || f.statsFile != "" || f.statsURL != "" {
		cfg.Stats.RosterDir = f.roster
		cfg.Stats.File = f.statsFile
		cfg.Stats.URL = f.statsURL
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
}

// loadPool reads the stats pool from the first configured source.
func loadPool(ctx context.Context, sc config.StatsConfig) (*loader.Pool, error) {
	switch {
	case sc.RosterDir != "":
		return loader.Load(sc.RosterDir)
	case sc.File != "":
		return loader.LoadJSON(sc.File)
	default:
		if sc.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, sc.Timeout)
			defer cancel()
		}
		return loader.Fetch(ctx, nil, sc.URL)
	}
}

func newRandom(seed int64) engine.Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return engine.NewRNG(seed)
}

func runCLI(ctx context.Context, cfg config.Config, f flags, pool *loader.Pool, title string, logger *zap.Logger) error {
	c := cli.New(title)
	c.Trace = f.trace
	if f.scriptFile != "" {
		file, err := os.Open(f.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer file.Close()
		c.In = file
		c.EchoInput = true
	}

	b, err := engine.New(pool.Entries,
		engine.WithRules(cfg.EngineRules()),
		engine.WithRandom(newRandom(cfg.Seed)),
		engine.WithPresenter(c),
		engine.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer b.Close()
	if err := c.Run(ctx, b); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTUI(cfg config.Config, pool *loader.Pool, title string, logger *zap.Logger) error {
	sess := tui.NewSession()
	opts := append(sess.Options(),
		engine.WithRules(cfg.EngineRules()),
		engine.WithRandom(newRandom(cfg.Seed)),
		engine.WithLogger(logger),
	)
	b, err := engine.New(pool.Entries, opts...)
	if err != nil {
		return err
	}
	return tui.Run(b, sess, title)
}

func serveWeb(ctx context.Context, cfg config.Config, pool *loader.Pool, logger *zap.Logger) error {
	opts := []web.Option{web.WithLogger(logger), web.WithRules(cfg.EngineRules())}
	if cfg.Seed != 0 {
		// Battles get consecutive seeds in connection order.
		var n atomic.Int64
		opts = append(opts, web.WithRandom(func() engine.Random {
			return engine.NewRNG(cfg.Seed + n.Add(1) - 1)
		}))
	}
	s := web.NewServer(pool.Entries, opts...)
	srv := &http.Server{
		Addr:              cfg.Web.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("web front end listening", zap.String("addr", cfg.Web.Listen), zap.Int("pool", len(pool.Entries)))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Hub().CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("web front end stopped")
	return nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
