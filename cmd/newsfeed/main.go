package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/content"
	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/feed"
	"github.com/umputun/newsfeed/pkg/llm"
	"github.com/umputun/newsfeed/pkg/remote"
	"github.com/umputun/newsfeed/pkg/repository"
	"github.com/umputun/newsfeed/pkg/scheduler"
	"github.com/umputun/newsfeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// articleStore is what both record store backends provide
type articleStore interface {
	server.Database
	scheduler.Store
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting newsfeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, opts.NoColor, secrets(cfg)...)

	store, closeStore, err := makeStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	if len(cfg.Feeds) > 0 {
		sched := makeScheduler(cfg, store)
		sched.Start(ctx)
		defer sched.Stop()
	}

	srv := server.New(cfg, store, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeStore opens the configured record store backend
func makeStore(ctx context.Context, cfg *config.Config) (articleStore, func(), error) {
	switch cfg.Store.Type {
	case config.StoreRemote:
		log.Printf("[INFO] using remote record store %s, table %s", cfg.Remote.URL, cfg.Remote.Table)
		client := remote.New(remote.Params{
			URL:     cfg.Remote.URL,
			APIKey:  cfg.Remote.APIKey,
			Table:   cfg.Remote.Table,
			Timeout: cfg.Remote.Timeout,
		})
		return client, func() {}, nil
	default:
		repos, err := repository.NewRepositories(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Printf("[INFO] using sqlite record store")
		closeFn := func() {
			if err := repos.Close(); err != nil {
				log.Printf("[WARN] failed to close database: %v", err)
			}
		}
		return repos.Article, closeFn, nil
	}
}

// makeScheduler wires the ingest pipeline, extraction and LLM scoring are optional
func makeScheduler(cfg *config.Config, store scheduler.Store) *scheduler.Scheduler {
	feeds := make([]domain.Feed, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		feeds = append(feeds, domain.Feed{URL: f.URL, Publication: f.Publication})
	}

	params := scheduler.Params{
		Store:          store,
		Parser:         newFeedParser(cfg),
		Feeds:          feeds,
		UpdateInterval: cfg.Schedule.UpdateInterval,
		MaxWorkers:     cfg.Schedule.MaxWorkers,
	}
	if cfg.Extraction.Enabled {
		params.Extractor = content.NewHTTPExtractor(content.Params{
			Timeout:       cfg.Extraction.Timeout,
			UserAgent:     cfg.Extraction.UserAgent,
			MinTextLength: cfg.Extraction.MinTextLength,
		})
	}
	if cfg.LLMEnabled() {
		log.Printf("[INFO] machine scoring with model %s", cfg.LLM.Model)
		params.Classifier = llm.NewClassifier(cfg.LLM)
	}
	return scheduler.NewScheduler(params)
}

// newFeedParser makes the feed parser, fetches are bound by schedule.fetch_timeout
func newFeedParser(cfg *config.Config) *feed.Parser {
	return feed.NewParser(cfg.Schedule.FetchTimeout, cfg.Extraction.UserAgent)
}

// secrets lists config values that must never show up in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.Remote.APIKey, cfg.LLM.APIKey} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	color.NoColor = noColor
	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
