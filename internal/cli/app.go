package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/anirbansen/framap/internal/api"
	"github.com/anirbansen/framap/internal/cache"
	"github.com/anirbansen/framap/internal/fetch"
	"github.com/anirbansen/framap/internal/geometry"
	"github.com/anirbansen/framap/internal/model"
	"github.com/anirbansen/framap/internal/session"
)

// app wires the client components together for a command invocation: one
// network client, one session store attached to it, and the fetch/geometry
// services on top.
type app struct {
	cfg     *model.Config
	log     zerolog.Logger
	client  *api.Client
	store   *session.Store
	fetcher *fetch.Service
	layer   *geometry.Layer
}

func newApp() *app {
	cfg := loadConfig()
	log := newLogger(cfg)

	client := api.New(cfg.API.BaseURL, cfg.HTTP, log)
	store := session.New(cfg.Session.Path, client, log)
	store.Attach(client)

	var responses cache.Cache
	if cfg.Cache.Enabled && !noCache {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		store.OnClear(func() {
			if err := layered.Clear(); err != nil {
				log.Debug().Err(err).Msg("failed to clear response cache")
			}
		})
		responses = layered
	}

	return &app{
		cfg:     cfg,
		log:     log,
		client:  client,
		store:   store,
		fetcher: fetch.New(client, store, responses, cfg.API.BaseURL, cfg.HTTP.MaxRetries, log),
		layer:   geometry.NewLayer(log),
	}
}

// requireSession is the boot gate: without an authenticated session only the
// login and register commands are reachable.
func (a *app) requireSession() error {
	if !a.store.IsAuthenticated() {
		return fmt.Errorf("not logged in (run 'framap login' first)")
	}
	return nil
}

// loadConfig layers the viper state over the built-in defaults.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		return model.DefaultConfig()
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = model.DefaultConfig().API.BaseURL
	}
	return cfg
}

func newLogger(cfg *model.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Output.LogLevel); err == nil && cfg.Output.LogLevel != "" {
		level = parsed
	}
	if verbose || cfg.Output.Verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
