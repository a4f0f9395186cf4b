// Package onboarding parses onboarding command configuration and launches the
// web service with its organization store.
package onboarding

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/louisbranch/onboarding/internal/onboarding/organization/seed"
	"github.com/louisbranch/onboarding/internal/onboarding/organization/storage/memory"
	"github.com/louisbranch/onboarding/internal/onboarding/organization/storage/rediscache"
	"github.com/louisbranch/onboarding/internal/onboarding/organization/storage/sqlite"
	"github.com/louisbranch/onboarding/internal/onboarding/task"
	platformcmd "github.com/louisbranch/onboarding/internal/platform/cmd"
	"github.com/louisbranch/onboarding/internal/platform/logging"
	"github.com/louisbranch/onboarding/internal/platform/otel"
	"github.com/louisbranch/onboarding/internal/platform/timeouts"
	"github.com/louisbranch/onboarding/internal/services/web"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Storage backends accepted by Config.Storage.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// EnvLookup resolves an environment variable.
type EnvLookup func(string) (string, bool)

// Config holds onboarding command configuration.
type Config struct {
	HTTPAddr            string        `env:"ONBOARDING_HTTP_ADDR" envDefault:"localhost:8090"`
	Storage             string        `env:"ONBOARDING_STORAGE" envDefault:"memory"`
	SQLitePath          string        `env:"ONBOARDING_SQLITE_PATH" envDefault:"data/onboarding.db"`
	RedisAddr           string        `env:"ONBOARDING_REDIS_ADDR"`
	CacheTTL            time.Duration `env:"ONBOARDING_CACHE_TTL" envDefault:"30s"`
	SeedPath            string        `env:"ONBOARDING_SEED_PATH"`
	TasksPath           string        `env:"ONBOARDING_TASKS_PATH"`
	LogLevel            string        `env:"ONBOARDING_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"ONBOARDING_LOG_FORMAT" envDefault:"json"`
	LogFile             string        `env:"ONBOARDING_LOG_FILE"`
	LogMaxSizeMB        int           `env:"ONBOARDING_LOG_MAX_SIZE_MB" envDefault:"50"`
	TrustForwardedProto bool          `env:"ONBOARDING_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into a Config. A nil lookup reads
// the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	var cfg Config
	var err error
	if lookup == nil {
		err = platformcmd.ParseConfig(&cfg)
	} else {
		err = platformcmd.ParseConfigWithLookup(&cfg, lookup)
	}
	if err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Organization storage backend (memory or sqlite)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the organization cache (empty disables)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Organization cache TTL")
	fs.StringVar(&cfg.SeedPath, "seed", cfg.SeedPath, "YAML file of organizations applied at startup")
	fs.StringVar(&cfg.TasksPath, "tasks", cfg.TasksPath, "YAML task registry (empty uses the embedded registry)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json or console)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Rotated log file path")
	fs.IntVar(&cfg.LogMaxSizeMB, "log-max-size-mb", cfg.LogMaxSizeMB, "Log file size before rotation")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto for secure cookies")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("http address is required")
	}
	switch c.Storage {
	case StorageMemory:
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("sqlite path is required for sqlite storage")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative: %s", c.CacheTTL)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Run starts the onboarding web service and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, nil)
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, closer, err := logging.New(platformcmd.ServiceOnboarding, logging.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		Out:       out,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()
	ctx = logger.WithContext(ctx)

	return platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceOnboarding, platformcmd.RunOptions{Logger: &logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	tasks, err := loadTasks(cfg.TasksPath)
	if err != nil {
		return err
	}
	registryLogger := logging.Component(logger, logging.ComponentRegistry)
	registryLogger.Info().
		Int("tasks", tasks.Len()).
		Str("source", sourceName(cfg.TasksPath)).
		Msg("task registry loaded")

	store, closeStore, err := openStore(ctx, cfg, logging.Component(logger, logging.ComponentStore))
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn().Err(err).Msg("close organization store")
		}
	}()

	server, err := web.NewServer(web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		Organizations:       store,
		Tasks:               tasks,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Logger:              logger,
		Tracer:              otel.Tracer("onboarding/web"),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func loadTasks(path string) (task.Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		registry, err := task.Default()
		if err != nil {
			return task.Registry{}, fmt.Errorf("load embedded task registry: %w", err)
		}
		return registry, nil
	}
	registry, err := task.LoadFile(path)
	if err != nil {
		return task.Registry{}, fmt.Errorf("load task registry %s: %w", path, err)
	}
	return registry, nil
}

// openStore builds the configured organization store, wraps it with the Redis
// cache when an address is set, and applies the seed file through it.
func openStore(ctx context.Context, cfg Config, logger zerolog.Logger) (organization.ReadWriter, func() error, error) {
	var (
		store   organization.ReadWriter
		closers []func() error
	)
	switch cfg.Storage {
	case StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		store = db
		closers = append(closers, db.Close)
	default:
		mem, err := memory.New()
		if err != nil {
			return nil, nil, fmt.Errorf("open memory store: %w", err)
		}
		store = mem
	}
	logger.Info().Str("backend", cfg.Storage).Msg("organization store opened")

	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: timeouts.RedisDial})
		closers = append(closers, client.Close)
		pingCtx, cancel := context.WithTimeout(ctx, timeouts.RedisDial)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, cache reads will fall back to the store")
		}
		cancel()
		cache, err := rediscache.New(store, client, cfg.CacheTTL, rediscache.WithLogger(logger))
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("init organization cache: %w", err)
		}
		store = cache
		logger.Info().Str("addr", addr).Dur("ttl", cfg.CacheTTL).Msg("organization cache enabled")
	}

	if path := strings.TrimSpace(cfg.SeedPath); path != "" {
		count, err := seed.ApplyFile(ctx, store, path)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("apply seed %s: %w", path, err)
		}
		logger.Info().Int("organizations", count).Str("path", path).Msg("seed applied")
	}
	return store, closeAll, nil
}

func sourceName(path string) string {
	if strings.TrimSpace(path) == "" {
		return "embedded"
	}
	return path
}
