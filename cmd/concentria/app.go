package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mitchellh/go-homedir"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/concentria/internal/adapters/cache"
	"github.com/comitanigiacomo/concentria/internal/adapters/repository"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
	"github.com/comitanigiacomo/concentria/internal/platform/config"
)

// app holds the store and services shared by every command.
type app struct {
	cfg       *config.Config
	repo      domain.EntryRepository
	cached    *repository.CachedEntryRepository
	db        *sqlx.DB
	redis     *redis.Client
	entries   *services.EntryService
	stats     *services.StatsService
	dashboard *services.DashboardService
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.csvPath != "" {
		path, err := homedir.Expand(opts.csvPath)
		if err != nil {
			return nil, fmt.Errorf("expand --csv: %w", err)
		}
		cfg.CSVPath = path
	}
	if opts.storage != "" {
		storage := strings.ToLower(opts.storage)
		if err := config.ValidateStorage(storage); err != nil {
			return nil, err
		}
		cfg.Storage = storage
	}
	return cfg, nil
}

// loadApp opens the configured store and loads it into memory. withCache puts the redis
// decorator in front of the store when redis is configured; a redis outage only disables it.
func loadApp(ctx context.Context, opts *rootOptions, withCache bool) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	switch cfg.Storage {
	case config.StoragePostgres:
		dsn := cfg.DB.DSN()
		if dsn == "" {
			return nil, fmt.Errorf("postgres storage needs db.name (or DB_NAME)")
		}
		log.Println("[DB] Connecting to database...")
		db, err := repository.ConnectPostgres(dsn)
		if err != nil {
			return nil, err
		}
		pg := repository.NewPostgresEntryRepository(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Println("[DB] Database connected successfully.")
		a.db, a.repo = db, pg
	case config.StorageMemory:
		a.repo = repository.NewInMemoryEntryRepository()
	default:
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, err
		}
		a.repo = repository.NewCSVEntryRepository(cfg.CSVPath)
	}

	redisOpts := cache.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if withCache && redisOpts.Enabled() {
		rdb, err := cache.NewRedisClient(redisOpts)
		if err != nil {
			log.Printf("[CACHE] Redis unavailable, continuing without cache: %v", err)
		} else {
			namespace := cfg.Storage
			if cfg.Storage == config.StorageCSV {
				namespace += ":" + cfg.CSVPath
			}
			cached, err := repository.OpenCachedEntryRepository(ctx, a.repo, rdb, namespace)
			if err != nil {
				log.Printf("[CACHE] %v, continuing without cache", err)
				rdb.Close()
			} else {
				a.redis = rdb
				a.cached = cached
				a.repo = cached
			}
		}
	}

	a.entries = services.NewEntryService(a.repo)
	a.stats = services.NewStatsService(a.repo)
	a.dashboard = services.NewDashboardService(a.repo)

	if err := a.entries.LoadAll(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
