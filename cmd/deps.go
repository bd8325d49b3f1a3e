package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/XSaadiX/Quiz-app/internal/catalog"
	"github.com/XSaadiX/Quiz-app/internal/config"
	"github.com/XSaadiX/Quiz-app/internal/logging"
	"github.com/XSaadiX/Quiz-app/internal/persist"
	"github.com/XSaadiX/Quiz-app/internal/quiz"
	"github.com/XSaadiX/Quiz-app/internal/store"
)

// deps bundles everything a command needs to work with the quiz.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	adapter *persist.Adapter
	catalog *catalog.Catalog
	closers []io.Closer
}

// Close releases storage handles and flushes the logger.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	_ = d.logger.Sync()
	return errors.Join(errs...)
}

// buildDeps loads configuration and opens logging, storage and the catalog.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.Catalog = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logPath, err := resolveLogPath(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, logPath)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: logger}

	kv, closer, err := openKV(cmd, cfg)
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if closer != nil {
		d.closers = append(d.closers, closer)
	}
	d.adapter = persist.NewAdapter(kv, logger).WithTimeout(cfg.Storage.Timeout)

	d.catalog = catalog.Seed()
	if cfg.Catalog != "" {
		d.catalog, err = catalog.Load(cfg.Catalog)
		if err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	logger.Debug("dependencies ready",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("catalog", cfg.Catalog),
		zap.Int("questions", len(d.catalog.Questions)))
	return d, nil
}

// openKV opens the configured storage backend.
func openKV(cmd *cobra.Command, cfg *config.Config) (persist.KV, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return persist.NewMemoryKV(), nil, nil
	case config.DriverRedis:
		r, err := store.OpenRedis(contextOf(cmd), cfg.Storage.RedisAddr, cfg.Storage.RedisTTL)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case config.DriverPostgres:
		s, err := store.Open(store.DriverPostgres, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		dbPath, err := resolveDBPath(cmd, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(store.DriverSQLite, dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
}

// newQuiz builds a quiz over the catalog and restores saved progress.
func (d *deps) newQuiz(ctx context.Context) (*quiz.Quiz, bool, error) {
	questions, err := d.catalog.Build()
	if err != nil {
		return nil, false, err
	}

	title := d.cfg.Title
	if title == "" {
		title = d.catalog.Title
	}

	q, err := quiz.New(questions,
		quiz.WithTitle(title),
		quiz.WithPassThreshold(d.cfg.PassThreshold),
		quiz.WithTimeLimit(d.cfg.TimeLimit),
		quiz.WithStorage(d.adapter, d.cfg.StorageKey),
		quiz.WithLogger(d.logger),
	)
	if err != nil {
		return nil, false, err
	}

	restored := q.LoadProgress(ctx)
	if !restored && d.cfg.Shuffle {
		if err := q.Shuffle(nil); err != nil {
			return nil, false, err
		}
	}
	return q, restored, nil
}

// resolveLogPath maps the configured log file: "-" logs to stderr, empty
// uses the default state directory.
func resolveLogPath(configured string) (string, error) {
	switch configured {
	case "-":
		return "", nil
	case "":
		return logging.DefaultPath()
	default:
		return configured, nil
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
