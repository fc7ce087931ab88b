package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"cradle/internal/accounts"
	"cradle/internal/catalog"
	"cradle/internal/config"
	"cradle/internal/logging"
	"cradle/internal/server"
)

// Daemon owns the background services and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	catalog  *catalog.Store
	accounts *accounts.Store
	server   *server.Server
	sweeper  *accounts.Sweeper

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies. The lock is not
// acquired until Start.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	catalogStore, err := catalog.Open(cfg.CatalogDBPath())
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	accountStore, err := accounts.Open(cfg.AccountsDBPath())
	if err != nil {
		_ = catalogStore.Close()
		return nil, fmt.Errorf("open accounts store: %w", err)
	}

	grace := time.Duration(cfg.Accounts.GraceDays) * 24 * time.Hour
	interval := time.Duration(cfg.Accounts.SweepIntervalHours) * time.Hour

	lockPath := cfg.LockFilePath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		catalog:  catalogStore,
		accounts: accountStore,
		server:   server.New(cfg, catalogStore, logger),
		sweeper:  accounts.NewSweeper(accountStore, grace, interval, logger),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the server and sweeper.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another cradled instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.server.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start server: %w", err)
	}
	go d.sweeper.Run(runCtx)

	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("cradled started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.server.Addr()))
	return nil
}

// Addr returns the API address once the daemon is started.
func (d *Daemon) Addr() string {
	return d.server.Addr()
}

// Stop halts background services and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("cradled stopped")
}

// Close stops the daemon and closes its stores.
func (d *Daemon) Close() error {
	d.Stop()
	var errs []error
	if d.accounts != nil {
		errs = append(errs, d.accounts.Close())
	}
	if d.catalog != nil {
		errs = append(errs, d.catalog.Close())
	}
	return errors.Join(errs...)
}
