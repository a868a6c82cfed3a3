package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	config "github.com/papershare/papershare/internal/config/server"
	"github.com/papershare/papershare/pkg/db/store"
	"github.com/papershare/papershare/pkg/log"
)

// PaperAgent is the long-running service shell: it owns the service
// container, the paper store and the base logger, and keeps the store
// open until interrupted.
type PaperAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg   *config.BaseServerConfig
	sc    *container.ServiceContainer
	log   log.LoggerService
	store store.PaperStore
}

func NewAgent(cfg *config.BaseServerConfig) *PaperAgent {
	return &PaperAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("papershare", cfg.Log),
	}
}

func (pa *PaperAgent) setupServices() error {
	errs := container.Errors{}

	pa.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](pa.sc,
		container.With[log.LoggerService](),
		container.WithInstance(pa.log)))

	pa.log.Debug("Registering 'PaperStore'...")
	errs.Add(container.Register[store.SQLiteStore](pa.sc,
		container.With[store.PaperStore](),
		container.WithInstance(pa.store)))

	return errs.Errors()
}

func (pa *PaperAgent) setupStore(ctx context.Context) error {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: pa.cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create paper store: %w", err)
	}

	if err := st.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect paper store: %w", err)
	}

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate paper store: %w", err)
	}

	pa.log.Named("store").Info("Paper store ready at '%s'", pa.cfg.Metadata.SQLite.Path)
	pa.store = st
	return nil
}

func (pa *PaperAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	pa.mutex.Lock()

	if err := pa.setupStore(ctx); err != nil {
		pa.mutex.Unlock()
		return err
	}

	if err := pa.setupServices(); err != nil {
		pa.mutex.Unlock()
		return err
	}

	pa.mutex.Unlock()
	<-ctx.Done()

	timeout, err := time.ParseDuration(pa.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := pa.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if err := pa.store.Close(); err != nil {
		pa.log.Named("store").Error("Failed to close paper store: %v", err)
	}

	pa.wait.Wait()
	return nil
}
