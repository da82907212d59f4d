package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"

	"golang-stock-sentiment/internal/sentiment/classifier"
	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

const (
	StatusActive   = "active"
	StatusDegraded = "degraded"
	StatusLoading  = "loading"
)

// SchemaInitializer creates the storage schema. It must be idempotent.
type SchemaInitializer interface {
	InitSchema(ctx context.Context) error
}

// Options configures how the classifier is loaded.
type Options struct {
	// AsyncLoad loads the model in the background so the HTTP boundary comes up immediately.
	AsyncLoad bool
}

// Manager owns the one-time process initialization of the store schema and classifier.
type Manager struct {
	schema  SchemaInitializer
	adapter *classifier.Adapter
	loader  classifier.Loader
	opts    Options
	log     *logger.Logger

	startOnce   sync.Once
	stopOnce    sync.Once
	schemaReady atomic.Bool
	loadCancel  context.CancelFunc
	loading     sync.WaitGroup
}

// NewManager creates a new lifecycle manager.
func NewManager(schema SchemaInitializer, adapter *classifier.Adapter, loader classifier.Loader, opts Options, log *logger.Logger) *Manager {
	return &Manager{
		schema:  schema,
		adapter: adapter,
		loader:  loader,
		opts:    opts,
		log:     log,
	}
}

// Start initializes the schema synchronously and loads the classifier.
// Neither failure aborts startup; Health reports the degraded state. Calling Start again does nothing.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		if err := m.schema.InitSchema(ctx); err != nil {
			m.log.Error("Failed to initialize storage schema, continuing degraded", logger.ErrorField(err))
		} else {
			m.schemaReady.Store(true)
			m.log.Info("Storage schema ready")
		}

		// The load outlives the caller's context; Stop cancels it.
		loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		m.loadCancel = cancel

		if !m.opts.AsyncLoad {
			m.load(loadCtx)
			return
		}
		m.loading.Add(1)
		utils.GoSafe(func() {
			defer m.loading.Done()
			m.load(loadCtx)
		})
	})
}

func (m *Manager) load(ctx context.Context) {
	if err := m.adapter.Load(ctx, m.loader); err != nil {
		m.log.Error("Classifier unavailable until restart", logger.ErrorField(err))
	}
}

// Stop cancels a pending load, waits for it and releases the classifier.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		if m.loadCancel != nil {
			m.loadCancel()
		}
		m.loading.Wait()
		if err := m.adapter.Unload(); err != nil {
			m.log.Warn("Failed to release classifier", logger.ErrorField(err))
		}
	})
}

// Classifier returns the managed classifier.
func (m *Manager) Classifier() *classifier.Adapter {
	return m.adapter
}

// SchemaReady reports whether schema initialization succeeded.
func (m *Manager) SchemaReady() bool {
	return m.schemaReady.Load()
}

// Health summarizes readiness for the health endpoint.
func (m *Manager) Health() dto.HealthResponse {
	state := m.adapter.State()
	status := StatusActive
	switch {
	case !m.SchemaReady():
		status = StatusDegraded
	case state == classifier.StateUninitialized || state == classifier.StateLoading:
		status = StatusLoading
	case state != classifier.StateReady:
		status = StatusDegraded
	}
	return dto.HealthResponse{
		Status:          status,
		ModelLoaded:     state == classifier.StateReady,
		ClassifierState: state.String(),
		SchemaReady:     m.SchemaReady(),
	}
}
