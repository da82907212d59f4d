package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// Label is the sentiment label produced by the model. Models may emit labels
// outside the three known ones; those are passed through unchanged.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// MaxInputLength is the number of characters passed to the model.
const MaxInputLength = 512

// ErrNotReady is returned by Classify until the model has finished loading.
var ErrNotReady = errors.New("classifier is not ready")

// Prediction is a single classification.
type Prediction struct {
	Label      Label
	Confidence float64
}

// Model is a loaded sentiment model.
type Model interface {
	Predict(ctx context.Context, text string) (Prediction, error)
	Close() error
}

// Loader loads a Model. It is called at most once per Adapter.
type Loader func(ctx context.Context) (Model, error)

// State is the readiness state of an Adapter.
type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateUnloaded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// LatencyObserver receives the duration of every model call.
type LatencyObserver interface {
	ObserveClassification(d time.Duration)
}

// Adapter owns the model handle and its readiness. The state moves
// Uninitialized -> Loading -> Ready -> Unloaded and never goes back to Loading.
// A failed load leaves the adapter in Loading.
type Adapter struct {
	state    atomic.Int32
	loadOnce sync.Once
	loadErr  error

	mu    sync.RWMutex
	model Model

	name     string
	log      *logger.Logger
	observer LatencyObserver
}

// NewAdapter creates an unloaded adapter. observer may be nil.
func NewAdapter(name string, log *logger.Logger, observer LatencyObserver) *Adapter {
	return &Adapter{name: name, log: log, observer: observer}
}

// Name returns the backend name.
func (a *Adapter) Name() string {
	return a.name
}

// State returns the current readiness state.
func (a *Adapter) State() State {
	return State(a.state.Load())
}

// Ready reports whether Classify can be called.
func (a *Adapter) Ready() bool {
	return a.State() == StateReady
}

// Load runs loader once and publishes readiness on success. Later calls return the first result.
func (a *Adapter) Load(ctx context.Context, loader Loader) error {
	a.loadOnce.Do(func() {
		if !a.state.CompareAndSwap(int32(StateUninitialized), int32(StateLoading)) {
			a.loadErr = fmt.Errorf("cannot load classifier in state %s", a.State())
			return
		}

		start := time.Now()
		a.log.Info("Loading sentiment model", logger.StringField("backend", a.name))

		model, err := loader(ctx)
		if err != nil {
			a.loadErr = fmt.Errorf("failed to load %s model: %w", a.name, err)
			a.log.Error("Failed to load sentiment model", logger.StringField("backend", a.name), logger.ErrorField(err))
			return
		}

		a.mu.Lock()
		a.model = model
		a.mu.Unlock()

		if !a.state.CompareAndSwap(int32(StateLoading), int32(StateReady)) {
			// unloaded while loading
			_ = a.closeModel()
			a.loadErr = errors.New("classifier unloaded during load")
			return
		}
		a.log.Info("Sentiment model loaded",
			logger.StringField("backend", a.name),
			logger.DurationField("elapsed", time.Since(start)))
	})
	return a.loadErr
}

// Classify labels text. Text longer than MaxInputLength characters is truncated first.
func (a *Adapter) Classify(ctx context.Context, text string) (Prediction, error) {
	if !a.Ready() {
		return Prediction{}, ErrNotReady
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.model == nil {
		return Prediction{}, ErrNotReady
	}

	start := time.Now()
	p, err := a.model.Predict(ctx, utils.TruncateRunes(text, MaxInputLength))
	if a.observer != nil {
		a.observer.ObserveClassification(time.Since(start))
	}
	if err != nil {
		return Prediction{}, err
	}

	p.Confidence = clamp(p.Confidence)
	return p, nil
}

// Unload releases the model. It is safe to call more than once.
func (a *Adapter) Unload() error {
	prev := State(a.state.Swap(int32(StateUnloaded)))
	if prev == StateUnloaded {
		return nil
	}
	err := a.closeModel()
	a.log.Info("Sentiment model unloaded", logger.StringField("backend", a.name), logger.StringField("previous_state", prev.String()))
	return err
}

func (a *Adapter) closeModel() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.model == nil {
		return nil
	}
	err := a.model.Close()
	a.model = nil
	return err
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
