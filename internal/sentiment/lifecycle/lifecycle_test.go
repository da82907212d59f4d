package lifecycle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang-stock-sentiment/internal/sentiment/classifier"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSchema struct {
	calls atomic.Int32
	err   error
}

func (s *countingSchema) InitSchema(context.Context) error {
	s.calls.Add(1)
	return s.err
}

type nopModel struct{ closed atomic.Bool }

func (m *nopModel) Predict(context.Context, string) (classifier.Prediction, error) {
	return classifier.Prediction{Label: classifier.Neutral, Confidence: 1}, nil
}

func (m *nopModel) Close() error {
	m.closed.Store(true)
	return nil
}

func newManager(schema SchemaInitializer, loader classifier.Loader, async bool) *Manager {
	log := logger.NewNop()
	return NewManager(schema, classifier.NewAdapter("test", log, nil), loader, Options{AsyncLoad: async}, log)
}

func TestStartSync(t *testing.T) {
	schema := &countingSchema{}
	model := &nopModel{}
	m := newManager(schema, func(context.Context) (classifier.Model, error) { return model, nil }, false)

	m.Start(context.Background())
	m.Start(context.Background())

	assert.Equal(t, int32(1), schema.calls.Load())
	assert.True(t, m.Classifier().Ready())
	h := m.Health()
	assert.Equal(t, StatusActive, h.Status)
	assert.True(t, h.ModelLoaded)
	assert.True(t, h.SchemaReady)
	assert.Equal(t, "ready", h.ClassifierState)

	m.Stop()
	m.Stop()
	assert.True(t, model.closed.Load())
	assert.Equal(t, classifier.StateUnloaded, m.Classifier().State())
	assert.False(t, m.Health().ModelLoaded)
}

func TestStartAsyncPublishesReadiness(t *testing.T) {
	release := make(chan struct{})
	m := newManager(&countingSchema{}, func(context.Context) (classifier.Model, error) {
		<-release
		return &nopModel{}, nil
	}, true)

	m.Start(context.Background())
	assert.False(t, m.Classifier().Ready())
	assert.Equal(t, StatusLoading, m.Health().Status)

	close(release)
	require.Eventually(t, m.Classifier().Ready, time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusActive, m.Health().Status)
	m.Stop()
}

func TestSchemaFailureDoesNotAbortStartup(t *testing.T) {
	m := newManager(&countingSchema{err: errors.New("db down")}, func(context.Context) (classifier.Model, error) {
		return &nopModel{}, nil
	}, false)

	m.Start(context.Background())
	assert.True(t, m.Classifier().Ready())
	h := m.Health()
	assert.False(t, h.SchemaReady)
	assert.Equal(t, StatusDegraded, h.Status)
}

func TestLoadFailureStaysNotReady(t *testing.T) {
	m := newManager(&countingSchema{}, func(context.Context) (classifier.Model, error) {
		return nil, errors.New("model missing")
	}, false)

	m.Start(context.Background())
	assert.False(t, m.Classifier().Ready())
	assert.Equal(t, "loading", m.Health().ClassifierState)
	assert.False(t, m.Health().ModelLoaded)
}

func TestStopCancelsPendingLoad(t *testing.T) {
	m := newManager(&countingSchema{}, func(ctx context.Context) (classifier.Model, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, true)

	m.Start(context.Background())
	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Equal(t, classifier.StateUnloaded, m.Classifier().State())
}
