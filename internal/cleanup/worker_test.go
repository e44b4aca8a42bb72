package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filearray/internal/metrics"
	storeMocks "filearray/internal/storage/mocks"
)

func TestWorker_Process_BestEffort(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	store.On("Delete", ctx, "old/a.png").Return(errors.New("access denied")).Once()
	store.On("Delete", ctx, "old/b.png").Return(nil).Once()

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	w := NewWorker(nil, store, zap.NewNop(), m, 0, time.Second)
	w.Process(ctx, &Job{ID: "j1", Name: JobName, Paths: []string{"old/a.png", "old/b.png"}})

	store.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesDeleted.WithLabelValues("superseded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeleteFailures.WithLabelValues("superseded")))
}

func TestWorker_Process_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := new(storeMocks.MockStorage)

	w := NewWorker(nil, store, zap.NewNop(), nil, 1, time.Second)
	w.Process(ctx, &Job{ID: "j1", Paths: []string{"a", "b"}})

	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestWorker_Run_DrainsQueue(t *testing.T) {
	q, _ := newQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Enqueue(ctx, []string{"old/a.png", "old/b.png"}))

	var wg sync.WaitGroup
	wg.Add(2)
	store := new(storeMocks.MockStorage)
	store.On("Delete", mock.Anything, mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { wg.Done() }).
		Return(nil).Twice()

	w := NewWorker(q, store, zap.NewNop(), nil, 0, time.Second)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitCh := make(chan struct{})
	go func() { wg.Wait(); close(waitCh) }()
	select {
	case <-waitCh:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not process the job")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	store.AssertExpectations(t)
}
