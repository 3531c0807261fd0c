// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

// countingWorker records how many times Run was called and blocks until the
// context ends.
type countingWorker struct {
	runCount atomic.Int32
}

func (m *countingWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	<-ctx.Done()
	return nil
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &countingWorker{}, &countingWorker{}, &countingWorker{}
	ws := NewWorkers(logger.Nop(), w1, w2, w3)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, ws.Run(ctx))
	for i, w := range []*countingWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.runCount.Load(), "worker %d", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers(nil).Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	blocker := &countingWorker{}

	ws := NewWorkers(logger.Nop(), blocker)
	ws.Add(WorkerFunc(func(context.Context) error { return boom }))

	done := make(chan error, 1)
	go func() { done <- ws.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("failing worker did not cancel the rest")
	}
}

func TestWorkers_Run_RecoversPanic(t *testing.T) {
	ws := NewWorkers(logger.Nop(), WorkerFunc(func(context.Context) error { panic("kaboom") }))

	err := ws.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestGo_SwallowsPanicAndError(t *testing.T) {
	<-Go(context.Background(), logger.Nop(), "panics", func(context.Context) error { panic("x") })
	<-Go(context.Background(), logger.Nop(), "fails", func(context.Context) error { return errors.New("y") })

	var ran atomic.Bool
	<-Go(context.Background(), logger.Nop(), "ok", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.True(t, ran.Load())
}
