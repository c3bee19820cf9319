package workerpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := New("test", 4, 16, nil)

	var sum atomic.Int64
	for i := 1; i <= 100; i++ {
		n := int64(i)
		ok := p.Submit(context.Background(), func(ctx context.Context) {
			sum.Add(n)
		})
		assert.True(t, ok)
	}
	p.Wait()

	assert.Equal(t, int64(5050), sum.Load())
	stats := p.Stats()
	assert.Equal(t, int64(100), stats.Submitted)
	assert.Equal(t, int64(100), stats.Completed)
	assert.False(t, p.Submit(context.Background(), func(context.Context) {}), "关闭后不再接受任务")
}

func TestPoolRecoversPanic(t *testing.T) {
	p := New("test", 1, 4, nil)

	var ran atomic.Bool
	p.Submit(context.Background(), func(context.Context) { panic("boom") })
	p.Submit(context.Background(), func(context.Context) { ran.Store(true) })
	p.Wait()

	assert.True(t, ran.Load(), "panic 之后 worker 继续工作")
	assert.Equal(t, int64(1), p.Stats().Panicked)
}

func TestTrySubmitFullQueue(t *testing.T) {
	p := New("test", 1, 1, nil)
	defer p.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	assert.True(t, p.TrySubmit(func(context.Context) {
		close(started)
		<-block
	}))
	<-started

	assert.True(t, p.TrySubmit(func(context.Context) {}), "队列还有一个空位")
	assert.False(t, p.TrySubmit(func(context.Context) {}), "队列已满")
	close(block)
}

func TestSubmitHonorsContext(t *testing.T) {
	p := New("test", 1, 0, nil)
	defer p.Shutdown()

	block := make(chan struct{})
	defer close(block)
	started := make(chan struct{})
	p.Submit(context.Background(), func(context.Context) {
		close(started)
		<-block
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, p.Submit(ctx, func(context.Context) {}))
}

func TestShutdownCancelsTaskContext(t *testing.T) {
	p := New("test", 1, 1, nil)

	done := make(chan error, 1)
	started := make(chan struct{})
	p.Submit(context.Background(), func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		done <- ctx.Err()
	})
	<-started
	p.Shutdown()

	assert.ErrorIs(t, <-done, context.Canceled)
}
