package workerpool

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Task 任务函数, ctx 在池关闭时取消
type Task func(ctx context.Context)

// Stats 任务计数
type Stats struct {
	Submitted int64
	Completed int64
	Panicked  int64
}

// Pool 固定数量 worker 的任务池
type Pool struct {
	name      string
	taskQueue chan Task
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger

	mu     sync.RWMutex
	closed bool

	submitted atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
}

// New 创建并启动任务池
// workers: worker 数量, 不足 1 按 1 处理
// queueSize: 任务队列大小
func New(name string, workers, queueSize int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		name:      name,
		taskQueue: make(chan Task, queueSize),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With("pool", name),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	pool.logger.Debug("Worker pool started",
		"workers", workers,
		"queue_size", queueSize)

	return pool
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	// 关闭时先排空队列, 已提交的任务都会执行
	for task := range p.taskQueue {
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			p.logger.Error("Task panic recovered",
				"worker_id", id,
				"panic", r)
		}
		p.completed.Add(1)
	}()
	task(p.ctx)
}

// Submit 提交任务, 队列满时阻塞直到有空位或 ctx 取消
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.ctx.Done():
		return false
	case p.taskQueue <- task:
		p.submitted.Add(1)
		return true
	}
}

// TrySubmit 尝试提交任务, 队列满了立即返回 false
func (p *Pool) TrySubmit(task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return false
	}
	select {
	case p.taskQueue <- task:
		p.submitted.Add(1)
		return true
	default:
		return false
	}
}

// Stats 当前计数
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}

// Wait 关闭队列并等待已提交的任务完成, 之后池不再接受任务
func (p *Pool) Wait() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.taskQueue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Shutdown 取消任务 ctx 后等待 worker 退出
func (p *Pool) Shutdown() {
	p.cancel()
	p.Wait()
	p.logger.Debug("Worker pool shutdown completed")
}
