package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	apperrors "sudooom.gbfan/internal/errors"
	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/record"
	"sudooom.gbfan/internal/store"
	"sudooom.gbfan/internal/workerpool"
)

// Fetcher 下载牌谱原始响应
type Fetcher interface {
	FetchRecord(ctx context.Context, id string) ([]byte, error)
}

// Summary 批量处理结果
// 下载失败的牌谱计入 Skipped, 不算失败
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Outcome 单个牌谱的处理结果
type Outcome struct {
	ID         string
	Game       *record.Game
	Comparison *record.Comparison
	Report     string
	Err        error
	Skipped    bool
}

// Processor 牌谱下载、落盘与分析
type Processor struct {
	fetcher Fetcher
	files   *store.Files
	svc     *fancalc.Service
	logger  *slog.Logger
}

// NewProcessor 创建处理器
func NewProcessor(fetcher Fetcher, files *store.Files, svc *fancalc.Service, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		fetcher: fetcher,
		files:   files,
		svc:     svc,
		logger:  logger,
	}
}

// Ensure 本地没有原始响应时下载并保存
func (p *Processor) Ensure(ctx context.Context, id string) error {
	if p.files.HasOrigin(id) {
		return nil
	}
	p.logger.Info("Downloading record", "record_id", id)
	data, err := p.fetcher.FetchRecord(ctx, id)
	if err != nil {
		return err
	}
	return p.files.SaveOrigin(id, data)
}

// Load 读取本地原始响应, 保存解码后的牌谱并回放
func (p *Processor) Load(id string) (*record.Game, error) {
	data, err := p.files.LoadOrigin(id)
	if err != nil {
		return nil, err
	}
	script, err := record.Decode(data)
	if err != nil {
		return nil, err
	}
	indented, err := script.Indented()
	if err != nil {
		return nil, err
	}
	if err := p.files.SaveRecord(id, indented); err != nil {
		return nil, err
	}
	return record.Replay(script)
}

// Process 处理单个牌谱, 荒庄时 Comparison 为空
func (p *Processor) Process(ctx context.Context, id string) Outcome {
	out := Outcome{ID: id}
	if err := p.Ensure(ctx, id); err != nil {
		out.Err, out.Skipped = err, true
		return out
	}

	g, err := p.Load(id)
	if err != nil {
		out.Err = err
		return out
	}
	out.Game = g

	if g.Win() != nil {
		c, err := g.Compare(ctx, p.svc)
		if err != nil {
			out.Err = err
			return out
		}
		out.Comparison = c
	}

	var buf bytes.Buffer
	if err := record.WriteReport(&buf, g, out.Comparison); err != nil {
		out.Err = err
		return out
	}
	out.Report = buf.String()
	return out
}

// Runner 用任务池并发处理一批牌谱, 报告按输入顺序输出
type Runner struct {
	proc      *Processor
	workers   int
	recordURL func(id string) string
	logger    *slog.Logger
}

// NewRunner 创建批处理器, recordURL 用于报告中的回放链接
func NewRunner(proc *Processor, workers int, recordURL func(id string) string) *Runner {
	return &Runner{
		proc:      proc,
		workers:   workers,
		recordURL: recordURL,
		logger:    proc.logger,
	}
}

// process 单个牌谱出现 panic 时记为失败, 保留编号
func (r *Runner) process(ctx context.Context, id string) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Record processing panicked", "record_id", id, "panic", rec, "stack", string(debug.Stack()))
			out = Outcome{ID: id, Err: apperrors.ErrServerError.Wrapf("panic: %v", rec)}
		}
	}()
	return r.proc.Process(ctx, id)
}

// Run 处理全部 ids, 报告写入 w
func (r *Runner) Run(ctx context.Context, ids []string, w io.Writer) (Summary, error) {
	fmt.Fprintf(w, "Found %d records. Starting batch processing...\n", len(ids))

	outcomes := make([]Outcome, len(ids))
	pool := workerpool.New("batch", r.workers, len(ids), r.logger)
	for i, id := range ids {
		if !pool.Submit(ctx, func(context.Context) {
			outcomes[i] = r.process(ctx, id)
		}) {
			pool.Shutdown()
			return Summary{}, ctx.Err()
		}
	}
	pool.Wait()

	var sum Summary
	for i, out := range outcomes {
		fmt.Fprintf(w, "\n\n[%d/%d] Processing record: %s\n", i+1, len(ids), r.recordURL(out.ID))
		switch {
		case out.Skipped:
			sum.Skipped++
			fmt.Fprintf(w, "  ❌ Failed to download %s, skipping...\n", out.ID)
			r.logger.Warn("Download record failed", "record_id", out.ID, "error", out.Err)
		case out.Err != nil:
			sum.Failed++
			fmt.Fprintf(w, "  ❌ Error during processing %s: %v\n", out.ID, out.Err)
		default:
			sum.Succeeded++
			io.WriteString(w, out.Report)
		}
	}
	fmt.Fprintf(w, "  Successfully processed: %d\n", sum.Succeeded)
	fmt.Fprintf(w, "  Failed to process: %d\n", sum.Failed)
	return sum, nil
}
