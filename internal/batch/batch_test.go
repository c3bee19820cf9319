package batch

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/record/recordtest"
	"sudooom.gbfan/internal/store"
)

type fakeFetcher struct {
	mu      sync.Mutex
	records map[string][]byte
	calls   []string
}

func (f *fakeFetcher) FetchRecord(ctx context.Context, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	data, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func newProcessor(t *testing.T, fetcher Fetcher) (*Processor, *store.Files) {
	t.Helper()
	files := store.NewFiles(t.TempDir())
	return NewProcessor(fetcher, files, fancalc.NewService(nil), nil), files
}

func TestProcessDownloadsOnce(t *testing.T) {
	fetcher := &fakeFetcher{records: map[string][]byte{
		"win": recordtest.ChiSelfDraw().Encode(t),
	}}
	proc, files := newProcessor(t, fetcher)

	out := proc.Process(context.Background(), "win")
	require.NoError(t, out.Err)
	require.NotNil(t, out.Comparison)
	assert.Equal(t, 0, *out.Comparison.Diff)
	assert.Contains(t, out.Report, "和牌!")
	assert.FileExists(t, files.OriginPath("win"))

	saved, err := os.ReadFile(files.RecordPath("win"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(saved), "{\n  \""), "解码后的牌谱缩进保存")

	out = proc.Process(context.Background(), "win")
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"win"}, fetcher.calls, "已下载的牌谱不再请求")
}

func TestProcessDrawnGame(t *testing.T) {
	fetcher := &fakeFetcher{records: map[string][]byte{"drawn": recordtest.Drawn().Encode(t)}}
	proc, _ := newProcessor(t, fetcher)

	out := proc.Process(context.Background(), "drawn")
	require.NoError(t, out.Err)
	assert.Nil(t, out.Comparison)
	assert.Contains(t, out.Report, "荒庄")
}

func TestRunSummary(t *testing.T) {
	fetcher := &fakeFetcher{records: map[string][]byte{
		"a": recordtest.DiscardWin().Encode(t),
		"b": recordtest.ChiSelfDraw().Encode(t),
		"c": []byte(`{"script":"!!!"}`),
	}}
	proc, _ := newProcessor(t, fetcher)

	runner := NewRunner(proc, 3, func(id string) string { return "https://example.test/record/?id=" + id })

	var out strings.Builder
	sum, err := runner.Run(context.Background(), []string{"a", "b", "c", "missing"}, &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Succeeded: 2, Failed: 1, Skipped: 1}, sum)

	report := out.String()
	assert.Contains(t, report, "Found 4 records.")
	assert.Contains(t, report, "[1/4] Processing record: https://example.test/record/?id=a")
	assert.Contains(t, report, "Failed to download missing, skipping")
	assert.Contains(t, report, "Error during processing c")
	assert.Contains(t, report, "Successfully processed: 2")
	assert.Less(t, strings.Index(report, "id=a"), strings.Index(report, "id=b"), "报告按输入顺序输出")
}

type panicFetcher struct{}

func (panicFetcher) FetchRecord(ctx context.Context, id string) ([]byte, error) {
	panic("fetch " + id)
}

func TestRunCountsInvalidClaimAsFailed(t *testing.T) {
	rec := recordtest.DiscardWin()
	rec.Actions = [][]int{{23, 100, 500}, {20, 0x3F, 600}, {22, 1, 700}}
	fetcher := &fakeFetcher{records: map[string][]byte{"bad": rec.Encode(t)}}
	proc, _ := newProcessor(t, fetcher)
	runner := NewRunner(proc, 1, func(id string) string { return "https://example.test/record/?id=" + id })

	var out strings.Builder
	sum, err := runner.Run(context.Background(), []string{"bad"}, &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Failed: 1}, sum)
	assert.Contains(t, out.String(), "?id=bad")
	assert.Contains(t, out.String(), "Error during processing bad")
}

func TestRunCountsPanicAsFailed(t *testing.T) {
	proc, _ := newProcessor(t, panicFetcher{})
	runner := NewRunner(proc, 2, func(id string) string { return "https://example.test/record/?id=" + id })

	var out strings.Builder
	sum, err := runner.Run(context.Background(), []string{"x", "y"}, &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Failed: 2}, sum, "panic 的牌谱计为失败")

	report := out.String()
	assert.Contains(t, report, "[1/2] Processing record: https://example.test/record/?id=x")
	assert.Contains(t, report, "Error during processing y")
	assert.NotContains(t, report, "?id=\n", "编号不能丢失")
}
