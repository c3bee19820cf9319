package stats

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.gbfan/internal/record/recordtest"
	"sudooom.gbfan/internal/session"
	"sudooom.gbfan/internal/store"
	"sudooom.gbfan/internal/tziakcha"
)

func TestHeader(t *testing.T) {
	h := Header()
	require.Len(t, h, 8+89+2)
	assert.Equal(t, "和牌用户", h[0])
	assert.Equal(t, "无", h[8])
	assert.Equal(t, "大四喜", h[9])
	assert.Equal(t, "※ 人和Ⅱ", h[8+88])
	assert.Equal(t, "所属全庄", h[len(h)-1])
}

func TestCollectAndWrite(t *testing.T) {
	files := store.NewFiles(t.TempDir())
	require.NoError(t, files.SaveOrigin("b", recordtest.ChiSelfDraw().Encode(t)))
	require.NoError(t, files.SaveOrigin("a", recordtest.DiscardWin().Encode(t)))
	require.NoError(t, files.SaveOrigin("drawn", recordtest.Drawn().Encode(t)))
	require.NoError(t, files.SaveOrigin("empty", []byte("  ")))
	require.NoError(t, files.SaveOrigin("broken", []byte("{")))

	parents := map[string]session.Parent{"b": {SessionID: "g1", OrderInSession: 3}}
	rows, err := Collect(files, parents, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2, "荒庄和损坏的牌谱不计入")
	assert.Equal(t, "a", rows[0].RecordID)
	assert.Equal(t, "b", rows[1].RecordID)

	var out strings.Builder
	links := tziakcha.NewClient("https://tziakcha.net", 0)
	require.NoError(t, WriteCSV(&out, rows, links))
	require.True(t, strings.HasPrefix(out.String(), "\ufeff"))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out.String(), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	a := records[1]
	assert.Equal(t, []string{"南家", "6", "0", "6", "123456m 234p 55789s", "3m", "测试局", ""}, a[:8])
	assert.Equal(t, "1", a[8+64])
	assert.Equal(t, "https://tziakcha.net/record/?id=a", a[len(a)-2])
	assert.Equal(t, "", a[len(a)-1])

	b := records[2]
	assert.Equal(t, []string{"南家", "11", "1", "12", "456p 789s EEENN [(1m)2m3m]", "E", "竹林小局", "3"}, b[:8])
	assert.Equal(t, "1", b[8+83], "花牌列")
	assert.Equal(t, "https://tziakcha.net/game/?id=g1", b[len(b)-1])
}
