package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.gbfan/internal/tziakcha"
)

type fakeLister map[string][]string

func (f fakeLister) GameRecords(ctx context.Context, gameID string) ([]string, error) {
	ids, ok := f[gameID]
	if !ok {
		return nil, errors.New("boom")
	}
	return ids, nil
}

func TestSelect(t *testing.T) {
	games := []tziakcha.HistoryGame{
		{ID: "g1", Title: "竹林杯 第一轮"},
		{ID: "g2", Title: "友谊赛"},
		{ID: "g3", Title: "紫竹院"},
		{ID: "", Title: "竹"},
	}

	got := Select(games, "竹")
	assert.Equal(t, []Selected{{ID: "g1", Title: "竹林杯 第一轮"}, {ID: "g3", Title: "紫竹院"}}, got)

	none := Select(games, "梅")
	out, err := json.Marshal(none)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out), "无匹配时输出空数组")
}

func TestCollect(t *testing.T) {
	lister := fakeLister{
		"g1": {"r1", "r2"},
		"g3": {"r3"},
	}
	selected := []Selected{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}}

	ids, parents, err := Collect(context.Background(), lister, selected, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids)
	assert.Equal(t, map[string]Parent{
		"r1": {SessionID: "g1", OrderInSession: 1},
		"r2": {SessionID: "g1", OrderInSession: 2},
		"r3": {SessionID: "g3", OrderInSession: 1},
	}, parents)
}

func TestCollectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Collect(ctx, fakeLister{}, []Selected{{ID: "g1"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
