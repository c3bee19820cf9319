package record

import (
	"testing"

	"sudooom.gbfan/internal/record/recordtest"
)

func replay(t *testing.T, f recordtest.Fixture) *Game {
	t.Helper()
	script, err := Decode(f.Encode(t))
	if err != nil {
		t.Fatalf("解码牌谱失败: %v", err)
	}
	g, err := Replay(script)
	if err != nil {
		t.Fatalf("回放失败: %v", err)
	}
	return g
}
