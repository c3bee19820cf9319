// Package recordtest 构造用于测试的牌谱接口响应
package recordtest

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

const tileCount = 144

// dealPositions 骰子全为 0 时 (切牌后) 每个玩家起手牌在牌墙中的位置
func dealPositions(player int) []int {
	var pos []int
	for round := 0; round < 3; round++ {
		for j := 0; j < 4; j++ {
			pos = append(pos, 16*round+4*player+j)
		}
	}
	pos = append(pos, 48+player)
	if player == 0 {
		pos = append(pos, 52)
	}
	return pos
}

// Wall 按指定起手牌摆牌, 其余位置用未用过的编号从小到大填充
// 骰子为 0 时切牌起点为 36, 返回切牌前的十六进制牌墙
func Wall(tb testing.TB, hands [4][]int) string {
	tb.Helper()
	rotated := make([]int, tileCount)
	for i := range rotated {
		rotated[i] = -1
	}
	used := map[int]bool{}
	for p, tiles := range hands {
		pos := dealPositions(p)
		if len(tiles) > len(pos) {
			tb.Fatalf("玩家 %d 的起手牌过多: %d", p, len(tiles))
		}
		for i, id := range tiles {
			if used[id] {
				tb.Fatalf("牌编号 %d 重复", id)
			}
			used[id] = true
			rotated[pos[i]] = id
		}
	}
	next := 0
	for i := range rotated {
		if rotated[i] >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		rotated[i] = next
		used[next] = true
	}

	wall := append(append([]int{}, rotated[108:]...), rotated[:108]...)
	var b strings.Builder
	for _, id := range wall {
		fmt.Fprintf(&b, "%02x", id)
	}
	return b.String()
}

// Fixture 一局牌谱: 起手牌、动作序列与结算
type Fixture struct {
	Hands   [4][]int
	Actions [][]int
	Results []any
	Index   *int
	Title   string
}

// Encode 生成牌谱接口返回的 JSON
func (f Fixture) Encode(tb testing.TB) []byte {
	tb.Helper()
	script := map[string]any{
		"w": Wall(tb, f.Hands),
		"d": 0,
		"a": f.Actions,
		"p": []map[string]string{{"n": "东家"}, {"n": "南家"}, {"n": "西家"}, {"n": "北家"}},
		"g": map[string]any{"t": f.Title},
		"y": f.Results,
		"t": 1700000000000,
	}
	if f.Index != nil {
		script["i"] = *f.Index
	}
	raw, err := json.Marshal(script)
	if err != nil {
		tb.Fatalf("编码牌谱失败: %v", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		tb.Fatalf("压缩牌谱失败: %v", err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("压缩牌谱失败: %v", err)
	}

	origin, err := json.Marshal(map[string]string{"script": base64.StdEncoding.EncodeToString(buf.Bytes())})
	if err != nil {
		tb.Fatalf("编码牌谱失败: %v", err)
	}
	return origin
}

// DiscardWin 庄家打出 3m, 南家点和边张, 共 6 番
func DiscardWin() Fixture {
	return Fixture{
		Hands: [4][]int{
			{8},
			{0, 4, 12, 16, 20, 60, 64, 68, 76, 80, 84, 52, 53},
		},
		Actions: [][]int{
			{0, 0, 0},
			{2, 8, 1000},
			{22, 13, 2000},
		},
		Results: []any{0, map[string]any{"f": 6, "t": map[string]int{"64": 2, "65": 2, "73": 1, "79": 1}}, 0, 0},
		Title:   "测试局",
	}
}

// ChiSelfDraw 南家补花, 吃庄家的 1m, 打西风, 自摸东风, 共 12 番
func ChiSelfDraw() Fixture {
	zero := 0
	return Fixture{
		Hands: [4][]int{
			{0},
			{136, 4, 8, 84, 88, 92, 60, 64, 68, 108, 109, 120, 116},
		},
		Actions: [][]int{
			{0, 0, 0},
			{17, 121, 500},
			{2, 0, 1000},
			{19, 193, 1500},
			{18, 116, 2000},
			{23, 110, 2500},
			{22, 1, 3000},
		},
		Results: []any{0, map[string]any{"f": 12, "t": map[string]int{"41": 8, "62": 2, "82": 1, "83": 1}}, 0, 0},
		Index:   &zero,
		Title:   "竹林小局",
	}
}

// Drawn 庄家打出一张后流局
func Drawn() Fixture {
	f := DiscardWin()
	f.Actions = f.Actions[:2]
	f.Results = []any{0, 0, 0, 0}
	return f
}
