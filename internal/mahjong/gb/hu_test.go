package gb

import (
	"testing"

	"sudooom.gbfan/internal/mahjong/core"
)

func mustParse(t *testing.T, text string) *core.Hand {
	t.Helper()
	hand, err := Parse(text)
	if err != nil {
		t.Fatalf("%s 解析失败: %v", text, err)
	}
	return hand
}

func TestIsWinning(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"标准形", "12m456m789s234p55s3m", true},
		{"七对", "1133m2255s4466p77p", true},
		{"四张算两对", "1111m2255s4466p77p", true},
		{"十三幺", "19m19s19pESWNCFP1m", true},
		{"全不靠", "147m258s369pESWNC", true},
		{"七星不靠", "14m25s369pESWNCFP", true},
		{"组合龙", "147m258s369pEEECC", true},
		{"带副露", "[EEE,1][CCC,2]111m999s5p5p", true},
		{"四副露单钓", "[123m,1][456m,2][789m,3][EEE,1]5m5m", true},
		{"未和", "123m456m789s23p55s9p", false},
		{"13 张", "123m456m789s23p55s", false},
		{"全不靠数牌越界", "147m258s368pESWNC", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := mustParse(t, tt.text)
			if got := IsWinning(hand); got != tt.want {
				t.Errorf("%s 和牌判定应为 %v, 实际为 %v", tt.text, tt.want, got)
			}
		})
	}
}

func TestIsWinningNil(t *testing.T) {
	if IsWinning(nil) {
		t.Error("nil 手牌不应和牌")
	}
}

func TestArrangementsSevenPairsAndStandard(t *testing.T) {
	// 112233m 可拆为两组一般高, 也可拆为七对
	hand := mustParse(t, "112233m445566s77p")
	found := map[shape]bool{}
	for _, a := range arrangements(core.CountTiles(hand.ConcealedTiles()), 0) {
		found[a.shape] = true
	}
	if !found[shapeStandard] || !found[shapeSevenPairs] {
		t.Errorf("应同时找到标准形和七对, 实际为 %v", found)
	}
}

func TestWaitingTiles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"边张", "12m456m789s234p55s", []string{"3m"}},
		{"两面", "123m456m789s23p55s", []string{"1p", "4p"}},
		{"九莲", "1112345678999m", []string{"1m", "2m", "3m", "4m", "5m", "6m", "7m", "8m", "9m"}},
		{"十三面", "19m19s19pESWNCFP", []string{"1m", "9m", "1s", "9s", "1p", "9p", "E", "S", "W", "N", "C", "F", "P"}},
		{"单钓", "[EEE,1][CCC,2]111m999s5p", []string{"5p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waits := WaitingTiles(mustParse(t, tt.text))
			if len(waits) != len(tt.want) {
				t.Fatalf("%s 应听 %v, 实际听 %v", tt.text, tt.want, waits)
			}
			for i, w := range waits {
				if w.String() != tt.want[i] {
					t.Errorf("%s 第 %d 张听牌应为 %s, 实际为 %s", tt.text, i, tt.want[i], w)
				}
			}
		})
	}
}

func TestWaitingTilesSkipsExhausted(t *testing.T) {
	// 自己已有 4 张 5p, 不再算听 5p
	waits := WaitingTiles(mustParse(t, "[5555p]123m456s789s1s"))
	for _, w := range waits {
		if w.String() == "5p" {
			t.Error("已用满 4 张的牌不应计入听牌")
		}
	}
	if len(waits) != 1 || waits[0].String() != "1s" {
		t.Errorf("应只听 1s, 实际为 %v", waits)
	}
}
