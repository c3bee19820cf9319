package gb

import (
	"errors"
	"testing"

	"sudooom.gbfan/internal/mahjong/core"
)

func TestParseStandingTiles(t *testing.T) {
	hand, err := Parse("12m456m789s234p55s3m")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(hand.Melds) != 0 {
		t.Errorf("不应有副露, 实际为 %d 个", len(hand.Melds))
	}
	if len(hand.Tiles) != 13 {
		t.Errorf("立牌应为 13 张, 实际为 %d", len(hand.Tiles))
	}
	if hand.WinTile == nil || hand.WinTile.String() != "3m" {
		t.Errorf("和牌张应为 3m, 实际为 %v", hand.WinTile)
	}
	if hand.Situation != core.DefaultSituation() {
		t.Errorf("未给场况时应为默认场况, 实际为 %+v", hand.Situation)
	}
}

func TestParsePacks(t *testing.T) {
	hand, err := Parse("[123m,2][EEE,3][5555p][9999s,1]55s|ES0010")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(hand.Melds) != 4 {
		t.Fatalf("副露应为 4 个, 实际为 %d", len(hand.Melds))
	}

	tests := []struct {
		typ    core.MeldType
		tile   string
		offer  int8
		melded bool
	}{
		{core.MeldTypeChi, "2m", 2, true},
		{core.MeldTypePong, "E", 3, true},
		{core.MeldTypeKong, "5p", 0, false},
		{core.MeldTypeKong, "9s", 1, true},
	}
	for i, tt := range tests {
		m := hand.Melds[i]
		if m.Type != tt.typ || m.Tile.String() != tt.tile || m.Offer != tt.offer || m.Melded() != tt.melded {
			t.Errorf("第 %d 个副露应为 %v %s offer=%d, 实际为 %v %s offer=%d", i, tt.typ, tt.tile, tt.offer, m.Type, m.Tile, m.Offer)
		}
	}

	sit := hand.Situation
	if sit.RoundWind != core.WindEast || sit.SeatWind != core.WindSouth || !sit.WallLast || sit.SelfDrawn {
		t.Errorf("场况解析错误: %+v", sit)
	}
}

func TestParsePackDefaultOffer(t *testing.T) {
	hand, err := Parse("[789p][CCC]123m456s9s9s")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	for _, m := range hand.Melds {
		if m.Offer != 1 {
			t.Errorf("未注明来源的吃碰应默认 offer=1, 实际为 %d", m.Offer)
		}
	}
}

func TestParseWhiteDragonAlias(t *testing.T) {
	a, err := Parse("19m19s19pESWNCFB1m")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	b, err := Parse("19m19s19pESWNCFP1m")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if Format(a) != Format(b) {
		t.Errorf("B 应视同 P: %s != %s", Format(a), Format(b))
	}
}

func TestParseFlowers(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1133m2255s4466p77p", 0},
		{"1133m2255s4466p77p|EE0000|3", 3},
		{"1133m2255s4466p77p|EE0000|abc", 3},
		{"1133m2255s4466p77p|EE0000|", 0},
		{"1133m2255s4466p12f77p", 2},
		{"1133m2255s4466p1f77p||2", 3},
	}

	for _, tt := range tests {
		hand, err := Parse(tt.text)
		if err != nil {
			t.Errorf("%s 解析失败: %v", tt.text, err)
			continue
		}
		if hand.Flowers != tt.want {
			t.Errorf("%s 的花牌数应为 %d, 实际为 %d", tt.text, tt.want, hand.Flowers)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	hand, err := Parse("")
	if err != nil {
		t.Fatalf("空串应解析为空手牌: %v", err)
	}
	if hand.TileCount() != 0 || hand.WinTile != nil {
		t.Errorf("空手牌不应有牌: %+v", hand)
	}
	if IsWinning(hand) {
		t.Error("空手牌不应和牌")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{"123x", ErrUnknownChar},
		{"123m456m789s23p55s9", ErrMissingSuit},
		{"[123m,1][456m,1]12", ErrMissingSuit},
		{"023m456m789s234p55s", ErrInvalidNumber},
		{"[124m,1]456m789s234p55s", ErrInvalidPack},
		{"[123m,0]456m789s234p55s", ErrInvalidPack},
		{"[123m,1456m789s234p55s", ErrInvalidPack},
		{"123m456m789s234p55s1p|EE00", ErrInvalidEnv},
		{"123m456m789s234p55s1p|XE0000", ErrInvalidEnv},
		{"123m456m789s234p55s1p|EE0020", ErrInvalidEnv},
		{"123m456m789s234p55s1p|EE0000|9", ErrInvalidFlowers},
		{"123m456m789s234p55s1p|EE0000|xyz", ErrInvalidFlowers},
		{"11111m2m456s789p11s", ErrTooManyCopies},
		{"123m", ErrInvalidSize},
		{"123m456m789s234p55s1p2p", ErrInvalidSize},
	}

	for _, tt := range tests {
		_, err := Parse(tt.text)
		if err == nil {
			t.Errorf("%s 应解析失败", tt.text)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s 应返回 %v, 实际为 %v", tt.text, tt.want, err)
		}
	}
}

func TestParseErrorKeepsPredefined(t *testing.T) {
	_, err := Parse("123x")
	var he *HandError
	if !errors.As(err, &he) {
		t.Fatalf("应返回 *HandError, 实际为 %T", err)
	}
	if he == ErrUnknownChar {
		t.Error("返回的错误不应是预定义错误本身")
	}
	if len(ErrUnknownChar.Context) != 0 {
		t.Errorf("预定义错误的上下文被修改: %v", ErrUnknownChar.Context)
	}
	if he.Context["char"] != "x" {
		t.Errorf("错误上下文应记录字符 x, 实际为 %v", he.Context)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"12m456m789s234p55s3m", "12456m55789s234p3m"},
		{"[EEE,1][CCC,2]111m999s5p5p|EE1000", "[EEE,1][CCC,2]111m999s5p5p|EE1000"},
		{"[5555p]123m456s789s1s1s", "[5555p]123m1456789s1s"},
		{"1133m2255s4466p77p|EE0000|3", "1133m2255s44667p7p|EE0000|3"},
		{"[789p][CCC]123m456s9s9s", "[789p,1][CCC,1]123m4569s9s"},
	}

	for _, tt := range tests {
		hand, err := Parse(tt.text)
		if err != nil {
			t.Errorf("%s 解析失败: %v", tt.text, err)
			continue
		}
		got := Format(hand)
		if got != tt.want {
			t.Errorf("%s 应写为 %s, 实际为 %s", tt.text, tt.want, got)
		}
		again, err := Parse(got)
		if err != nil {
			t.Errorf("%s 无法再次解析: %v", got, err)
			continue
		}
		if Format(again) != got {
			t.Errorf("%s 再次写出不一致: %s", got, Format(again))
		}
	}
}
