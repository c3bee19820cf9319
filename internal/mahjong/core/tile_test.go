package core

import "testing"

func TestTileIndexRoundTrip(t *testing.T) {
	for i := 0; i < TileKinds; i++ {
		tile := TileAt(i)
		if got := tile.Index(); got != i {
			t.Errorf("索引 %d 还原为 %v, 再次取索引得到 %d", i, tile, got)
		}
	}
}

func TestTileString(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{Tile{Suit: TileSuitWan, Value: 5}, "5m"},
		{Tile{Suit: TileSuitTiao, Value: 1}, "1s"},
		{Tile{Suit: TileSuitTong, Value: 9}, "9p"},
		{Tile{Suit: TileSuitWind, Value: WindNorth}, "N"},
		{Tile{Suit: TileSuitDragon, Value: DragonWhite}, "P"},
		{Tile{Suit: TileSuitFlower, Value: 3}, "3f"},
	}

	for _, tt := range tests {
		if got := tt.tile.String(); got != tt.want {
			t.Errorf("%+v 的记法应为 %s, 实际为 %s", tt.tile, tt.want, got)
		}
	}
}

func TestMeldTiles(t *testing.T) {
	chow := Meld{Type: MeldTypeChi, Tile: Tile{Suit: TileSuitTong, Value: 5}, Offer: 1}
	tiles := chow.Tiles()
	if len(tiles) != 3 || tiles[0].Value != 4 || tiles[2].Value != 6 {
		t.Errorf("顺子展开错误: %v", tiles)
	}
	if !chow.Melded() {
		t.Error("吃的顺子应为明牌")
	}

	kong := Meld{Type: MeldTypeKong, Tile: Tile{Suit: TileSuitWind, Value: WindEast}}
	if len(kong.Tiles()) != 4 {
		t.Errorf("杠应展开为 4 张, 实际为 %d", len(kong.Tiles()))
	}
	if kong.Melded() {
		t.Error("无供牌者的杠应为暗杠")
	}
}

func TestHandTileCount(t *testing.T) {
	win := Tile{Suit: TileSuitWan, Value: 1}
	hand := &Hand{
		Melds:   []Meld{{Type: MeldTypeKong, Tile: Tile{Suit: TileSuitDragon, Value: DragonRed}}},
		Tiles:   make([]Tile, 10),
		WinTile: &win,
	}
	if got := hand.TileCount(); got != 14 {
		t.Errorf("张数应为 14, 实际为 %d", got)
	}
	if got := len(hand.AllTiles()); got != 15 {
		t.Errorf("展开后应为 15 张, 实际为 %d", got)
	}
}

func TestCountTiles(t *testing.T) {
	tiles := []Tile{
		{Suit: TileSuitWan, Value: 1},
		{Suit: TileSuitWan, Value: 1},
		{Suit: TileSuitFlower, Value: 2},
		{Suit: TileSuitDragon, Value: DragonGreen},
	}
	c := CountTiles(tiles)
	if c[0] != 2 {
		t.Errorf("1m 应计 2 张, 实际为 %d", c[0])
	}
	if c[32] != 1 {
		t.Errorf("发应计 1 张, 实际为 %d", c[32])
	}
}
