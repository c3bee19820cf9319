package core

import "sort"

// TileKinds 不含花牌的牌种数
const TileKinds = 34

// Counts 按牌种索引计数
type Counts [TileKinds]int

// Index 牌种索引: 0-8 万, 9-17 条, 18-26 筒, 27-30 风, 31-33 箭; 花牌返回 -1
func (t Tile) Index() int {
	switch t.Suit {
	case TileSuitWan, TileSuitTiao, TileSuitTong:
		if t.Value < 1 || t.Value > 9 {
			return -1
		}
		return int(t.Suit)*9 + int(t.Value) - 1
	case TileSuitWind:
		if t.Value < 1 || t.Value > 4 {
			return -1
		}
		return 27 + int(t.Value) - 1
	case TileSuitDragon:
		if t.Value < 1 || t.Value > 3 {
			return -1
		}
		return 31 + int(t.Value) - 1
	default:
		return -1
	}
}

// TileAt 根据牌种索引还原牌
func TileAt(index int) Tile {
	switch {
	case index < 27:
		return Tile{Suit: TileSuit(index / 9), Value: int8(index%9 + 1)}
	case index < 31:
		return Tile{Suit: TileSuitWind, Value: int8(index - 27 + 1)}
	default:
		return Tile{Suit: TileSuitDragon, Value: int8(index - 31 + 1)}
	}
}

// IsSuited 是否为数牌
func (t Tile) IsSuited() bool {
	return t.Suit <= TileSuitTong
}

// IsHonor 是否为字牌
func (t Tile) IsHonor() bool {
	return t.Suit == TileSuitWind || t.Suit == TileSuitDragon
}

// IsTerminal 是否为老头牌 (1、9)
func (t Tile) IsTerminal() bool {
	return t.IsSuited() && (t.Value == 1 || t.Value == 9)
}

// IsTerminalOrHonor 幺九牌
func (t Tile) IsTerminalOrHonor() bool {
	return t.IsTerminal() || t.IsHonor()
}

// CountTiles 统计每个牌种的数量, 花牌忽略
func CountTiles(tiles []Tile) Counts {
	var c Counts
	for _, t := range tiles {
		if i := t.Index(); i >= 0 {
			c[i]++
		}
	}
	return c
}

// SortTiles 对牌进行排序
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Suit != tiles[j].Suit {
			return tiles[i].Suit < tiles[j].Suit
		}
		return tiles[i].Value < tiles[j].Value
	})
}

// CountTile 统计某张牌的数量
func CountTile(tiles []Tile, target Tile) int {
	count := 0
	for _, t := range tiles {
		if t.Equal(target) {
			count++
		}
	}
	return count
}

// RemoveTile 从牌组中移除一张牌
func RemoveTile(tiles []Tile, target Tile) []Tile {
	for i, t := range tiles {
		if t.Equal(target) {
			return append(tiles[:i], tiles[i+1:]...)
		}
	}
	return tiles
}

// ContainsTile 检查牌组是否包含某张牌
func ContainsTile(tiles []Tile, target Tile) bool {
	for _, t := range tiles {
		if t.Equal(target) {
			return true
		}
	}
	return false
}

// CloneTiles 克隆牌组
func CloneTiles(tiles []Tile) []Tile {
	result := make([]Tile, len(tiles))
	copy(result, tiles)
	return result
}
