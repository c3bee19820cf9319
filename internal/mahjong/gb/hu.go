package gb

import (
	"sudooom.gbfan/internal/mahjong/core"
)

// shape 和牌形
type shape int8

const (
	shapeStandard        shape = iota // 4 面子 + 1 将
	shapeSevenPairs                   // 七对
	shapeThirteenOrphans              // 十三幺
	shapeHonorsKnitted                // 全不靠 / 七星不靠
	shapeKnittedStraight              // 组合龙 + 1 面子 + 1 将
)

// arrangement 立牌部分的一种拆法, 不含副露
type arrangement struct {
	shape   shape
	sets    []core.Meld // 暗面子
	pair    core.Meld   // 将, 七对/十三幺/全不靠无意义
	pairs   []core.Meld // 七对的 7 个对子
	knitted int         // 组合龙所用的排列, -1 表示无
}

// knittedPatterns 组合龙的 6 种花色排列, 每种 9 个牌种索引 (147/258/369)
var knittedPatterns = func() [6][9]int {
	perms := [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var out [6][9]int
	for p, perm := range perms {
		k := 0
		for group, suit := range perm {
			for _, v := range []int{1, 4, 7} {
				out[p][k] = suit*9 + v + group - 1
				k++
			}
		}
	}
	return out
}()

// orphanIndexes 十三幺所需的 13 种幺九牌
var orphanIndexes = [13]int{0, 8, 9, 17, 18, 26, 27, 28, 29, 30, 31, 32, 33}

func sumCounts(c *core.Counts) int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// IsWinning 检查是否和牌
func IsWinning(hand *core.Hand) bool {
	if hand == nil || hand.WinTile == nil || hand.TileCount() != 14 {
		return false
	}
	return canWin(core.CountTiles(hand.ConcealedTiles()), len(hand.Melds))
}

func canWin(c core.Counts, fixed int) bool {
	return len(arrangements(c, fixed)) > 0
}

// arrangements 枚举立牌的全部拆法, fixed 为副露数
func arrangements(c core.Counts, fixed int) []arrangement {
	if fixed < 0 || fixed > 4 || sumCounts(&c) != 14-3*fixed {
		return nil
	}

	var out []arrangement
	out = append(out, standardArrangements(c, 4-fixed)...)

	if fixed == 0 {
		if a, ok := sevenPairs(c); ok {
			out = append(out, a)
		}
		if isThirteenOrphans(c) {
			out = append(out, arrangement{shape: shapeThirteenOrphans, knitted: -1})
		}
		if p, ok := honorsKnitted(c); ok {
			out = append(out, arrangement{shape: shapeHonorsKnitted, knitted: p})
		}
	}
	if fixed <= 1 {
		out = append(out, knittedStraightArrangements(c, 1-fixed)...)
	}
	return out
}

// standardArrangements 将 + need 个面子
func standardArrangements(c core.Counts, need int) []arrangement {
	var out []arrangement
	for p := 0; p < core.TileKinds; p++ {
		if c[p] < 2 {
			continue
		}
		c[p] -= 2
		var found [][]core.Meld
		findSets(&c, need, nil, &found)
		c[p] += 2
		for _, sets := range found {
			out = append(out, arrangement{
				shape:   shapeStandard,
				sets:    sets,
				pair:    core.Meld{Type: core.MeldTypePair, Tile: core.TileAt(p)},
				knitted: -1,
			})
		}
	}
	return out
}

// findSets 从最小的牌开始依次尝试刻子和顺子
func findSets(c *core.Counts, need int, cur []core.Meld, out *[][]core.Meld) {
	first := -1
	for i, v := range c {
		if v > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		if need == 0 {
			*out = append(*out, append([]core.Meld(nil), cur...))
		}
		return
	}
	if need == 0 {
		return
	}

	if c[first] >= 3 {
		c[first] -= 3
		findSets(c, need-1, append(cur, core.Meld{Type: core.MeldTypePong, Tile: core.TileAt(first)}), out)
		c[first] += 3
	}
	if first < 27 && first%9 <= 6 && c[first+1] > 0 && c[first+2] > 0 {
		c[first]--
		c[first+1]--
		c[first+2]--
		findSets(c, need-1, append(cur, core.Meld{Type: core.MeldTypeChi, Tile: core.TileAt(first + 1)}), out)
		c[first]++
		c[first+1]++
		c[first+2]++
	}
}

// sevenPairs 四张相同的牌算两对
func sevenPairs(c core.Counts) (arrangement, bool) {
	a := arrangement{shape: shapeSevenPairs, knitted: -1}
	for i, v := range c {
		switch v {
		case 0:
		case 2, 4:
			for k := 0; k < v/2; k++ {
				a.pairs = append(a.pairs, core.Meld{Type: core.MeldTypePair, Tile: core.TileAt(i)})
			}
		default:
			return arrangement{}, false
		}
	}
	return a, len(a.pairs) == 7
}

func isThirteenOrphans(c core.Counts) bool {
	pairs := 0
	for _, i := range orphanIndexes {
		switch c[i] {
		case 1:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 1
}

// honorsKnitted 14 张互不相同, 数牌全部落在同一种组合龙排列内; 返回排列序号
func honorsKnitted(c core.Counts) (int, bool) {
	for _, v := range c {
		if v > 1 {
			return -1, false
		}
	}
	for p, pattern := range knittedPatterns {
		allowed := make(map[int]bool, 9)
		for _, idx := range pattern {
			allowed[idx] = true
		}
		ok := true
		for i := 0; i < 27; i++ {
			if c[i] > 0 && !allowed[i] {
				ok = false
				break
			}
		}
		if ok {
			return p, true
		}
	}
	return -1, false
}

// knittedStraightArrangements 组合龙 9 张 + need 个面子 + 将
func knittedStraightArrangements(c core.Counts, need int) []arrangement {
	var out []arrangement
	for p, pattern := range knittedPatterns {
		ok := true
		for _, idx := range pattern {
			if c[idx] == 0 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		rest := c
		for _, idx := range pattern {
			rest[idx]--
		}
		for _, a := range standardArrangements(rest, need) {
			a.shape = shapeKnittedStraight
			a.knitted = p
			out = append(out, a)
		}
	}
	return out
}

// WaitingTiles 13 张立牌 (加副露) 的听牌, 已用满 4 张的牌种不计
func WaitingTiles(hand *core.Hand) []core.Tile {
	standing := core.CountTiles(hand.Tiles)
	used := core.CountTiles(hand.Tiles)
	for _, m := range hand.Melds {
		for _, t := range m.Tiles() {
			used[t.Index()]++
		}
	}

	var waits []core.Tile
	for i := 0; i < core.TileKinds; i++ {
		if used[i] >= 4 {
			continue
		}
		c := standing
		c[i]++
		if canWin(c, len(hand.Melds)) {
			waits = append(waits, core.TileAt(i))
		}
	}
	return waits
}
