package gb

import (
	"sort"

	"sudooom.gbfan/internal/mahjong/core"
)

// seq 参与组合番的面子: 顺子取中间张, 刻子取本张
type seq struct {
	suit core.TileSuit
	num  int8
}

// comboRules 4/3/2 个面子的组合番判定
type comboRules struct {
	four  func(items []seq) FanID
	three func(a, b, c seq) FanID
	two   func(a, b seq) FanID
}

// better 分值高者优先, 同分取编号小者
func better(a, b FanID) bool {
	if a == FanNone {
		return false
	}
	if b == FanNone {
		return true
	}
	if a.Score() != b.Score() {
		return a.Score() > b.Score()
	}
	return a < b
}

// applyCombos 一次性原则: 已组成番的面子最多再与未用过的面子组一次
func applyCombos(items []seq, rules comboRules, f *fanSet) {
	n := len(items)
	if n < 2 {
		return
	}
	if n == 4 {
		if id := rules.four(items); id != FanNone {
			f.add(id, 1)
			return
		}
	}

	if n >= 3 {
		best, bestRest := FanNone, FanNone
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for k := j + 1; k < n; k++ {
					id := rules.three(items[i], items[j], items[k])
					if id == FanNone {
						continue
					}
					rest := FanNone
					if n == 4 {
						other := 6 - i - j - k
						for _, m := range []int{i, j, k} {
							if cand := rules.two(items[other], items[m]); better(cand, rest) {
								rest = cand
							}
						}
					}
					if better(id, best) || (id == best && better(rest, bestRest)) {
						best, bestRest = id, rest
					}
				}
			}
		}
		if best != FanNone {
			f.add(best, 1)
			if bestRest != FanNone {
				f.add(bestRest, 1)
			}
			return
		}
	}

	// 两两组合取生成森林, n 个面子最多 n-1 个
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			id := rules.two(items[i], items[j])
			if id == FanNone {
				continue
			}
			ri, rj := find(i), find(j)
			if ri == rj {
				continue
			}
			parent[ri] = rj
			f.add(id, 1)
		}
	}
}

func sortedNums(items ...seq) []int8 {
	nums := make([]int8, len(items))
	for i, s := range items {
		nums[i] = s.num
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

func sameSuit(items ...seq) bool {
	for _, s := range items[1:] {
		if s.suit != items[0].suit {
			return false
		}
	}
	return true
}

func distinctSuits(a, b, c seq) bool {
	return a.suit != b.suit && b.suit != c.suit && a.suit != c.suit
}

// step 等差返回公差, 否则返回 -1
func step(nums []int8) int8 {
	d := nums[1] - nums[0]
	for i := 2; i < len(nums); i++ {
		if nums[i]-nums[i-1] != d {
			return -1
		}
	}
	return d
}

var chowRules = comboRules{
	four: func(items []seq) FanID {
		if !sameSuit(items...) {
			return FanNone
		}
		switch step(sortedNums(items...)) {
		case 0:
			return QuadrupleChow
		case 1:
			return FourPureShiftedChows
		case 2:
			return FourPureChainedChows
		}
		return FanNone
	},
	three: func(a, b, c seq) FanID {
		nums := sortedNums(a, b, c)
		if sameSuit(a, b, c) {
			switch {
			case nums[0] == nums[2]:
				return PureTripleChow
			case nums[0] == 2 && nums[1] == 5 && nums[2] == 8:
				return PureStraight
			case step(nums) == 1:
				return PureShiftedChows
			case step(nums) == 2:
				return PureChainedChows
			}
			return FanNone
		}
		if !distinctSuits(a, b, c) {
			return FanNone
		}
		switch {
		case nums[0] == 2 && nums[1] == 5 && nums[2] == 8:
			return MixedStraight
		case nums[0] == nums[2]:
			return MixedTripleChow
		case step(nums) == 1:
			return MixedShiftedChows
		}
		return FanNone
	},
	two: func(a, b seq) FanID {
		if a.suit != b.suit {
			if a.num == b.num {
				return MixedDoubleChow
			}
			return FanNone
		}
		d := a.num - b.num
		if d < 0 {
			d = -d
		}
		switch d {
		case 0:
			return PureDoubleChow
		case 3:
			return ShortStraight
		case 6:
			return TwoTerminalChows
		}
		return FanNone
	},
}

var pungRules = comboRules{
	four: func(items []seq) FanID {
		if sameSuit(items...) && step(sortedNums(items...)) == 1 {
			return FourPureShiftedPungs
		}
		return FanNone
	},
	three: func(a, b, c seq) FanID {
		nums := sortedNums(a, b, c)
		if sameSuit(a, b, c) {
			if step(nums) == 1 {
				return PureShiftedPungs
			}
			return FanNone
		}
		if !distinctSuits(a, b, c) {
			return FanNone
		}
		switch {
		case nums[0] == nums[2]:
			return TriplePung
		case step(nums) == 1:
			return MixedShiftedPungs
		}
		return FanNone
	},
	two: func(a, b seq) FanID {
		if a.suit != b.suit && a.num == b.num {
			return DoublePung
		}
		return FanNone
	},
}
