package gb

import "sudooom.gbfan/internal/mahjong/core"

// Calculator 国标麻将算番器, 无状态, 可并发使用
type Calculator struct{}

// NewCalculator 创建算番器
func NewCalculator() *Calculator {
	return &Calculator{}
}

var _ core.Calculator = (*Calculator)(nil)

// Parse 解析牌串
func (c *Calculator) Parse(text string) (*core.Hand, error) {
	return Parse(text)
}

// IsWinning 检查是否和牌
func (c *Calculator) IsWinning(hand *core.Hand) bool {
	return IsWinning(hand)
}

// Evaluate 枚举全部拆法, 取总番最高者, 同分取先找到的
func (c *Calculator) Evaluate(hand *core.Hand) (*core.FanResult, error) {
	if !IsWinning(hand) {
		return nil, ErrNotWinning
	}

	e := newEvaluation(hand)
	var (
		best      fanSet
		bestTotal = -1
	)
	for _, a := range arrangements(core.CountTiles(hand.ConcealedTiles()), len(hand.Melds)) {
		f := e.evaluate(a)
		if t := f.total(); t > bestTotal {
			best, bestTotal = f, t
		}
	}

	result := &core.FanResult{Flowers: hand.Flowers}
	for id := FanID(1); id < FanSize; id++ {
		n := best[id]
		if n == 0 {
			continue
		}
		p := id.Pattern()
		result.Entries = append(result.Entries, core.FanEntry{FanPattern: p, Count: n})
		result.TotalFan += p.Score * n
		if p.NormalizedName != fanTable[FlowerTiles].name {
			result.BaseFan += p.Score * n
		}
	}
	return result, nil
}
