package core

// Calculator 算番器接口
type Calculator interface {
	// Parse 解析牌串
	Parse(text string) (*Hand, error)

	// IsWinning 检查是否和牌
	IsWinning(hand *Hand) bool

	// Evaluate 计算番种, 只对已和牌的手牌调用
	Evaluate(hand *Hand) (*FanResult, error)
}
