package core

// TileSuit 牌的花色
type TileSuit int8

const (
	TileSuitWan    TileSuit = iota // 万
	TileSuitTiao                   // 条
	TileSuitTong                   // 筒
	TileSuitWind                   // 风 (东南西北)
	TileSuitDragon                 // 箭牌 (中发白)
	TileSuitFlower                 // 花牌
)

// String 返回花色的字符串表示
func (s TileSuit) String() string {
	switch s {
	case TileSuitWan:
		return "万"
	case TileSuitTiao:
		return "条"
	case TileSuitTong:
		return "筒"
	case TileSuitWind:
		return "风"
	case TileSuitDragon:
		return "箭"
	case TileSuitFlower:
		return "花"
	default:
		return "未知"
	}
}

// Letter 返回牌串记法中的花色字母, 字牌与花牌没有花色字母
func (s TileSuit) Letter() byte {
	switch s {
	case TileSuitWan:
		return 'm'
	case TileSuitTiao:
		return 's'
	case TileSuitTong:
		return 'p'
	case TileSuitFlower:
		return 'f'
	default:
		return 0
	}
}

// 风牌值
const (
	WindEast  int8 = iota + 1 // 东
	WindSouth                 // 南
	WindWest                  // 西
	WindNorth                 // 北
)

// 箭牌值
const (
	DragonRed   int8 = iota + 1 // 中
	DragonGreen                 // 发
	DragonWhite                 // 白
)

const (
	windLetters   = "ESWN"
	dragonLetters = "CFP"
)

// Tile 麻将牌
type Tile struct {
	Suit  TileSuit `json:"suit"`  // 花色
	Value int8     `json:"value"` // 值 (1-9, 风牌:1东2南3西4北, 箭牌:1中2发3白)
}

// String 返回牌的记法表示, 如 5m、E、P
func (t Tile) String() string {
	switch t.Suit {
	case TileSuitWind:
		if t.Value >= 1 && int(t.Value) <= len(windLetters) {
			return string(windLetters[t.Value-1])
		}
	case TileSuitDragon:
		if t.Value >= 1 && int(t.Value) <= len(dragonLetters) {
			return string(dragonLetters[t.Value-1])
		}
	default:
		if l := t.Suit.Letter(); l != 0 {
			return string([]byte{byte('0' + t.Value), l})
		}
	}
	return "??"
}

// Equal 判断两张牌是否相同
func (t Tile) Equal(other Tile) bool {
	return t.Suit == other.Suit && t.Value == other.Value
}

// MeldType 组合类型
type MeldType int8

const (
	MeldTypePong MeldType = iota // 碰/刻子 (3张相同)
	MeldTypeKong                 // 杠 (4张相同)
	MeldTypeChi                  // 吃/顺子 (3张顺子)
	MeldTypePair                 // 将 (2张相同)
)

// String 返回组合类型名称
func (m MeldType) String() string {
	switch m {
	case MeldTypePong:
		return "刻子"
	case MeldTypeKong:
		return "杠"
	case MeldTypeChi:
		return "顺子"
	case MeldTypePair:
		return "将"
	default:
		return "未知"
	}
}

// Meld 牌组 (副露或手牌拆出的面子)
// 顺子的 Tile 为中间那张。
// Offer: 0 为暗, 顺子 1-3 表示吃的是第几张, 刻/杠 1-3 表示供牌者的相对方位。
type Meld struct {
	Type  MeldType `json:"type"`
	Tile  Tile     `json:"tile"`
	Offer int8     `json:"offer"`
}

// Melded 是否为明牌组合
func (m Meld) Melded() bool {
	return m.Offer != 0
}

// Tiles 展开为具体的牌
func (m Meld) Tiles() []Tile {
	switch m.Type {
	case MeldTypeChi:
		return []Tile{
			{Suit: m.Tile.Suit, Value: m.Tile.Value - 1},
			m.Tile,
			{Suit: m.Tile.Suit, Value: m.Tile.Value + 1},
		}
	case MeldTypeKong:
		return []Tile{m.Tile, m.Tile, m.Tile, m.Tile}
	case MeldTypePair:
		return []Tile{m.Tile, m.Tile}
	default:
		return []Tile{m.Tile, m.Tile, m.Tile}
	}
}

// Contains 牌组是否包含某张牌
func (m Meld) Contains(t Tile) bool {
	return ContainsTile(m.Tiles(), t)
}

// Situation 和牌时的场况
type Situation struct {
	RoundWind int8 `json:"roundWind"` // 圈风
	SeatWind  int8 `json:"seatWind"`  // 门风
	SelfDrawn bool `json:"selfDrawn"` // 自摸
	LastCopy  bool `json:"lastCopy"`  // 绝张
	WallLast  bool `json:"wallLast"`  // 海底
	AboutKong bool `json:"aboutKong"` // 杠相关 (点和为抢杠, 自摸为杠上开花)
}

// DefaultSituation 东风圈东家, 点和, 无其他场况
func DefaultSituation() Situation {
	return Situation{RoundWind: WindEast, SeatWind: WindEast}
}

// Hand 待算番的一手牌
type Hand struct {
	Melds     []Meld    `json:"melds"`     // 副露及暗杠
	Tiles     []Tile    `json:"tiles"`     // 立牌 (不含和牌张)
	WinTile   *Tile     `json:"winTile"`   // 和牌张, 13 张时为空
	Flowers   int       `json:"flowers"`   // 花牌数
	Situation Situation `json:"situation"` // 场况
}

// TileCount 不含花牌的张数, 每个副露按 3 张计
func (h *Hand) TileCount() int {
	n := len(h.Tiles) + 3*len(h.Melds)
	if h.WinTile != nil {
		n++
	}
	return n
}

// ConcealedTiles 立牌加和牌张
func (h *Hand) ConcealedTiles() []Tile {
	tiles := CloneTiles(h.Tiles)
	if h.WinTile != nil {
		tiles = append(tiles, *h.WinTile)
	}
	return tiles
}

// AllTiles 全部牌, 杠按 4 张展开
func (h *Hand) AllTiles() []Tile {
	tiles := h.ConcealedTiles()
	for _, m := range h.Melds {
		tiles = append(tiles, m.Tiles()...)
	}
	return tiles
}

// FanPattern 番种
type FanPattern struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
	Score          int    `json:"score"`
}

// FanEntry 算番结果中的一项
type FanEntry struct {
	FanPattern
	Count int `json:"count"`
}

// FanResult 算番结果
type FanResult struct {
	Entries  []FanEntry `json:"entries"` // 按番种 ID 升序
	TotalFan int        `json:"totalFan"`
	BaseFan  int        `json:"baseFan"`
	Flowers  int        `json:"flowers"`
}
