package gb

import "sudooom.gbfan/internal/mahjong/core"

// FanID 番种编号, 与天雀牌谱的番种编号一致
type FanID int

const (
	FanNone FanID = iota

	BigFourWinds                 // 1 大四喜
	BigThreeDragons              // 2 大三元
	AllGreen                     // 3 绿一色
	NineGates                    // 4 九莲宝灯
	FourKongs                    // 5 四杠
	SevenShiftedPairs            // 6 连七对
	ThirteenOrphans              // 7 十三幺
	AllTerminals                 // 8 清幺九
	LittleFourWinds              // 9 小四喜
	LittleThreeDragons           // 10 小三元
	AllHonors                    // 11 字一色
	FourConcealedPungs           // 12 四暗刻
	PureTerminalChows            // 13 一色双龙会
	QuadrupleChow                // 14 一色四同顺
	FourPureShiftedPungs         // 15 一色四节高
	FourPureShiftedChows         // 16 一色四步高
	FourPureChainedChows         // 17 一色四连环
	ThreeKongs                   // 18 三杠
	AllTerminalsAndHonors        // 19 混幺九
	SevenPairs                   // 20 七对
	GreaterHonorsAndKnittedTiles // 21 七星不靠
	AllEvenPungs                 // 22 全双刻
	FullFlush                    // 23 清一色
	PureTripleChow               // 24 一色三同顺
	PureShiftedPungs             // 25 一色三节高
	UpperTiles                   // 26 全大
	MiddleTiles                  // 27 全中
	LowerTiles                   // 28 全小
	PureStraight                 // 29 清龙
	ThreeSuitedTerminalChows     // 30 三色双龙会
	PureShiftedChows             // 31 一色三步高
	PureChainedChows             // 32 一色三连环
	AllFives                     // 33 全带五
	TriplePung                   // 34 三同刻
	ThreeConcealedPungs          // 35 三暗刻
	LesserHonorsAndKnittedTiles  // 36 全不靠
	KnittedStraight              // 37 组合龙
	UpperFour                    // 38 大于五
	LowerFour                    // 39 小于五
	BigThreeWinds                // 40 三风刻
	MixedStraight                // 41 花龙
	ReversibleTiles              // 42 推不倒
	MixedTripleChow              // 43 三色三同顺
	MixedShiftedPungs            // 44 三色三节高
	ChickenHand                  // 45 无番和
	LastTileDraw                 // 46 妙手回春
	LastTileClaim                // 47 海底捞月
	OutWithReplacementTile       // 48 杠上开花
	RobbingTheKong               // 49 抢杠和
	AllPungs                     // 50 碰碰和
	HalfFlush                    // 51 混一色
	MixedShiftedChows            // 52 三色三步高
	AllTypes                     // 53 五门齐
	MeldedHand                   // 54 全求人
	TwoConcealedKongs            // 55 双暗杠
	TwoDragonsPungs              // 56 双箭刻
	OutsideHand                  // 57 全带幺
	FullyConcealedHand           // 58 不求人
	TwoMeldedKongs               // 59 双明杠
	LastTile                     // 60 和绝张
	DragonPung                   // 61 箭刻
	PrevalentWind                // 62 圈风刻
	SeatWind                     // 63 门风刻
	ConcealedHand                // 64 门前清
	AllChows                     // 65 平和
	TileHog                      // 66 四归一
	DoublePung                   // 67 双同刻
	TwoConcealedPungs            // 68 双暗刻
	ConcealedKong                // 69 暗杠
	AllSimples                   // 70 断幺
	PureDoubleChow               // 71 一般高
	MixedDoubleChow              // 72 喜相逢
	ShortStraight                // 73 连六
	TwoTerminalChows             // 74 老少副
	PungOfTerminalsOrHonors      // 75 幺九刻
	MeldedKong                   // 76 明杠
	OneVoidedSuit                // 77 缺一门
	NoHonors                     // 78 无字
	EdgeWait                     // 79 边张
	ClosedWait                   // 80 嵌张
	SingleWait                   // 81 单钓将
	SelfDrawn                    // 82 自摸
	FlowerTiles                  // 83 花牌
	ConcealedKongAndMeldedKong   // 84 明暗杠

	FanSize
)

type fanInfo struct {
	name  string
	score int
}

var fanTable = [FanSize]fanInfo{
	FanNone:                      {"无", 0},
	BigFourWinds:                 {"大四喜", 88},
	BigThreeDragons:              {"大三元", 88},
	AllGreen:                     {"绿一色", 88},
	NineGates:                    {"九莲宝灯", 88},
	FourKongs:                    {"四杠", 88},
	SevenShiftedPairs:            {"连七对", 88},
	ThirteenOrphans:              {"十三幺", 88},
	AllTerminals:                 {"清幺九", 64},
	LittleFourWinds:              {"小四喜", 64},
	LittleThreeDragons:           {"小三元", 64},
	AllHonors:                    {"字一色", 64},
	FourConcealedPungs:           {"四暗刻", 64},
	PureTerminalChows:            {"一色双龙会", 64},
	QuadrupleChow:                {"一色四同顺", 48},
	FourPureShiftedPungs:         {"一色四节高", 48},
	FourPureShiftedChows:         {"一色四步高", 32},
	FourPureChainedChows:         {"一色四连环", 32},
	ThreeKongs:                   {"三杠", 32},
	AllTerminalsAndHonors:        {"混幺九", 32},
	SevenPairs:                   {"七对", 24},
	GreaterHonorsAndKnittedTiles: {"七星不靠", 24},
	AllEvenPungs:                 {"全双刻", 24},
	FullFlush:                    {"清一色", 24},
	PureTripleChow:               {"一色三同顺", 24},
	PureShiftedPungs:             {"一色三节高", 24},
	UpperTiles:                   {"全大", 24},
	MiddleTiles:                  {"全中", 24},
	LowerTiles:                   {"全小", 24},
	PureStraight:                 {"清龙", 16},
	ThreeSuitedTerminalChows:     {"三色双龙会", 16},
	PureShiftedChows:             {"一色三步高", 16},
	PureChainedChows:             {"一色三连环", 16},
	AllFives:                     {"全带五", 16},
	TriplePung:                   {"三同刻", 16},
	ThreeConcealedPungs:          {"三暗刻", 16},
	LesserHonorsAndKnittedTiles:  {"全不靠", 12},
	KnittedStraight:              {"组合龙", 12},
	UpperFour:                    {"大于五", 12},
	LowerFour:                    {"小于五", 12},
	BigThreeWinds:                {"三风刻", 12},
	MixedStraight:                {"花龙", 8},
	ReversibleTiles:              {"推不倒", 8},
	MixedTripleChow:              {"三色三同顺", 8},
	MixedShiftedPungs:            {"三色三节高", 8},
	ChickenHand:                  {"无番和", 8},
	LastTileDraw:                 {"妙手回春", 8},
	LastTileClaim:                {"海底捞月", 8},
	OutWithReplacementTile:       {"杠上开花", 8},
	RobbingTheKong:               {"抢杠和", 8},
	AllPungs:                     {"碰碰和", 6},
	HalfFlush:                    {"混一色", 6},
	MixedShiftedChows:            {"三色三步高", 6},
	AllTypes:                     {"五门齐", 6},
	MeldedHand:                   {"全求人", 6},
	TwoConcealedKongs:            {"双暗杠", 6},
	TwoDragonsPungs:              {"双箭刻", 6},
	OutsideHand:                  {"全带幺", 4},
	FullyConcealedHand:           {"不求人", 4},
	TwoMeldedKongs:               {"双明杠", 4},
	LastTile:                     {"和绝张", 4},
	DragonPung:                   {"箭刻", 2},
	PrevalentWind:                {"圈风刻", 2},
	SeatWind:                     {"门风刻", 2},
	ConcealedHand:                {"门前清", 2},
	AllChows:                     {"平和", 2},
	TileHog:                      {"四归一", 2},
	DoublePung:                   {"双同刻", 2},
	TwoConcealedPungs:            {"双暗刻", 2},
	ConcealedKong:                {"暗杠", 2},
	AllSimples:                   {"断幺", 2},
	PureDoubleChow:               {"一般高", 1},
	MixedDoubleChow:              {"喜相逢", 1},
	ShortStraight:                {"连六", 1},
	TwoTerminalChows:             {"老少副", 1},
	PungOfTerminalsOrHonors:      {"幺九刻", 1},
	MeldedKong:                   {"明杠", 1},
	OneVoidedSuit:                {"缺一门", 1},
	NoHonors:                     {"无字", 1},
	EdgeWait:                     {"边张", 1},
	ClosedWait:                   {"嵌张", 1},
	SingleWait:                   {"单钓将", 1},
	SelfDrawn:                    {"自摸", 1},
	FlowerTiles:                  {"花牌", 1},
	ConcealedKongAndMeldedKong:   {"明暗杠", 5},
}

// aliasNames 独听类番种的展示名
var aliasNames = map[string]string{
	"单钓将": "独听・单钓",
	"边张":  "独听・边张",
	"嵌张":  "独听・嵌张",
}

// Name 番种名称
func (id FanID) Name() string {
	if id < 0 || id >= FanSize {
		return ""
	}
	return fanTable[id].name
}

// Score 番种分值
func (id FanID) Score() int {
	if id < 0 || id >= FanSize {
		return 0
	}
	return fanTable[id].score
}

// NormalizeName 应用展示别名, 非别名番种原样返回
func NormalizeName(name string) string {
	if alias, ok := aliasNames[name]; ok {
		return alias
	}
	return name
}

// Pattern 番种定义
func (id FanID) Pattern() core.FanPattern {
	name := id.Name()
	return core.FanPattern{
		ID:             int(id),
		Name:           name,
		NormalizedName: NormalizeName(name),
		Score:          id.Score(),
	}
}

// Patterns 按编号升序返回全部番种定义
func Patterns() []core.FanPattern {
	patterns := make([]core.FanPattern, 0, FanSize-1)
	for id := FanID(1); id < FanSize; id++ {
		patterns = append(patterns, id.Pattern())
	}
	return patterns
}
