package gb

// exclusions 不计原则: 成立的番种使所列番种不再计算
var exclusions = map[FanID][]FanID{
	BigFourWinds:                 {BigThreeWinds, PrevalentWind, SeatWind, AllPungs, PungOfTerminalsOrHonors},
	BigThreeDragons:              {DragonPung, TwoDragonsPungs},
	AllGreen:                     {HalfFlush},
	NineGates:                    {FullFlush, NoHonors},
	FourKongs:                    {ThreeKongs, AllPungs, SingleWait},
	SevenShiftedPairs:            {SevenPairs, FullFlush, NoHonors, SingleWait},
	ThirteenOrphans:              {AllTypes, AllTerminalsAndHonors, SingleWait},
	AllTerminals:                 {AllTerminalsAndHonors, AllPungs, OutsideHand, PungOfTerminalsOrHonors, NoHonors, DoublePung},
	LittleFourWinds:              {BigThreeWinds},
	LittleThreeDragons:           {DragonPung, TwoDragonsPungs},
	AllHonors:                    {AllPungs, OutsideHand, PungOfTerminalsOrHonors, AllTerminalsAndHonors},
	FourConcealedPungs:           {AllPungs, ThreeConcealedPungs, TwoConcealedPungs},
	PureTerminalChows:            {AllChows, SevenPairs, FullFlush, PureDoubleChow, TwoTerminalChows, NoHonors},
	QuadrupleChow:                {PureShiftedPungs, TileHog, PureDoubleChow, PureTripleChow},
	FourPureShiftedPungs:         {PureTripleChow, PureShiftedPungs, AllPungs},
	FourPureShiftedChows:         {PureShiftedChows, ShortStraight, TwoTerminalChows},
	FourPureChainedChows:         {PureChainedChows, ShortStraight, TwoTerminalChows},
	AllTerminalsAndHonors:        {AllPungs, OutsideHand, PungOfTerminalsOrHonors},
	SevenPairs:                   {SingleWait},
	GreaterHonorsAndKnittedTiles: {AllTypes, LesserHonorsAndKnittedTiles, SingleWait},
	AllEvenPungs:                 {AllPungs, AllSimples, NoHonors},
	FullFlush:                    {NoHonors},
	PureTripleChow:               {PureShiftedPungs, PureDoubleChow},
	PureShiftedPungs:             {PureTripleChow},
	UpperTiles:                   {UpperFour, NoHonors},
	MiddleTiles:                  {AllSimples, NoHonors},
	LowerTiles:                   {LowerFour, NoHonors},
	ThreeSuitedTerminalChows:     {MixedDoubleChow, TwoTerminalChows, NoHonors, AllChows},
	AllFives:                     {AllSimples, NoHonors},
	TriplePung:                   {DoublePung},
	ThreeConcealedPungs:          {TwoConcealedPungs},
	LesserHonorsAndKnittedTiles:  {AllTypes, SingleWait},
	UpperFour:                    {NoHonors},
	LowerFour:                    {NoHonors},
	ReversibleTiles:              {OneVoidedSuit},
	MixedTripleChow:              {MixedDoubleChow},
	LastTileDraw:                 {SelfDrawn},
	OutWithReplacementTile:       {SelfDrawn},
	RobbingTheKong:               {LastTile},
	MeldedHand:                   {SingleWait},
	TwoConcealedKongs:            {ConcealedKong, TwoConcealedPungs},
	TwoDragonsPungs:              {DragonPung},
	FullyConcealedHand:           {SelfDrawn},
	TwoMeldedKongs:               {MeldedKong},
	AllChows:                     {NoHonors},
	AllSimples:                   {NoHonors},
}

// fanSet 番种计数, 下标为番种编号
type fanSet [FanSize]int

func (f *fanSet) add(id FanID, n int) {
	if n > 0 {
		f[id] += n
	}
}

func (f *fanSet) has(id FanID) bool {
	return f[id] > 0
}

// applyExclusions 按编号升序处理, 已被排除的番种不再排除他人
func (f *fanSet) applyExclusions() {
	for id := FanID(1); id < FanSize; id++ {
		if f[id] == 0 {
			continue
		}
		for _, x := range exclusions[id] {
			f[x] = 0
		}
	}
}

// total 含花牌的总番数
func (f *fanSet) total() int {
	sum := 0
	for id := FanID(1); id < FanSize; id++ {
		sum += id.Score() * f[id]
	}
	return sum
}

// empty 除花牌外没有番种
func (f *fanSet) empty() bool {
	for id := FanID(1); id < FanSize; id++ {
		if id != FlowerTiles && f[id] > 0 {
			return false
		}
	}
	return true
}
