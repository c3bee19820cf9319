package gb

import (
	"sudooom.gbfan/internal/mahjong/core"
)

// unit 参与算番的面子
type unit struct {
	meld      core.Meld
	fixed     bool // 副露 (含暗杠)
	concealed bool // 暗刻/暗杠
}

// evaluation 一次算番的共享上下文
type evaluation struct {
	hand       *core.Hand
	win        core.Tile
	all        core.Counts
	melded     bool // 有吃碰明杠
	uniqueWait bool
}

func newEvaluation(hand *core.Hand) *evaluation {
	e := &evaluation{
		hand: hand,
		win:  *hand.WinTile,
		all:  core.CountTiles(hand.AllTiles()),
	}
	for _, m := range hand.Melds {
		if m.Melded() {
			e.melded = true
		}
	}
	e.uniqueWait = len(WaitingTiles(hand)) == 1
	return e
}

// evaluate 对一种拆法算番
func (e *evaluation) evaluate(a arrangement) fanSet {
	var f fanSet

	switch a.shape {
	case shapeStandard, shapeKnittedStraight:
		units := e.units(a)
		e.setFans(&f, units, a)
		if a.shape == shapeKnittedStraight {
			f.add(KnittedStraight, 1)
		} else if e.isNineGates() {
			f.add(NineGates, 1)
			if f[PungOfTerminalsOrHonors] > 0 {
				f[PungOfTerminalsOrHonors]--
			}
		}
		if e.uniqueWait {
			f.add(e.waitFan(a), 1)
		}
	case shapeSevenPairs:
		if isShiftedPairs(a.pairs) {
			f.add(SevenShiftedPairs, 1)
		} else {
			f.add(SevenPairs, 1)
		}
	case shapeThirteenOrphans:
		f.add(ThirteenOrphans, 1)
	case shapeHonorsKnitted:
		honors := 0
		for i := 27; i < core.TileKinds; i++ {
			honors += e.all[i]
		}
		if honors == 7 {
			f.add(GreaterHonorsAndKnittedTiles, 1)
		} else {
			f.add(LesserHonorsAndKnittedTiles, 1)
		}
		if honors == 5 {
			f.add(KnittedStraight, 1)
		}
	}

	e.tileFans(&f)
	e.concealmentFans(&f, a)
	e.situationFans(&f)

	f.applyExclusions()
	if f.empty() {
		f.add(ChickenHand, 1)
	}
	f.add(FlowerTiles, e.hand.Flowers)
	return f
}

// units 副露在前, 暗面子在后; 点和时含和牌张的暗刻按明刻计
func (e *evaluation) units(a arrangement) []unit {
	units := make([]unit, 0, len(e.hand.Melds)+len(a.sets))
	for _, m := range e.hand.Melds {
		units = append(units, unit{
			meld:      m,
			fixed:     true,
			concealed: !m.Melded() && m.Type != core.MeldTypeChi,
		})
	}

	exposed := -1
	if !e.hand.Situation.SelfDrawn {
		elsewhere := a.pair.Tile.Equal(e.win) || a.shape == shapeKnittedStraight && inKnitted(a.knitted, e.win)
		for _, s := range a.sets {
			if s.Type == core.MeldTypeChi && s.Contains(e.win) {
				elsewhere = true
			}
		}
		if !elsewhere {
			for i, s := range a.sets {
				if s.Type == core.MeldTypePong && s.Tile.Equal(e.win) {
					exposed = i
					break
				}
			}
		}
	}
	for i, s := range a.sets {
		units = append(units, unit{
			meld:      s,
			concealed: s.Type == core.MeldTypePong && i != exposed,
		})
	}
	return units
}

func inKnitted(pattern int, t core.Tile) bool {
	if pattern < 0 {
		return false
	}
	idx := t.Index()
	for _, k := range knittedPatterns[pattern] {
		if k == idx {
			return true
		}
	}
	return false
}

func isPung(m core.Meld) bool {
	return m.Type == core.MeldTypePong || m.Type == core.MeldTypeKong
}

// setFans 由面子结构决定的番种
func (e *evaluation) setFans(f *fanSet, units []unit, a arrangement) {
	sit := e.hand.Situation
	pair := a.pair.Tile

	var (
		chows, pungs                          []seq
		windPungs, dragonPungs, terminalPungs int
		freeWindPungs, concealedPungs         int
		meldedKongs, concealedKongs           int
		pungCount                             int
	)
	for _, u := range units {
		m := u.meld
		if m.Type == core.MeldTypeChi {
			chows = append(chows, seq{suit: m.Tile.Suit, num: m.Tile.Value})
			continue
		}
		pungCount++
		if u.concealed {
			concealedPungs++
		}
		if m.Type == core.MeldTypeKong {
			if m.Melded() {
				meldedKongs++
			} else {
				concealedKongs++
			}
		}
		switch {
		case m.Tile.Suit == core.TileSuitWind:
			windPungs++
			if m.Tile.Value == sit.RoundWind {
				f.add(PrevalentWind, 1)
			}
			if m.Tile.Value == sit.SeatWind {
				f.add(SeatWind, 1)
			}
			if m.Tile.Value != sit.RoundWind && m.Tile.Value != sit.SeatWind {
				freeWindPungs++
			}
		case m.Tile.Suit == core.TileSuitDragon:
			dragonPungs++
		default:
			if m.Tile.IsTerminal() {
				terminalPungs++
			}
			pungs = append(pungs, seq{suit: m.Tile.Suit, num: m.Tile.Value})
		}
	}

	switch {
	case windPungs == 4:
		f.add(BigFourWinds, 1)
	case windPungs == 3 && pair.Suit == core.TileSuitWind:
		f.add(LittleFourWinds, 1)
	case windPungs == 3:
		f.add(BigThreeWinds, 1)
	}
	switch {
	case dragonPungs == 3:
		f.add(BigThreeDragons, 1)
	case dragonPungs == 2 && pair.Suit == core.TileSuitDragon:
		f.add(LittleThreeDragons, 1)
	case dragonPungs == 2:
		f.add(TwoDragonsPungs, 1)
	case dragonPungs == 1:
		f.add(DragonPung, 1)
	}
	f.add(PungOfTerminalsOrHonors, terminalPungs)
	if windPungs < 3 {
		f.add(PungOfTerminalsOrHonors, freeWindPungs)
	}

	switch kongs := meldedKongs + concealedKongs; {
	case kongs == 4:
		f.add(FourKongs, 1)
	case kongs == 3:
		f.add(ThreeKongs, 1)
	case kongs == 2 && concealedKongs == 2:
		f.add(TwoConcealedKongs, 1)
	case kongs == 2 && meldedKongs == 2:
		f.add(TwoMeldedKongs, 1)
	case kongs == 2:
		f.add(ConcealedKongAndMeldedKong, 1)
	case concealedKongs == 1:
		f.add(ConcealedKong, 1)
	case meldedKongs == 1:
		f.add(MeldedKong, 1)
	}

	switch concealedPungs {
	case 4:
		f.add(FourConcealedPungs, 1)
	case 3:
		f.add(ThreeConcealedPungs, 1)
	case 2:
		f.add(TwoConcealedPungs, 1)
	}

	if pungCount == 4 {
		f.add(AllPungs, 1)
	}

	chowLike := len(chows)
	if a.shape == shapeKnittedStraight {
		chowLike += 3
	}
	if chowLike == 4 && pair.IsSuited() {
		f.add(AllChows, 1)
	}

	if a.shape != shapeStandard {
		return
	}

	outside, fives, even := true, true, pair.IsSuited() && pair.Value%2 == 0
	for _, u := range units {
		tiles := u.meld.Tiles()
		hasOutside, hasFive := false, false
		for _, t := range tiles {
			if t.IsTerminalOrHonor() {
				hasOutside = true
			}
			if t.IsSuited() && t.Value == 5 {
				hasFive = true
			}
		}
		outside = outside && hasOutside
		fives = fives && hasFive
		even = even && isPung(u.meld) && u.meld.Tile.IsSuited() && u.meld.Tile.Value%2 == 0
	}
	if outside && pair.IsTerminalOrHonor() {
		f.add(OutsideHand, 1)
	}
	if fives && pair.IsSuited() && pair.Value == 5 {
		f.add(AllFives, 1)
	}
	if even {
		f.add(AllEvenPungs, 1)
	}

	if len(chows) == 4 {
		if id := doubleDragon(chows, pair); id != FanNone {
			f.add(id, 1)
			applyCombos(pungs, pungRules, f)
			return
		}
	}
	applyCombos(chows, chowRules, f)
	applyCombos(pungs, pungRules, f)
}

// doubleDragon 一色双龙会 / 三色双龙会
func doubleDragon(chows []seq, pair core.Tile) FanID {
	if !pair.IsSuited() || pair.Value != 5 {
		return FanNone
	}
	lows := map[core.TileSuit]int{}
	highs := map[core.TileSuit]int{}
	for _, c := range chows {
		switch c.num {
		case 2:
			lows[c.suit]++
		case 8:
			highs[c.suit]++
		default:
			return FanNone
		}
	}
	if lows[pair.Suit] == 2 && highs[pair.Suit] == 2 {
		return PureTerminalChows
	}
	if lows[pair.Suit] > 0 || highs[pair.Suit] > 0 || len(lows) != 2 || len(highs) != 2 {
		return FanNone
	}
	for s, n := range lows {
		if n != 1 || highs[s] != 1 {
			return FanNone
		}
	}
	return ThreeSuitedTerminalChows
}

// isShiftedPairs 同一花色 7 个相连的对子
func isShiftedPairs(pairs []core.Meld) bool {
	if len(pairs) != 7 || !pairs[0].Tile.IsSuited() {
		return false
	}
	for i := 1; i < len(pairs); i++ {
		prev, cur := pairs[i-1].Tile, pairs[i].Tile
		if cur.Suit != prev.Suit || cur.Value != prev.Value+1 {
			return false
		}
	}
	return true
}

// isNineGates 门清一色, 13 张立牌为 1112345678999
func (e *evaluation) isNineGates() bool {
	if len(e.hand.Melds) != 0 || !e.win.IsSuited() {
		return false
	}
	want := [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}
	standing := core.CountTiles(e.hand.Tiles)
	base := int(e.win.Suit) * 9
	for i := 0; i < core.TileKinds; i++ {
		expect := 0
		if i >= base && i < base+9 {
			expect = want[i-base]
		}
		if standing[i] != expect {
			return false
		}
	}
	return true
}

// waitFan 独听时按和牌张在拆法中的位置判定边张、嵌张或单钓将
func (e *evaluation) waitFan(a arrangement) FanID {
	w := e.win
	for _, s := range a.sets {
		if s.Type != core.MeldTypeChi || s.Tile.Suit != w.Suit {
			continue
		}
		if (s.Tile.Value == 2 && w.Value == 3) || (s.Tile.Value == 8 && w.Value == 7) {
			return EdgeWait
		}
	}
	for _, s := range a.sets {
		if s.Type == core.MeldTypeChi && s.Tile.Equal(w) {
			return ClosedWait
		}
	}
	if a.pair.Tile.Equal(w) {
		return SingleWait
	}
	return FanNone
}

var (
	greenTiles      = tileSet("23468s", "F")
	reversibleTiles = tileSet("1234589p245689s", "P")
)

func tileSet(suited, honors string) map[int]bool {
	set := map[int]bool{}
	tiles, _, _ := scanTiles(suited+honors, 0, false)
	for _, t := range tiles {
		set[t.Index()] = true
	}
	return set
}

// tileFans 只与牌张构成有关的番种
func (e *evaluation) tileFans(f *fanSet) {
	c := e.all

	var suits [3]bool
	winds, dragons := false, false
	allGreen, reversible := true, true
	allSimple, allTermHonor := true, true
	hasTerminal := false
	upper, middle, lower, upperFour, lowerFour := true, true, true, true, true

	for i, n := range c {
		if n == 0 {
			continue
		}
		t := core.TileAt(i)
		switch t.Suit {
		case core.TileSuitWind:
			winds = true
		case core.TileSuitDragon:
			dragons = true
		default:
			suits[t.Suit] = true
		}
		allGreen = allGreen && greenTiles[i]
		reversible = reversible && reversibleTiles[i]
		if t.IsTerminalOrHonor() {
			allSimple = false
		} else {
			allTermHonor = false
		}
		if t.IsTerminal() {
			hasTerminal = true
		}
		v := t.Value
		suited := t.IsSuited()
		upper = upper && suited && v >= 7
		middle = middle && suited && v >= 4 && v <= 6
		lower = lower && suited && v <= 3
		upperFour = upperFour && suited && v >= 6
		lowerFour = lowerFour && suited && v <= 4
	}

	suitCount := 0
	for _, s := range suits {
		if s {
			suitCount++
		}
	}
	honors := winds || dragons

	if allGreen {
		f.add(AllGreen, 1)
	}
	switch {
	case suitCount == 0:
		f.add(AllHonors, 1)
	case suitCount == 1 && !honors:
		f.add(FullFlush, 1)
	case suitCount == 1:
		f.add(HalfFlush, 1)
	case suitCount == 2:
		f.add(OneVoidedSuit, 1)
	}
	if suitCount == 3 && winds && dragons {
		f.add(AllTypes, 1)
	}
	if !honors {
		f.add(NoHonors, 1)
	}
	if allSimple {
		f.add(AllSimples, 1)
	}
	if allTermHonor && hasTerminal {
		if honors {
			f.add(AllTerminalsAndHonors, 1)
		} else {
			f.add(AllTerminals, 1)
		}
	}
	switch {
	case upper:
		f.add(UpperTiles, 1)
	case middle:
		f.add(MiddleTiles, 1)
	case lower:
		f.add(LowerTiles, 1)
	}
	if upperFour {
		f.add(UpperFour, 1)
	}
	if lowerFour {
		f.add(LowerFour, 1)
	}
	if reversible {
		f.add(ReversibleTiles, 1)
	}

	kongs := map[int]bool{}
	for _, m := range e.hand.Melds {
		if m.Type == core.MeldTypeKong {
			kongs[m.Tile.Index()] = true
		}
	}
	for i, n := range c {
		if n == 4 && !kongs[i] {
			f.add(TileHog, 1)
		}
	}
}

// concealmentFans 门前清、不求人、自摸、全求人
func (e *evaluation) concealmentFans(f *fanSet, a arrangement) {
	selfDrawn := e.hand.Situation.SelfDrawn
	exempt := a.shape == shapeSevenPairs || a.shape == shapeThirteenOrphans || a.shape == shapeHonorsKnitted ||
		f.has(FourConcealedPungs) || f.has(NineGates)

	switch {
	case !e.melded && !exempt && selfDrawn:
		f.add(FullyConcealedHand, 1)
	case !e.melded && !exempt:
		f.add(ConcealedHand, 1)
	case selfDrawn:
		f.add(SelfDrawn, 1)
	}

	if len(e.hand.Melds) == 4 && !selfDrawn {
		all := true
		for _, m := range e.hand.Melds {
			all = all && m.Melded()
		}
		if all {
			f.add(MeldedHand, 1)
		}
	}
}

// situationFans 和牌时机相关的番种
func (e *evaluation) situationFans(f *fanSet) {
	sit := e.hand.Situation
	if sit.WallLast {
		if sit.SelfDrawn {
			f.add(LastTileDraw, 1)
		} else {
			f.add(LastTileClaim, 1)
		}
	}
	if sit.AboutKong {
		if sit.SelfDrawn {
			f.add(OutWithReplacementTile, 1)
		} else {
			f.add(RobbingTheKong, 1)
		}
	}
	if sit.LastCopy {
		f.add(LastTile, 1)
	}
}
