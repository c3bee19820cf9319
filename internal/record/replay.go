package record

import (
	"slices"

	apperrors "sudooom.gbfan/internal/errors"
)

// ActionType 动作类型
type ActionType int

const (
	ActionStart   ActionType = iota // 开始出牌
	ActionFlower                    // 补花
	ActionDiscard                   // 打牌
	ActionChi                       // 吃
	ActionPeng                      // 碰
	ActionGang                      // 杠 (明杠/暗杠/加杠)
	ActionWin                       // 和
	ActionDraw                      // 摸牌
	ActionPass                      // 过
	ActionAbandon                   // 弃
)

// Action 一条动作, 原始格式为 [packed, data, time]
type Action struct {
	Player int
	Type   ActionType
	Data   int
	Time   int
}

func parseActions(raw [][]int) []Action {
	actions := make([]Action, 0, len(raw))
	for _, a := range raw {
		if len(a) < 2 {
			continue
		}
		act := Action{
			Player: (a[0] >> 4) & 3,
			Type:   ActionType(a[0] & 15),
			Data:   a[1],
		}
		if len(a) > 2 {
			act.Time = a[2]
		}
		actions = append(actions, act)
	}
	return actions
}

// PackKind 副露类型
type PackKind int8

const (
	PackChi PackKind = iota
	PackPeng
	PackGang
)

// Pack 一组副露
// Base 为吃的中间张或碰杠的牌种; Offer 对吃为所吃的是第几张, 对碰杠为供牌者相对方位, 暗杠为 0
type Pack struct {
	Kind    PackKind
	Base    int
	Offer   int
	Tiles   []int // 牌种
	Claimed int   // 吃进的那张在 Tiles 中的位置, 非吃为 -1
}

func (p Pack) concealed() bool {
	return p.Kind == PackGang && p.Offer == 0
}

// Win 和牌信息
type Win struct {
	Winner    int
	Tile      int
	SelfDrawn bool
}

// Game 牌谱回放后的牌局状态
type Game struct {
	script *Script

	hands    [4][]int
	packs    [4][]Pack
	discards [4][]int
	flowers  [4][]int
	lastDraw [4]int

	lastDiscard       int
	lastDiscardPlayer int
	current           int
	dealer            int
	lastKong          bool

	wall        []int
	front, back int

	win *Win
}

// Replay 按动作序列回放到和牌或流局
func Replay(script *Script) (*Game, error) {
	wall, err := script.wallTiles()
	if err != nil {
		return nil, err
	}
	if len(wall) != tileCount {
		return nil, apperrors.ErrRecordReplay.Wrapf("wall has %d tiles", len(wall))
	}

	g := &Game{
		script:            script,
		lastDiscard:       -1,
		lastDiscardPlayer: -1,
	}
	for i := range g.lastDraw {
		g.lastDraw[i] = -1
	}
	g.deal(wall)

	for _, act := range parseActions(script.Actions) {
		done, err := g.apply(act)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return g, nil
}

// deal 庄家固定为 0; 按骰子切牌后每人 3 轮各 4 张, 再各 1 张, 庄家多 1 张
func (g *Game) deal(wall []int) {
	d := g.script.Dice
	dice := [4]int{d & 15, (d >> 4) & 15, (d >> 8) & 15, (d >> 12) & 15}
	g.dealer = 0

	breakPos := ((g.dealer-(dice[0]+dice[1]-1))%4 + 4) % 4
	start := (breakPos*36 + (dice[0]+dice[1]+dice[2]+dice[3])*2) % tileCount

	g.wall = append(append([]int{}, wall[start:]...), wall[:start]...)
	g.back = len(g.wall) - 1

	for round := 0; round < 3; round++ {
		for off := 0; off < 4; off++ {
			p := (g.dealer + off) % 4
			g.hands[p] = append(g.hands[p], g.wall[g.front:g.front+4]...)
			g.front += 4
		}
	}
	for off := 0; off < 4; off++ {
		p := (g.dealer + off) % 4
		g.hands[p] = append(g.hands[p], g.wall[g.front])
		g.front++
	}
	g.hands[g.dealer] = append(g.hands[g.dealer], g.wall[g.front])
	// 庄家第 14 张视为摸牌, 天和时作为和牌张
	g.lastDraw[g.dealer] = g.wall[g.front]
	g.front++

	for i := range g.hands {
		slices.Sort(g.hands[i])
	}
	g.current = g.dealer
}

func (g *Game) apply(act Action) (bool, error) {
	p, data := act.Player, act.Data
	lo, hi := data&0xFF, (data>>8)&0xFF

	switch act.Type {
	case ActionFlower, ActionDiscard, ActionDraw:
		if !validTile(lo) {
			return false, apperrors.ErrRecordReplay.Wrapf("player %d action %d has tile %d", p, act.Type, lo)
		}
	}

	switch act.Type {
	case ActionStart:
		g.dealer = p
	case ActionFlower:
		flower := (hi & 15) + flowerStart
		if !g.removeTile(p, flower) {
			return false, apperrors.ErrRecordReplay.Wrapf("player %d has no flower %s", p, TileName(flower))
		}
		g.flowers[p] = append(g.flowers[p], flower)
		g.hands[p] = append(g.hands[p], lo)
		g.lastDraw[p] = lo
		if g.back >= g.front {
			g.back--
		}
	case ActionDiscard:
		g.current = p
		g.removeTile(p, lo)
		g.discards[p] = append(g.discards[p], lo)
		g.lastDiscard, g.lastDiscardPlayer = lo, p
		g.lastKong = false
	case ActionChi, ActionPeng, ActionGang:
		g.current = p
		if data == 0 {
			return false, nil
		}
		if err := g.claim(act); err != nil {
			return false, err
		}
	case ActionWin:
		if data == 0 {
			return false, nil
		}
		selfDrawn := p == g.current
		tile := g.lastDiscard
		if selfDrawn {
			tile = g.lastDraw[p]
		}
		if tile < 0 {
			return false, apperrors.ErrRecordReplay.Wrapf("player %d wins without a tile", p)
		}
		if !selfDrawn {
			g.hands[p] = append(g.hands[p], tile)
		}
		g.win = &Win{Winner: p, Tile: tile, SelfDrawn: selfDrawn}
		slices.Sort(g.hands[p])
		return true, nil
	case ActionDraw:
		g.current = p
		g.hands[p] = append(g.hands[p], lo)
		g.lastDraw[p] = lo
		// 逆向摸牌 (杠后补牌) 从牌墙尾部取
		if hi != 0 {
			g.back--
		} else {
			g.front++
		}
	case ActionPass, ActionAbandon:
	}

	slices.Sort(g.hands[p])
	return false, nil
}

func (g *Game) claim(act Action) error {
	p, data := act.Player, act.Data
	tileVal := (data & 0x3F) << 2
	offer := (data >> 6) & 3
	from := (p + offer) % 4
	if kind(tileVal) >= kindCount {
		return apperrors.ErrRecordReplay.Wrapf("player %d claims tile kind %d", p, kind(tileVal))
	}

	switch act.Type {
	case ActionChi:
		if g.lastDiscard < 0 {
			return apperrors.ErrRecordReplay.Wrapf("player %d chi without discard", p)
		}
		offered := g.lastDiscard
		if tileVal-4+((data>>10)&3) < 0 {
			tileVal = offered
		}
		chi := [3]int{
			tileVal - 4 + ((data >> 10) & 3),
			tileVal + ((data >> 12) & 3),
			tileVal + 4 + ((data >> 14) & 3),
		}
		if !validChi(chi) {
			return apperrors.ErrRecordReplay.Wrapf("player %d chi %v is not a suited run", p, chi)
		}
		pack := Pack{Kind: PackChi, Base: kind(tileVal), Offer: 1, Claimed: -1}
		for i, t := range chi {
			pack.Tiles = append(pack.Tiles, kind(t))
			if kind(t) == kind(offered) {
				pack.Offer = i + 1
				pack.Claimed = i
				continue
			}
			g.removeKind(p, kind(t), 1)
		}
		g.packs[p] = append(g.packs[p], pack)
		g.popDiscard(from)
	case ActionPeng:
		g.removeKind(p, kind(tileVal), 2)
		g.packs[p] = append(g.packs[p], Pack{
			Kind:    PackPeng,
			Base:    kind(tileVal),
			Offer:   offer,
			Tiles:   repeatKind(kind(tileVal), 3),
			Claimed: -1,
		})
		g.popDiscard(from)
	case ActionGang:
		g.lastKong = true
		k := kind(tileVal)
		switch {
		case data&0x0300 == 0x0300:
			// 加杠, 可被抢杠
			g.lastDiscard, g.lastDiscardPlayer = tileVal, p
			g.removeKind(p, k, 1)
			for i, pk := range g.packs[p] {
				if pk.Kind == PackPeng && pk.Base == k {
					g.packs[p][i].Kind = PackGang
					g.packs[p][i].Tiles = repeatKind(k, 4)
					break
				}
			}
		case offer == 0:
			g.removeKind(p, k, 4)
			g.packs[p] = append(g.packs[p], Pack{Kind: PackGang, Base: k, Tiles: repeatKind(k, 4), Claimed: -1})
		default:
			g.removeKind(p, k, 3)
			g.packs[p] = append(g.packs[p], Pack{Kind: PackGang, Base: k, Offer: offer, Tiles: repeatKind(k, 4), Claimed: -1})
			g.popDiscard(from)
		}
	}
	return nil
}

// validChi 三张须为同一花色的数牌
func validChi(chi [3]int) bool {
	for _, t := range chi {
		if t < 0 || kind(t) >= suitedKinds || kind(t)/9 != kind(chi[0])/9 {
			return false
		}
	}
	return true
}

func repeatKind(k, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// removeTile 移除指定编号的牌
func (g *Game) removeTile(p, id int) bool {
	if i := slices.Index(g.hands[p], id); i >= 0 {
		g.hands[p] = slices.Delete(g.hands[p], i, i+1)
		return true
	}
	return false
}

// removeKind 移除至多 n 张同种牌
func (g *Game) removeKind(p, k, n int) {
	for removed := 0; removed < n; removed++ {
		i := slices.IndexFunc(g.hands[p], func(t int) bool { return kind(t) == k })
		if i < 0 {
			return
		}
		g.hands[p] = slices.Delete(g.hands[p], i, i+1)
	}
}

func (g *Game) popDiscard(p int) {
	if n := len(g.discards[p]); n > 0 {
		g.discards[p] = g.discards[p][:n-1]
	}
}

// Win 和牌信息, 流局为 nil
func (g *Game) Win() *Win {
	return g.win
}

// Hand 玩家当前的立牌 (和牌者含和牌张)
func (g *Game) Hand(p int) []int {
	return slices.Clone(g.hands[p])
}

// Packs 玩家的副露
func (g *Game) Packs(p int) []Pack {
	return slices.Clone(g.packs[p])
}

// Flowers 玩家补过的花牌
func (g *Game) Flowers(p int) []int {
	return slices.Clone(g.flowers[p])
}

// Dealer 当前庄家
func (g *Game) Dealer() int {
	return g.dealer
}

// Script 回放所用的牌谱
func (g *Game) Script() *Script {
	return g.script
}
