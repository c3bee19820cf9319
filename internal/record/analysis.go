package record

import (
	"sort"
	"strconv"
	"strings"

	apperrors "sudooom.gbfan/internal/errors"
)

// flowerFanID 牌谱中花牌的番种编号
const flowerFanID = 83

// OfficialFan 牌谱记录的一项番种
type OfficialFan struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Count int    `json:"count"`
}

// WinAnalysis 和牌统计
type WinAnalysis struct {
	WinnerName    string `json:"winner_name"`
	BaseFan       int    `json:"base_fan"`
	FlowerCount   int    `json:"flower_count"`
	TotalFan      int    `json:"total_fan"`
	FormattedHand string `json:"formatted_hand"`
	FanVector     []int  `json:"fan_vector"`
	WinningTile   string `json:"winning_tile"`
	GameTitle     string `json:"game_title"`
}

func (g *Game) requireWin() (*Win, error) {
	if g.win == nil {
		return nil, apperrors.ErrRecordNoWinner
	}
	return g.win, nil
}

// officialFans 按编号升序, includeFlowers 为 false 时跳过花牌
func (g *Game) officialFans(includeFlowers bool) []OfficialFan {
	res := g.script.Result(g.win.Winner)
	if res == nil {
		return nil
	}
	fans := make([]OfficialFan, 0, len(res.Fans))
	for key, val := range res.Fans {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if id == flowerFanID && !includeFlowers {
			continue
		}
		fans = append(fans, OfficialFan{
			ID:    id,
			Name:  FanName(id),
			Score: val & 0xFF,
			Count: (val >> 8) + 1,
		})
	}
	sort.Slice(fans, func(i, j int) bool { return fans[i].ID < fans[j].ID })
	return fans
}

// OfficialFans 牌谱记录的和牌番种, 不含花牌
func (g *Game) OfficialFans() ([]OfficialFan, error) {
	if _, err := g.requireWin(); err != nil {
		return nil, err
	}
	return g.officialFans(false), nil
}

// OfficialTotal 牌谱记录的总番, 未记录时 ok 为 false
func (g *Game) OfficialTotal() (total int, ok bool) {
	if g.win == nil {
		return 0, false
	}
	res := g.script.Result(g.win.Winner)
	if res == nil || res.Total == nil {
		return 0, false
	}
	return *res.Total, true
}

// OfficialBase 牌谱番种之和, 不含花牌
func (g *Game) OfficialBase() int {
	sum := 0
	for _, f := range g.officialFans(false) {
		sum += f.Score * f.Count
	}
	return sum
}

// WinAnalysis 汇总和牌者的番数、手牌与番种计数
// 花牌数以补花动作为准; 牌谱未记录总番时用番种之和加花牌数
func (g *Game) WinAnalysis() (*WinAnalysis, error) {
	win, err := g.requireWin()
	if err != nil {
		return nil, err
	}

	flowers := len(g.flowers[win.Winner])
	total, ok := g.OfficialTotal()
	base := 0
	if ok {
		base = max(total-flowers, 0)
	} else {
		base = g.OfficialBase()
		total = base + flowers
	}

	vector := make([]int, len(FanNames))
	for _, f := range g.officialFans(true) {
		if f.ID >= 0 && f.ID < len(vector) {
			vector[f.ID] = f.Count
		}
	}

	return &WinAnalysis{
		WinnerName:    g.script.PlayerName(win.Winner),
		BaseFan:       base,
		FlowerCount:   flowers,
		TotalFan:      total,
		FormattedHand: g.formattedHand(win.Winner),
		FanVector:     vector,
		WinningTile:   TileName(win.Tile),
		GameTitle:     g.script.Config.Title,
	}, nil
}

// formattedHand 展示用手牌: 按 m p s 字牌分组, 副露在后, 吃进的牌加括号
func (g *Game) formattedHand(p int) string {
	groups := map[string][]string{}
	for _, t := range g.hands[p] {
		name := TileName(t)
		switch {
		case len(name) == 2 && strings.Contains("mps", name[1:]):
			groups[name[1:]] = append(groups[name[1:]], name[:1])
		case len(name) == 2:
			groups["z"] = append(groups["z"], name[:1])
		default:
			groups["z"] = append(groups["z"], name)
		}
	}

	var parts []string
	for _, suit := range []string{"m", "p", "s", "z"} {
		nums := groups[suit]
		if len(nums) == 0 {
			continue
		}
		sort.Strings(nums)
		part := strings.Join(nums, "")
		if suit != "z" {
			part += suit
		}
		parts = append(parts, part)
	}
	for _, pk := range g.packs[p] {
		var b strings.Builder
		b.WriteByte('[')
		for i, k := range pk.Tiles {
			if i == pk.Claimed {
				b.WriteString("(" + tileIdentity[k] + ")")
			} else {
				b.WriteString(tileIdentity[k])
			}
		}
		b.WriteByte(']')
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}

// EnvFlag 场况标记: 圈风 门风 自摸 绝张 海底 抢杠
func (g *Game) EnvFlag() (string, error) {
	win, err := g.requireWin()
	if err != nil {
		return "", err
	}
	round := "E"
	if g.script.Index != nil {
		round = winds[((*g.script.Index/4)%4+4)%4]
	}

	var b strings.Builder
	b.WriteString(round)
	b.WriteString(winds[win.Winner%4])
	for _, f := range []bool{win.SelfDrawn, g.isLastCopy(), g.front > g.back, !win.SelfDrawn && g.lastKong} {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String(), nil
}

// isLastCopy 和牌张是否为绝张: 和牌前场上 (明副露与弃牌) 已见 3 张
// 和牌者自己的明副露或立牌中另有同种牌时不算
func (g *Game) isLastCopy() bool {
	win := g.win
	base := kind(win.Tile)

	exposed := 0
	for p := range g.packs {
		for _, pk := range g.packs[p] {
			if pk.concealed() {
				continue
			}
			for _, k := range pk.Tiles {
				if k == base {
					exposed++
				}
			}
		}
	}
	for _, d := range g.discards {
		for _, t := range d {
			if kind(t) == base {
				exposed++
			}
		}
	}

	for _, pk := range g.packs[win.Winner] {
		if pk.concealed() {
			continue
		}
		for _, k := range pk.Tiles {
			if k == base {
				return false
			}
		}
	}

	held := 0
	for _, t := range g.hands[win.Winner] {
		if kind(t) == base {
			held++
		}
	}
	if held != 1 {
		return false
	}

	if !win.SelfDrawn {
		// 点和时和牌张仍在打出者的弃牌中
		exposed--
	}
	return exposed == 3
}

// HandString 供国标算番的牌串: 副露, 立牌 (和牌张所在花色排最后), 字牌, 和牌张, 场况, 花牌数
func (g *Game) HandString() (string, error) {
	win, err := g.requireWin()
	if err != nil {
		return "", err
	}
	env, err := g.EnvFlag()
	if err != nil {
		return "", err
	}

	tiles := append([]int(nil), g.hands[win.Winner]...)
	sort.Ints(tiles)
	for i, t := range tiles {
		if kind(t) == kind(win.Tile) {
			tiles = append(tiles[:i], tiles[i+1:]...)
			tiles = append(tiles, win.Tile)
			break
		}
	}
	if len(tiles) > 0 {
		tiles = tiles[:len(tiles)-1]
	}

	winName := TileName(win.Tile)
	groups := map[byte][]byte{}
	var honors []string
	for _, t := range tiles {
		name := TileName(t)
		if len(name) == 2 && strings.IndexByte("mps", name[1]) >= 0 {
			groups[name[1]] = append(groups[name[1]], name[0])
		} else {
			honors = append(honors, name)
		}
	}

	order := []byte{'m', 'p', 's'}
	if len(winName) == 2 {
		suit := winName[1]
		order = append(slicesWithout(order, suit), suit)
	}

	var b strings.Builder
	for _, pk := range g.packs[win.Winner] {
		b.WriteString(packString(pk))
	}
	for _, s := range order {
		nums := groups[s]
		if len(nums) == 0 {
			continue
		}
		sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
		b.Write(nums)
		b.WriteByte(s)
	}
	sort.Strings(honors)
	for _, h := range honors {
		b.WriteString(h)
	}
	b.WriteString(winName)
	b.WriteString("|" + env)
	if n := len(g.flowers[win.Winner]); n > 0 {
		b.WriteString("|" + strconv.Itoa(n))
	}
	return b.String(), nil
}

func slicesWithout(in []byte, x byte) []byte {
	out := make([]byte, 0, len(in))
	for _, v := range in {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

// packString 副露记法: [123m,1] [EEE,2] [5555p] [5555p,3]
func packString(pk Pack) string {
	name := tileIdentity[pk.Base]
	num, suit := name, ""
	if len(name) == 2 {
		num, suit = name[:1], name[1:]
	}

	var b strings.Builder
	b.WriteByte('[')
	switch pk.Kind {
	case PackChi:
		nums := make([]string, 0, len(pk.Tiles))
		for _, k := range pk.Tiles {
			nums = append(nums, tileIdentity[k][:1])
		}
		sort.Strings(nums)
		b.WriteString(strings.Join(nums, "") + suit)
		b.WriteString("," + strconv.Itoa(pk.Offer))
	case PackPeng, PackGang:
		n := 3
		if pk.Kind == PackGang {
			n = 4
		}
		b.WriteString(strings.Repeat(num, n) + suit)
		if pk.Offer != 0 {
			b.WriteString("," + strconv.Itoa(pk.Offer))
		}
	}
	b.WriteByte(']')
	return b.String()
}
