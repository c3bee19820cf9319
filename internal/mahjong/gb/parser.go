package gb

import (
	"strconv"
	"strings"

	"sudooom.gbfan/internal/mahjong/core"
)

const maxFlowers = 8

// Parse 解析牌串
//
// 记法: 副露在前, 如 [123m,1] [555p,2] [EEEE,3] [5555p];
// 立牌为数字加花色字母 (m 万, s 条, p 筒), 字牌为 E S W N C F P (B 视同 P);
// 最后一张为和牌张; 之后可跟 |场况 (如 EE1000) 和 |花牌数。
func Parse(text string) (*core.Hand, error) {
	src := strings.ReplaceAll(strings.TrimSpace(text), "B", "P")
	sections := strings.Split(src, "|")
	if len(sections) > 3 {
		return nil, ErrUnknownChar.with("section", len(sections))
	}

	p := &parser{src: sections[0]}
	if err := p.parseBody(); err != nil {
		return nil, err
	}

	hand := &core.Hand{
		Melds:     p.melds,
		Situation: core.DefaultSituation(),
	}

	if len(sections) > 1 && sections[1] != "" {
		sit, err := parseSituation(sections[1])
		if err != nil {
			return nil, err
		}
		hand.Situation = sit
	}

	flowers := p.flowers
	if len(sections) > 2 && sections[2] != "" {
		n, err := parseFlowers(sections[2])
		if err != nil {
			return nil, err
		}
		flowers += n
	}
	if flowers > maxFlowers {
		return nil, ErrInvalidFlowers.with("flowers", flowers)
	}
	hand.Flowers = flowers

	size := len(p.tiles) + 3*len(p.melds)
	switch size {
	case 0:
		// 空串解析为空手牌, 由和牌判断拒绝
	case 13:
		hand.Tiles = p.tiles
	case 14:
		if len(p.tiles) == 0 {
			return nil, ErrInvalidSize.with("size", size)
		}
		win := p.tiles[len(p.tiles)-1]
		hand.Tiles = p.tiles[:len(p.tiles)-1]
		hand.WinTile = &win
	default:
		return nil, ErrInvalidSize.with("size", size)
	}

	counts := core.CountTiles(hand.AllTiles())
	for i, n := range counts {
		if n > 4 {
			return nil, ErrTooManyCopies.with("tile", core.TileAt(i).String())
		}
	}

	return hand, nil
}

type parser struct {
	src     string
	tiles   []core.Tile
	melds   []core.Meld
	flowers int
}

func (p *parser) parseBody() error {
	start := 0
	for start < len(p.src) {
		open := strings.IndexByte(p.src[start:], '[')
		if open < 0 {
			return p.scanSegment(start, len(p.src))
		}
		open += start
		if err := p.scanSegment(start, open); err != nil {
			return err
		}
		end := strings.IndexByte(p.src[open:], ']')
		if end < 0 {
			return ErrInvalidPack.at(open)
		}
		end += open
		meld, err := parsePack(p.src[open+1:end], open+1)
		if err != nil {
			return err
		}
		p.melds = append(p.melds, meld)
		start = end + 1
	}
	return nil
}

func (p *parser) scanSegment(from, to int) error {
	tiles, flowers, err := scanTiles(p.src[from:to], from, true)
	if err != nil {
		return err
	}
	p.tiles = append(p.tiles, tiles...)
	p.flowers += flowers
	return nil
}

// scanTiles 扫描一段不含副露的牌串, offset 用于报告位置
func scanTiles(s string, offset int, allowFlowers bool) ([]core.Tile, int, error) {
	var (
		tiles     []core.Tile
		flowers   int
		digits    []int8
		digitsPos int
	)

	flush := func(suit core.TileSuit, pos int) error {
		if len(digits) == 0 {
			return ErrUnknownChar.at(offset + pos)
		}
		for _, d := range digits {
			if d == 0 {
				return ErrInvalidNumber.at(offset + digitsPos)
			}
			if suit == core.TileSuitFlower {
				if d > maxFlowers {
					return ErrInvalidFlowers.at(offset + digitsPos)
				}
				flowers++
				continue
			}
			tiles = append(tiles, core.Tile{Suit: suit, Value: d})
		}
		digits = digits[:0]
		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if len(digits) == 0 {
				digitsPos = i
			}
			digits = append(digits, int8(c-'0'))
		case c == 'm':
			if err := flush(core.TileSuitWan, i); err != nil {
				return nil, 0, err
			}
		case c == 's':
			if err := flush(core.TileSuitTiao, i); err != nil {
				return nil, 0, err
			}
		case c == 'p':
			if err := flush(core.TileSuitTong, i); err != nil {
				return nil, 0, err
			}
		case c == 'f' && allowFlowers:
			if err := flush(core.TileSuitFlower, i); err != nil {
				return nil, 0, err
			}
		default:
			honor, ok := honorTile(c)
			if !ok {
				return nil, 0, ErrUnknownChar.with("pos", offset+i).with("char", string(c))
			}
			if len(digits) > 0 {
				return nil, 0, ErrMissingSuit.at(offset + digitsPos)
			}
			tiles = append(tiles, honor)
		}
	}

	if len(digits) > 0 {
		return nil, 0, ErrMissingSuit.at(offset + digitsPos)
	}
	return tiles, flowers, nil
}

func honorTile(c byte) (core.Tile, bool) {
	switch c {
	case 'E':
		return core.Tile{Suit: core.TileSuitWind, Value: core.WindEast}, true
	case 'S':
		return core.Tile{Suit: core.TileSuitWind, Value: core.WindSouth}, true
	case 'W':
		return core.Tile{Suit: core.TileSuitWind, Value: core.WindWest}, true
	case 'N':
		return core.Tile{Suit: core.TileSuitWind, Value: core.WindNorth}, true
	case 'C':
		return core.Tile{Suit: core.TileSuitDragon, Value: core.DragonRed}, true
	case 'F':
		return core.Tile{Suit: core.TileSuitDragon, Value: core.DragonGreen}, true
	case 'P':
		return core.Tile{Suit: core.TileSuitDragon, Value: core.DragonWhite}, true
	}
	return core.Tile{}, false
}

// parsePack 解析方括号内的副露, 如 "123m,1"、"EEEE"
func parsePack(s string, offset int) (core.Meld, error) {
	body, offerStr, hasOffer := strings.Cut(s, ",")
	tiles, _, err := scanTiles(body, offset, false)
	if err != nil {
		return core.Meld{}, err
	}

	offer := int8(-1)
	if hasOffer {
		n, convErr := strconv.Atoi(offerStr)
		if convErr != nil || n < 0 || n > 3 {
			return core.Meld{}, ErrInvalidPack.with("pos", offset).with("offer", offerStr)
		}
		offer = int8(n)
	}

	invalid := ErrInvalidPack.with("pos", offset).with("pack", s)
	switch len(tiles) {
	case 4:
		if !sameTiles(tiles) {
			return core.Meld{}, invalid
		}
		if offer < 0 {
			offer = 0
		}
		return core.Meld{Type: core.MeldTypeKong, Tile: tiles[0], Offer: offer}, nil
	case 3:
		if offer == 0 {
			return core.Meld{}, invalid
		}
		if offer < 0 {
			offer = 1
		}
		if sameTiles(tiles) {
			return core.Meld{Type: core.MeldTypePong, Tile: tiles[0], Offer: offer}, nil
		}
		sorted := core.CloneTiles(tiles)
		core.SortTiles(sorted)
		if sorted[0].IsSuited() && sorted[0].Suit == sorted[2].Suit && sorted[1].Suit == sorted[0].Suit &&
			sorted[1].Value == sorted[0].Value+1 && sorted[2].Value == sorted[1].Value+1 {
			return core.Meld{Type: core.MeldTypeChi, Tile: sorted[1], Offer: offer}, nil
		}
	}
	return core.Meld{}, invalid
}

func sameTiles(tiles []core.Tile) bool {
	for _, t := range tiles[1:] {
		if !t.Equal(tiles[0]) {
			return false
		}
	}
	return true
}

// parseSituation 解析 6 位场况: 圈风 门风 自摸 绝张 海底 杠
func parseSituation(s string) (core.Situation, error) {
	if len(s) != 6 {
		return core.Situation{}, ErrInvalidEnv.with("env", s)
	}
	round := strings.IndexByte("ESWN", s[0])
	seat := strings.IndexByte("ESWN", s[1])
	if round < 0 || seat < 0 {
		return core.Situation{}, ErrInvalidEnv.with("env", s)
	}
	flags := make([]bool, 4)
	for i := range flags {
		switch s[2+i] {
		case '0':
		case '1':
			flags[i] = true
		default:
			return core.Situation{}, ErrInvalidEnv.with("env", s)
		}
	}
	return core.Situation{
		RoundWind: int8(round + 1),
		SeatWind:  int8(seat + 1),
		SelfDrawn: flags[0],
		LastCopy:  flags[1],
		WallLast:  flags[2],
		AboutKong: flags[3],
	}, nil
}

// parseFlowers 花牌段: 纯数字为花牌数, 字母 a-h 每个记一张
func parseFlowers(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > maxFlowers {
			return 0, ErrInvalidFlowers.with("flowers", s)
		}
		return n, nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'h' {
			return 0, ErrInvalidFlowers.with("flowers", s)
		}
	}
	return len(s), nil
}

// Format 将手牌写回牌串, 解析结果与原串等价
func Format(hand *core.Hand) string {
	var b strings.Builder
	for _, m := range hand.Melds {
		b.WriteByte('[')
		writeTiles(&b, m.Tiles())
		if m.Type != core.MeldTypeKong || m.Offer != 0 {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(int(m.Offer)))
		}
		b.WriteByte(']')
	}

	tiles := core.CloneTiles(hand.Tiles)
	core.SortTiles(tiles)
	writeTiles(&b, tiles)
	if hand.WinTile != nil {
		b.WriteString(hand.WinTile.String())
	}

	sit := hand.Situation
	if sit != core.DefaultSituation() || hand.Flowers > 0 {
		b.WriteByte('|')
		b.WriteByte("ESWN"[sit.RoundWind-1])
		b.WriteByte("ESWN"[sit.SeatWind-1])
		for _, f := range []bool{sit.SelfDrawn, sit.LastCopy, sit.WallLast, sit.AboutKong} {
			if f {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	if hand.Flowers > 0 {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(hand.Flowers))
	}
	return b.String()
}

// writeTiles 相邻同花色数牌合写, 如 123m
func writeTiles(b *strings.Builder, tiles []core.Tile) {
	for i := 0; i < len(tiles); {
		j := i + 1
		if tiles[i].IsSuited() {
			for j < len(tiles) && tiles[j].Suit == tiles[i].Suit {
				j++
			}
		}
		writeTileRun(b, tiles[i:j])
		i = j
	}
}

func writeTileRun(b *strings.Builder, run []core.Tile) {
	if !run[0].IsSuited() {
		for _, t := range run {
			b.WriteString(t.String())
		}
		return
	}
	for _, t := range run {
		b.WriteByte(byte('0' + t.Value))
	}
	b.WriteByte(run[0].Suit.Letter())
}
