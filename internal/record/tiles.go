package record

import (
	"strconv"

	"sudooom.gbfan/internal/mahjong/gb"
)

// 牌编号: 0-135 为 34 种牌各 4 张 (编号右移 2 位得牌种), 136-143 为 8 张花牌
const (
	tileCount   = 144
	flowerStart = 136
	kindCount   = 34
	suitedKinds = 27
)

var tileIdentity = [34]string{
	"1m", "2m", "3m", "4m", "5m", "6m", "7m", "8m", "9m",
	"1s", "2s", "3s", "4s", "5s", "6s", "7s", "8s", "9s",
	"1p", "2p", "3p", "4p", "5p", "6p", "7p", "8p", "9p",
	"E", "S", "W", "N", "C", "F", "B",
}

var flowerTiles = [8]string{"1f", "2f", "3f", "4f", "5f", "6f", "7f", "8f"}

var winds = [4]string{"E", "S", "W", "N"}

// TileName 牌编号的记法, 越界返回 ??
func TileName(id int) string {
	switch {
	case id >= 0 && id < flowerStart:
		return tileIdentity[id>>2]
	case id >= flowerStart && id < tileCount:
		return flowerTiles[id-flowerStart]
	}
	return "??"
}

func kind(id int) int {
	return id >> 2
}

func validTile(id int) bool {
	return id >= 0 && id < tileCount
}

// extraFanNames 牌谱中出现但不参与国标算番的番种
var extraFanNames = [...]string{"※ 天和", "※ 地和", "※ 人和Ⅰ", "※ 人和Ⅱ"}

// FanNames 牌谱番种编号对应的名称, 0 为 无, 85 之后为天地人和
var FanNames = func() []string {
	names := make([]string, 0, int(gb.FanSize)+len(extraFanNames))
	for id := gb.FanID(0); id < gb.FanSize; id++ {
		names = append(names, id.Pattern().NormalizedName)
	}
	return append(names, extraFanNames[:]...)
}()

// FanName 未知编号返回 未知番种(id)
func FanName(id int) string {
	if id >= 0 && id < len(FanNames) {
		return FanNames[id]
	}
	return "未知番种(" + strconv.Itoa(id) + ")"
}
