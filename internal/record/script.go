package record

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"strconv"

	apperrors "sudooom.gbfan/internal/errors"
)

// Origin 牌谱接口返回的原始 JSON, 只关心 script 字段
type Origin struct {
	Script string `json:"script"`
}

// Player 对局玩家
type Player struct {
	Name string `json:"n"`
}

// GameConfig 对局配置, 目前只用到标题
type GameConfig struct {
	Title string `json:"t"`
}

// PlayerResult 单个玩家的结算
// Fans 的值低 8 位为番数, 高位为次数减一
type PlayerResult struct {
	Total *int           `json:"f"`
	Fans  map[string]int `json:"t"`
}

// Script 解码后的牌谱
type Script struct {
	Wall      string            `json:"w"`
	Dice      int               `json:"d"`
	Actions   [][]int           `json:"a"`
	Players   []Player          `json:"p"`
	Config    GameConfig        `json:"g"`
	Results   []json.RawMessage `json:"y"`
	Index     *int              `json:"i"`
	StartTime int64             `json:"t"`

	raw []byte
}

// Raw 解压后的原始 JSON
func (s *Script) Raw() []byte {
	return s.raw
}

// Indented 缩进后的原始 JSON, 用于落盘
func (s *Script) Indented() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, s.raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Result 第 seat 个玩家的结算, 非对象 (如未和牌的 0) 返回 nil
func (s *Script) Result(seat int) *PlayerResult {
	if seat < 0 || seat >= len(s.Results) {
		return nil
	}
	raw := bytes.TrimSpace(s.Results[seat])
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var r PlayerResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	return &r
}

// PlayerName 玩家昵称, 缺失时为空
func (s *Script) PlayerName(seat int) string {
	if seat < 0 || seat >= len(s.Players) {
		return ""
	}
	return s.Players[seat].Name
}

// Decode 解析牌谱接口返回的 JSON
func Decode(data []byte) (*Script, error) {
	var origin Origin
	if err := json.Unmarshal(data, &origin); err != nil {
		return nil, apperrors.ErrRecordDecode.Wrap(err)
	}
	if origin.Script == "" {
		return nil, apperrors.ErrRecordDecode.Wrapf("missing script")
	}
	return DecodeScript(origin.Script)
}

// DecodeScript script 字段为 base64 编码的 zlib 压缩 JSON
func DecodeScript(s string) (*Script, error) {
	compressed, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, apperrors.ErrRecordDecode.Wrap(err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, apperrors.ErrRecordDecode.Wrap(err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, apperrors.ErrRecordDecode.Wrap(err)
	}

	script := &Script{raw: raw}
	if err := json.Unmarshal(raw, script); err != nil {
		return nil, apperrors.ErrRecordDecode.Wrap(err)
	}
	return script, nil
}

// wallTiles 牌墙为每两位一个十六进制数
func (s *Script) wallTiles() ([]int, error) {
	if len(s.Wall)%2 != 0 {
		return nil, apperrors.ErrRecordDecode.Wrapf("wall length %d", len(s.Wall))
	}
	tiles := make([]int, 0, len(s.Wall)/2)
	for i := 0; i < len(s.Wall); i += 2 {
		v, err := strconv.ParseUint(s.Wall[i:i+2], 16, 8)
		if err != nil {
			return nil, apperrors.ErrRecordDecode.Wrap(err)
		}
		tiles = append(tiles, int(v))
	}
	return tiles, nil
}
