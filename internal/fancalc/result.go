package fancalc

import (
	"bytes"
	"encoding/json"
	"strconv"

	apperrors "sudooom.gbfan/internal/errors"
	"sudooom.gbfan/internal/mahjong/core"
)

// NotHu 未和牌时 error 字段的取值
const NotHu = "NOT_HU"

// Request 算番请求
type Request struct {
	Hand string
	// Err hand 字段不是字符串时非空
	Err error
}

// DecodeRequest 解析请求
// 非法 JSON, 以及 hand 缺失或为 null、false、0 时按空牌串处理;
// hand 为其他非字符串值时记录错误, Hand 为该值的原始 JSON
func DecodeRequest(data []byte) Request {
	var body struct {
		Hand json.RawMessage `json:"hand"`
	}
	if len(data) == 0 || json.Unmarshal(data, &body) != nil {
		return Request{}
	}
	raw := bytes.TrimSpace(body.Hand)
	if len(raw) == 0 {
		return Request{}
	}

	var hand string
	if err := json.Unmarshal(raw, &hand); err == nil {
		return Request{Hand: hand}
	}
	if isFalsy(raw) {
		return Request{}
	}
	return Request{
		Hand: string(raw),
		Err:  apperrors.ErrInvalidHand.Wrapf("hand must be a string, got %s", raw),
	}
}

func isFalsy(raw []byte) bool {
	switch string(raw) {
	case "null", "false":
		return true
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f == 0
}

// FanItem fan_list 中的一项
type FanItem struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
	Score          int    `json:"score"`
	Count          int    `json:"count"`
}

// Result 算番结果
// 未和牌或出错时只有 hand 和 error 两个字段, 分数字段用指针以便 0 值照常输出
type Result struct {
	Hand     string    `json:"hand"`
	TotalFan *int      `json:"total_fan,omitempty"`
	BaseFan  *int      `json:"base_fan,omitempty"`
	Flowers  *int      `json:"flowers,omitempty"`
	FanList  []FanItem `json:"fan_list,omitempty"`
	IsHu     bool      `json:"is_hu,omitempty"`
	Error    string    `json:"error,omitempty"`

	// Internal 算番器内部故障 (含 panic), 不是输入问题, 不写入缓存
	Internal bool `json:"-"`
}

// IsNotHu 是否为未和牌结果
func (r *Result) IsNotHu() bool {
	return r.Error == NotHu
}

func newResult(hand string, fr *core.FanResult) Result {
	total, base, flowers := fr.TotalFan, fr.BaseFan, fr.Flowers
	list := make([]FanItem, 0, len(fr.Entries))
	for _, e := range fr.Entries {
		list = append(list, FanItem{
			ID:             e.ID,
			Name:           e.Name,
			NormalizedName: e.NormalizedName,
			Score:          e.Score,
			Count:          e.Count,
		})
	}
	return Result{
		Hand:     hand,
		TotalFan: &total,
		BaseFan:  &base,
		Flowers:  &flowers,
		FanList:  list,
		IsHu:     true,
	}
}

func errorResult(hand, msg string) Result {
	return Result{Hand: hand, Error: msg}
}

func internalResult(hand, msg string) Result {
	return Result{Hand: hand, Error: msg, Internal: true}
}
