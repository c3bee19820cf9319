package fancalc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sudooom.gbfan/internal/errors"
	"sudooom.gbfan/internal/mahjong/core"
)

func TestComputeWinningHand(t *testing.T) {
	s := NewService(nil)
	res := s.Compute(context.Background(), "12m456m789s234p55s3m")

	require.Empty(t, res.Error)
	assert.True(t, res.IsHu)
	require.NotNil(t, res.TotalFan)
	assert.Equal(t, 6, *res.TotalFan)
	assert.Equal(t, 6, *res.BaseFan)
	assert.Equal(t, 0, *res.Flowers)

	ids := make([]int, 0, len(res.FanList))
	sum := 0
	for _, f := range res.FanList {
		ids = append(ids, f.ID)
		sum += f.Score * f.Count
	}
	assert.Equal(t, []int{64, 65, 73, 79}, ids)
	assert.Equal(t, *res.TotalFan, sum)

	edge := res.FanList[3]
	assert.Equal(t, "边张", edge.Name)
	assert.Equal(t, "独听・边张", edge.NormalizedName)
}

func TestComputeFlowers(t *testing.T) {
	s := NewService(nil)
	res := s.Compute(context.Background(), "1133m2255s4466p77p|EE0000|3")

	require.True(t, res.IsHu)
	assert.Equal(t, 28, *res.TotalFan)
	assert.Equal(t, 25, *res.BaseFan)
	assert.Equal(t, 3, *res.Flowers)

	last := res.FanList[len(res.FanList)-1]
	assert.Equal(t, "花牌", last.Name)
	assert.Equal(t, 3, last.Count)
}

func TestComputeWhiteDragonAlias(t *testing.T) {
	s := NewService(nil)
	res := s.Compute(context.Background(), "19m19s19pESWNCFB1m")

	require.True(t, res.IsHu)
	assert.Equal(t, "19m19s19pESWNCFB1m", res.Hand, "hand 字段保留原始输入")
	assert.Equal(t, 88, *res.TotalFan)
}

func TestComputeNotHu(t *testing.T) {
	s := NewService(nil)
	for _, hand := range []string{"123m456m789s23p55s9p", "123m456m789s23p55s", ""} {
		res := s.Compute(context.Background(), hand)
		assert.True(t, res.IsNotHu(), hand)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, &res))
		want, _ := json.Marshal(map[string]string{"hand": hand, "error": NotHu})
		assert.JSONEq(t, string(want), buf.String(), "未和牌时不应输出分数字段")
	}
}

func TestComputeParseError(t *testing.T) {
	s := NewService(nil)
	res := s.Compute(context.Background(), "123x")

	assert.NotEmpty(t, res.Error)
	assert.False(t, res.IsNotHu())
	assert.Nil(t, res.TotalFan)
	assert.Empty(t, res.FanList)
	assert.False(t, res.IsHu)
}

type panicCalculator struct{}

func (panicCalculator) Parse(string) (*core.Hand, error) {
	panic("boom")
}

func (panicCalculator) IsWinning(*core.Hand) bool {
	return false
}

func (panicCalculator) Evaluate(*core.Hand) (*core.FanResult, error) {
	return nil, nil
}

func TestComputeRecoversPanic(t *testing.T) {
	s := NewService(panicCalculator{})
	res := s.Compute(context.Background(), "1m")

	assert.Equal(t, "1m", res.Hand)
	assert.Equal(t, "boom", res.Error)
	assert.True(t, res.Internal, "panic 属于内部故障")
}

type failingCalculator struct{}

func (failingCalculator) Parse(string) (*core.Hand, error) {
	return &core.Hand{Situation: core.DefaultSituation()}, nil
}

func (failingCalculator) IsWinning(*core.Hand) bool {
	return true
}

func (failingCalculator) Evaluate(*core.Hand) (*core.FanResult, error) {
	return nil, errors.New("table corrupted")
}

func TestComputeEvaluateFailureIsInternal(t *testing.T) {
	cache := &mapCache{data: map[string]Result{}}
	s := NewService(failingCalculator{}, WithCache(cache))

	res := s.Compute(context.Background(), "1m")
	assert.True(t, res.Internal)
	assert.Equal(t, "table corrupted", res.Error)
	assert.Empty(t, cache.data, "内部故障不写入缓存")
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHand string
		wantErr  bool
	}{
		{"字符串", `{"hand":"1m"}`, "1m", false},
		{"非法 JSON", `{"hand":`, "", false},
		{"不是对象", `"1m"`, "", false},
		{"null", `{"hand":null}`, "", false},
		{"false", `{"hand":false}`, "", false},
		{"0", `{"hand":0}`, "", false},
		{"数字", `{"hand":123}`, "123", true},
		{"true", `{"hand":true}`, "true", true},
		{"数组", `{"hand":["1m"]}`, `["1m"]`, true},
		{"对象", `{"hand":{}}`, "{}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DecodeRequest([]byte(tt.input))
			assert.Equal(t, tt.wantHand, req.Hand)
			if tt.wantErr {
				assert.True(t, apperrors.Is(req.Err, apperrors.ErrInvalidHand), "hand 类型错误应报错")
			} else {
				assert.NoError(t, req.Err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"非法 JSON", "not json", `{"hand":"","error":"NOT_HU"}`},
		{"空输入", "", `{"hand":"","error":"NOT_HU"}`},
		{"缺少 hand", `{"foo":1}`, `{"hand":"","error":"NOT_HU"}`},
		{"hand 为 null", `{"hand":null}`, `{"hand":"","error":"NOT_HU"}`},
		{"hand 为数字", `{"hand":123}`, `{"hand":"123","error":"[20001] 牌串格式错误: hand must be a string, got 123"}`},
		{"未和牌", `{"hand":"123m456m789s23p55s9p"}`, `{"hand":"123m456m789s23p55s9p","error":"NOT_HU"}`},
		{"十三幺", `{"hand":"19m19s19pESWNCFP1m"}`,
			`{"hand":"19m19s19pESWNCFP1m","total_fan":88,"base_fan":88,"flowers":0,"fan_list":[{"id":7,"name":"十三幺","normalizedName":"十三幺","score":88,"count":1}],"is_hu":true}`},
	}

	s := NewService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, s.Run(context.Background(), strings.NewReader(tt.input), &out))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]Result
	hits int
}

func (c *mapCache) Get(_ context.Context, key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.data[key]
	if ok {
		c.hits++
	}
	return &r, ok
}

func (c *mapCache) Set(_ context.Context, key string, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = *r
}

func TestComputeUsesCache(t *testing.T) {
	cache := &mapCache{data: map[string]Result{}}
	s := NewService(nil, WithCache(cache))

	first := s.Compute(context.Background(), "12m456m789s234p55s3m")
	// 同一手牌的另一种写法, 规范化后命中缓存
	second := s.Compute(context.Background(), "12456m55789s234p3m")

	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, "12456m55789s234p3m", second.Hand)
	assert.Equal(t, *first.TotalFan, *second.TotalFan)
	assert.Equal(t, first.FanList, second.FanList)
}
