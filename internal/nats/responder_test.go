package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.gbfan/internal/config"
	"sudooom.gbfan/internal/fancalc"
)

func TestHandle(t *testing.T) {
	r := NewResponder(nil, fancalc.NewService(nil), ResponderConfig{}, nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"和牌", `{"hand":"19m19s19pESWNCFP1m"}`, `{"hand":"19m19s19pESWNCFP1m","total_fan":88,"base_fan":88,"flowers":0,"fan_list":[{"id":7,"name":"十三幺","normalizedName":"十三幺","score":88,"count":1}],"is_hu":true}`},
		{"未和", `{"hand":"123m456m789m123s1p"}`, `{"hand":"123m456m789m123s1p","error":"NOT_HU"}`},
		{"非法 JSON", `not json`, `{"hand":"","error":"NOT_HU"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(r.Handle(context.Background(), []byte(tt.in))))
		})
	}
}

func TestBusy(t *testing.T) {
	assert.JSONEq(t, `{"hand":"1m","error":"请求过于频繁，请稍后再试"}`, string(Busy([]byte(`{"hand":"1m"}`))))
}

// 需要运行中的 NATS, 设置 INTEGRATION_TEST=1 来运行
func TestResponderRequestReply(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("跳过集成测试，设置 INTEGRATION_TEST=1 来运行")
	}

	client, err := NewClient(config.NATSConfig{
		URL:           nats.DefaultURL,
		MaxReconnects: 1,
		ReconnectWait: time.Second,
	}, nil)
	if err != nil {
		t.Skipf("跳过集成测试: 无法连接 NATS: %v", err)
	}
	defer client.Close()

	r := NewResponder(client.Conn(), fancalc.NewService(nil), ResponderConfig{
		Subject: "gbfan.compute.test",
		Queue:   "gbfan-test",
		Workers: 2,
	}, nil)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	msg, err := client.Conn().Request("gbfan.compute.test", []byte(`{"hand":"12m456m789s234p55s3m"}`), 2*time.Second)
	require.NoError(t, err)

	res := fancalc.DecodeRequest(msg.Data)
	assert.Equal(t, "12m456m789s234p55s3m", res.Hand)
	assert.Contains(t, string(msg.Data), `"total_fan":6`)
}
