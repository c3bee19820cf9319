package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	apperrors "sudooom.gbfan/internal/errors"
	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/mahjong/gb"
	"sudooom.gbfan/pkg/response"
)

// maxBodySize 算番请求体上限
const maxBodySize = 64 << 10

// FanPattern 番种表中的一项
type FanPattern struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
	Score          int    `json:"score"`
}

// FanHandler 算番处理器
type FanHandler struct {
	svc *fancalc.Service
}

// NewFanHandler 创建算番处理器
func NewFanHandler(svc *fancalc.Service) *FanHandler {
	return &FanHandler{svc: svc}
}

// Compute 算番
// POST /api/v1/fan
// 请求体与标准输入适配器相同, 非法 JSON 按空牌串处理;
// 未和牌、牌串错误与算番器故障也返回算番结果, 用 code 区分
func (h *FanHandler) Compute(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidParams, err.Error())
		return
	}

	res := h.svc.Handle(c.Request.Context(), fancalc.DecodeRequest(data))
	switch {
	case res.Error == "":
		response.Success(c, res)
	case res.Internal:
		response.ErrorWithData(c, apperrors.ErrServerError, res)
	case res.IsNotHu():
		response.ErrorWithData(c, apperrors.ErrNotHu, res)
	default:
		response.ErrorWithData(c, apperrors.ErrInvalidHand, res)
	}
}

// Patterns 番种表
// GET /api/v1/fans
func (h *FanHandler) Patterns(c *gin.Context) {
	patterns := gb.Patterns()
	list := make([]FanPattern, 0, len(patterns))
	for _, p := range patterns {
		list = append(list, FanPattern{
			ID:             p.ID,
			Name:           p.Name,
			NormalizedName: p.NormalizedName,
			Score:          p.Score,
		})
	}
	response.Success(c, list)
}
