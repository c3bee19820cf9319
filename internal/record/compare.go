package record

import (
	"context"

	"sudooom.gbfan/internal/fancalc"
)

// Comparison 牌谱番数与国标重算的对照
type Comparison struct {
	HandString    string         `json:"hand_string"`
	EnvFlag       string         `json:"env_flag"`
	GBTotalFan    *int           `json:"gb_total_fan"`
	GBBaseFan     *int           `json:"gb_base_fan"`
	OfficialTotal *int           `json:"official_total_fan"`
	OfficialBase  int            `json:"official_base_fan"`
	Diff          *int           `json:"diff"`
	Detail        fancalc.Result `json:"detail"`
}

// Compare 用国标算番器重算和牌者的番数
func (g *Game) Compare(ctx context.Context, svc *fancalc.Service) (*Comparison, error) {
	hand, err := g.HandString()
	if err != nil {
		return nil, err
	}
	env, err := g.EnvFlag()
	if err != nil {
		return nil, err
	}

	detail := svc.Compute(ctx, hand)
	c := &Comparison{
		HandString:   hand,
		EnvFlag:      env,
		GBTotalFan:   detail.TotalFan,
		GBBaseFan:    detail.BaseFan,
		OfficialBase: g.OfficialBase(),
		Detail:       detail,
	}
	if total, ok := g.OfficialTotal(); ok {
		c.OfficialTotal = &total
		if c.GBTotalFan != nil {
			diff := *c.GBTotalFan - total
			c.Diff = &diff
		}
	}
	return c, nil
}
