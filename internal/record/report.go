package record

import (
	"fmt"
	"io"
	"strings"
)

var seatNames = [4]string{"东", "南", "西", "北"}

// WriteReport 输出和牌者手牌、牌谱番种和国标重算结果
func WriteReport(w io.Writer, g *Game, c *Comparison) error {
	win := g.Win()
	if win == nil {
		_, err := fmt.Fprintln(w, "[INFO] 荒庄，无法比较番数。")
		return err
	}

	analysis, err := g.WinAnalysis()
	if err != nil {
		return err
	}
	fans, err := g.OfficialFans()
	if err != nil {
		return err
	}

	seat := seatNames[win.Winner] + "家 " + analysis.WinnerName
	fmt.Fprintf(w, "%s: %s\n", seat, analysis.FormattedHand)

	flowerStr := "无花牌"
	if n := len(g.flowers[win.Winner]); n > 0 {
		names := make([]string, 0, n)
		for _, f := range g.flowers[win.Winner] {
			names = append(names, TileName(f))
		}
		flowerStr = fmt.Sprintf("花牌x%d: %s", n, strings.Join(names, " "))
	}
	fmt.Fprintf(w, "%s 和牌! 总计: %d番 (%s)\n", seat, analysis.TotalFan, flowerStr)
	for _, f := range fans {
		line := fmt.Sprintf("  %s: %d番", f.Name, f.Score)
		if f.Count > 1 {
			line += fmt.Sprintf(" x%d", f.Count)
		}
		fmt.Fprintln(w, line)
	}

	if c == nil {
		return nil
	}
	fmt.Fprintln(w, "[DEBUG] GB 重算输入:", c.HandString)
	if c.Detail.Error != "" {
		_, err := fmt.Fprintln(w, "[ERROR] GB 重算失败:", c.Detail.Error)
		return err
	}
	fmt.Fprintf(w, "官方番数: total=%s base=%d\n", optInt(c.OfficialTotal), c.OfficialBase)
	fmt.Fprintf(w, "GB重算:   total=%s base=%s diff=%s\n", optInt(c.GBTotalFan), optInt(c.GBBaseFan), optInt(c.Diff))
	if len(c.Detail.FanList) > 0 {
		fmt.Fprintln(w, "GB番种明细:")
		for _, item := range c.Detail.FanList {
			fmt.Fprintf(w, "  %s(%d) x%d\n", item.Name, item.Score, item.Count)
		}
	}
	return nil
}

func optInt(v *int) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(*v)
}
