package stats

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"

	"sudooom.gbfan/internal/record"
	"sudooom.gbfan/internal/session"
	"sudooom.gbfan/internal/store"
)

// utf8BOM 让表格软件按 UTF-8 打开
const utf8BOM = "\ufeff"

// Links 生成小局与全庄链接
type Links interface {
	RecordURL(id string) string
	GameURL(id string) string
}

// Row 一个和牌小局的统计行
type Row struct {
	RecordID string
	Analysis *record.WinAnalysis
	Parent   session.Parent
}

// Header 表头: 基本信息, 每个番种一列, 最后是链接
func Header() []string {
	header := []string{"和牌用户", "和牌素番数（不含花）", "花的数量", "和牌番数", "手牌", "和牌张", "所属局", "小局序号"}
	header = append(header, record.FanNames...)
	return append(header, "对局链接", "所属全庄")
}

// Collect 分析本地全部牌谱, 只保留和牌的小局, 按编号排序
// 单个牌谱出错时记日志后跳过
func Collect(files *store.Files, parents map[string]session.Parent, logger *slog.Logger) ([]Row, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ids, err := files.OriginIDs()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, id := range ids {
		data, err := files.LoadOrigin(id)
		if err != nil {
			logger.Warn("Read record failed", "record_id", id, "error", err)
			continue
		}
		if len(data) == 0 {
			continue
		}
		script, err := record.Decode(data)
		if err != nil {
			logger.Warn("Decode record failed", "record_id", id, "error", err)
			continue
		}
		g, err := record.Replay(script)
		if err != nil {
			logger.Warn("Replay record failed", "record_id", id, "error", err)
			continue
		}
		if g.Win() == nil {
			continue
		}
		analysis, err := g.WinAnalysis()
		if err != nil {
			logger.Warn("Analyze record failed", "record_id", id, "error", err)
			continue
		}
		rows = append(rows, Row{RecordID: id, Analysis: analysis, Parent: parents[id]})
	}
	return rows, nil
}

// WriteCSV 写出带 BOM 的 CSV
func WriteCSV(w io.Writer, rows []Row, links Links) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record(links)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Row) record(links Links) []string {
	a := r.Analysis
	order, gameLink := "", ""
	if r.Parent.SessionID != "" {
		order = strconv.Itoa(r.Parent.OrderInSession)
		gameLink = links.GameURL(r.Parent.SessionID)
	}

	fields := []string{
		a.WinnerName,
		strconv.Itoa(a.BaseFan),
		strconv.Itoa(a.FlowerCount),
		strconv.Itoa(a.TotalFan),
		a.FormattedHand,
		a.WinningTile,
		a.GameTitle,
		order,
	}
	for _, n := range a.FanVector {
		fields = append(fields, strconv.Itoa(n))
	}
	return append(fields, links.RecordURL(r.RecordID), gameLink)
}
