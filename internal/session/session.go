package session

import (
	"context"
	"log/slog"
	"strings"

	"sudooom.gbfan/internal/tziakcha"
)

// Selected 按关键字选出的全庄
type Selected struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Parent 小局所属的全庄及其在全庄中的序号 (从 1 开始)
type Parent struct {
	SessionID      string `json:"session_id"`
	OrderInSession int    `json:"order_in_session"`
}

// RecordLister 列出全庄内的小局
type RecordLister interface {
	GameRecords(ctx context.Context, gameID string) ([]string, error)
}

// Select 选出标题包含 keyword 的全庄, 保持原顺序
func Select(games []tziakcha.HistoryGame, keyword string) []Selected {
	selected := make([]Selected, 0)
	for _, g := range games {
		if g.ID == "" || !strings.Contains(g.Title, keyword) {
			continue
		}
		selected = append(selected, Selected{ID: g.ID, Title: g.Title})
	}
	return selected
}

// Collect 展开全庄为小局编号, 并记录每个小局的所属全庄
// 单个全庄请求失败时记日志后跳过
func Collect(ctx context.Context, lister RecordLister, selected []Selected, logger *slog.Logger) ([]string, map[string]Parent, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ids := make([]string, 0)
	parents := make(map[string]Parent)
	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return ids, parents, err
		}
		records, err := lister.GameRecords(ctx, s.ID)
		if err != nil {
			logger.Warn("List session records failed", "session_id", s.ID, "error", err)
			continue
		}
		for i, id := range records {
			ids = append(ids, id)
			parents[id] = Parent{SessionID: s.ID, OrderInSession: i + 1}
		}
	}
	return ids, parents, nil
}
