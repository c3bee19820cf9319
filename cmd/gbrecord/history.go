package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sudooom.gbfan/internal/session"
	"sudooom.gbfan/internal/store"
	"sudooom.gbfan/internal/tziakcha"
)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "拉取历史对局列表 (需要 TZI_HISTORY_COOKIE)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Record.Cookie == "" {
				return fmt.Errorf("未设置环境变量 TZI_HISTORY_COOKIE, 请先在浏览器中登录 %s/history/ 后获取 Cookie", a.cfg.Record.BaseURL)
			}
			games, err := a.client.History(cmd.Context(), a.cfg.Record.HistoryPages)
			if err != nil {
				return err
			}
			if games == nil {
				games = []tziakcha.HistoryGame{}
			}
			if err := store.WriteJSON(recordListsFile, games); err != nil {
				return err
			}

			for _, s := range session.Select(games, a.cfg.Record.Keyword) {
				if err := printJSON(cmd, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("pages", 100, "拉取的页数")
	cmd.Flags().String("keyword", "竹", "标题关键字")
	return cmd
}

func newSelectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "按标题关键字从 record_lists.json 选出全庄",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var games []tziakcha.HistoryGame
			if err := store.ReadJSON(recordListsFile, &games); err != nil {
				return fmt.Errorf("读取 %s 失败: %w", recordListsFile, err)
			}

			keyword := a.cfg.Record.Keyword
			selected := session.Select(games, keyword)
			if err := printJSON(cmd, selected); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "总共找到 %d 条包含 '%s' 的记录。\n", len(selected), keyword)
			return store.WriteJSON(selectedFile, selected)
		},
	}
	cmd.Flags().String("keyword", "竹", "标题关键字")
	return cmd
}

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "展开 selected.json 中的全庄为小局编号",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []session.Selected
			if err := store.ReadJSON(selectedFile, &selected); err != nil {
				return fmt.Errorf("读取 %s 失败: %w", selectedFile, err)
			}

			ids, parents, err := session.Collect(cmd.Context(), a.client, selected, a.log)
			if err != nil {
				return err
			}
			if err := store.WriteJSON(allRecordFile, ids); err != nil {
				return err
			}
			if err := store.WriteJSON(parentMapFile, parents); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "共 %d 个全庄, %d 个小局\n", len(selected), len(ids))
			return nil
		},
	}
}
