package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sudooom.gbfan/internal/batch"
	"sudooom.gbfan/internal/record"
	"sudooom.gbfan/internal/session"
	"sudooom.gbfan/internal/stats"
	"sudooom.gbfan/internal/store"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <record_id>",
		Short: "下载 (如需) 并分析单个小局",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := a.processor().Process(cmd.Context(), args[0])
			if out.Err != nil {
				return out.Err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(out.Comparison)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), out.Report)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出国标重算对照")
	return cmd
}

func newDebugCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <record_id>",
		Short: "输出本地小局的回放细节",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.processor().Load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			win := g.Win()
			if win == nil {
				fmt.Fprintln(w, "NO_WIN")
				return nil
			}

			names := make([]string, 0, len(g.Hand(win.Winner)))
			counts := map[string]int{}
			for _, t := range g.Hand(win.Winner) {
				name := record.TileName(t)
				names = append(names, name)
				counts[name]++
			}
			countsJSON, err := json.Marshal(counts)
			if err != nil {
				return err
			}
			hand, err := g.HandString()
			if err != nil {
				return err
			}
			env, err := g.EnvFlag()
			if err != nil {
				return err
			}

			fmt.Fprintln(w, "record_id", args[0])
			fmt.Fprintln(w, "dealer_idx", g.Dealer())
			fmt.Fprintln(w, "raw_tiles", strings.Join(names, ""))
			fmt.Fprintln(w, "counts", string(countsJSON))
			fmt.Fprintln(w, "len", len(names))
			fmt.Fprintln(w, "hand_string", hand)
			fmt.Fprintln(w, "env_flag", env)
			fmt.Fprintln(w, "win_tile", record.TileName(win.Tile))
			return nil
		},
	}
}

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [all_record.json]",
		Short: "批量下载并分析小局",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := allRecordFile
			if len(args) == 1 {
				path = args[0]
			}
			var ids []string
			if err := store.ReadJSON(path, &ids); err != nil {
				return fmt.Errorf("读取 %s 失败 (应为小局编号数组): %w", path, err)
			}

			runner := batch.NewRunner(a.processor(), a.cfg.Record.Workers, a.client.RecordURL)
			_, err := runner.Run(cmd.Context(), ids, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().Int("workers", 4, "并发处理数")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "统计本地全部和牌小局, 生成 CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parents := map[string]session.Parent{}
			if err := store.ReadJSON(parentMapFile, &parents); err != nil && !errors.Is(err, fs.ErrNotExist) {
				a.log.Warn("Ignore invalid parent map", "file", parentMapFile, "error", err)
				parents = map[string]session.Parent{}
			}

			rows, err := stats.Collect(a.files, parents, a.log)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := stats.WriteCSV(f, rows, a.client); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "统计完成，已生成文件 %s (%d 条和牌记录)\n", output, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", statsFile, "输出文件")
	return cmd
}
