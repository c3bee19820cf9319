package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sudooom.gbfan/internal/batch"
	"sudooom.gbfan/internal/config"
	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/logger"
	"sudooom.gbfan/internal/store"
	"sudooom.gbfan/internal/tziakcha"
)

// 工作目录下的中间文件
const (
	recordListsFile = "record_lists.json"
	selectedFile    = "selected.json"
	allRecordFile   = "all_record.json"
	parentMapFile   = "record_parent_map.json"
	statsFile       = "win_stats_bom.csv"
)

// app 各子命令共用的依赖
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client *tziakcha.Client
	files  *store.Files
	svc    *fancalc.Service
}

func (a *app) processor() *batch.Processor {
	return batch.NewProcessor(a.client, a.files, a.svc, a.log)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:          "gbrecord",
		Short:        "下载并分析雀渣牌谱, 与国标算番结果对照",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := map[string]*pflag.Flag{}
			for key, name := range map[string]string{
				"record.data_dir":      "data-dir",
				"record.base_url":      "base-url",
				"record.workers":       "workers",
				"record.keyword":       "keyword",
				"record.history_pages": "pages",
				"logging.level":        "log-level",
			} {
				if f := cmd.Flags().Lookup(name); f != nil {
					flags[key] = f
				}
			}

			cfg, err := config.LoadWithFlags(configPath, flags)
			if err != nil {
				return err
			}
			a.cfg = cfg
			// 报告写标准输出, 日志写标准错误
			a.log = logger.Setup(os.Stderr, config.LoggingConfig{Level: cfg.Logging.Level, Format: "text"})
			a.client = tziakcha.NewClient(cfg.Record.BaseURL, cfg.Record.Timeout,
				tziakcha.WithCookie(cfg.Record.Cookie),
				tziakcha.WithLogger(a.log))
			a.files = store.NewFiles(cfg.Record.DataDir)
			a.svc = fancalc.NewService(nil, fancalc.WithLogger(a.log))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "配置文件路径 (yaml)")
	pf.String("data-dir", "data", "牌谱数据目录")
	pf.String("base-url", "https://tziakcha.net", "牌谱站点地址")
	pf.String("log-level", "info", "日志级别")

	root.AddCommand(
		newAnalyzeCmd(a),
		newDebugCmd(a),
		newBatchCmd(a),
		newStatsCmd(a),
		newHistoryCmd(a),
		newSelectCmd(a),
		newSessionsCmd(a),
	)
	return root
}
