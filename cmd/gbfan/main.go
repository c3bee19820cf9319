package main

import (
	"context"
	"os"

	"sudooom.gbfan/internal/config"
	"sudooom.gbfan/internal/fancalc"
	"sudooom.gbfan/internal/logger"
)

// gbfan 从标准输入读取 {"hand": "..."}, 向标准输出写出一个 JSON 结果
// 错误一律写在结果中, 退出码始终为 0
func main() {
	cfg, err := config.Load("")
	if err != nil {
		cfg = &config.Config{}
	}
	// 日志只写标准错误, 标准输出只有结果
	log := logger.Setup(os.Stderr, cfg.Logging)
	if err != nil {
		log.Warn("Failed to load config, using defaults", "error", err)
	}

	svc := fancalc.NewService(nil, fancalc.WithLogger(log))
	if err := svc.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Error("Failed to write result", "error", err)
	}
}
