// @title InBalance 问卷后端 API
// @version 1.0
// @description InBalance 激素健康筛查问卷的后端服务器。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"inbalance_quiz_backend/internal/app"
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/pkg/configwatcher"
	"inbalance_quiz_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置热更新（webhook 地址、超时等无需重启即可生效）
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ApplyConfig(c)
		}
	})

	application.Run()
}
