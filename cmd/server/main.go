package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/config"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/handler"
	"github.com/lifelog/internal/router"
	"github.com/lifelog/internal/store"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	feed := store.NewFeed()
	api := handler.NewAPI(db.DB, clock.System{}, feed)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
