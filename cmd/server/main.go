package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/config"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/metrics"
	"github.com/inkpress/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 按环境变量补种超级管理员
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword, db.RoleAdmin); err != nil {
		log.Fatalf("failed to ensure super root user: %v", err)
	}

	metrics.Register()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, 30*time.Minute)
	api := handler.NewAPI(db.DB, tokens, cfg.StatsPeriodDays)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
