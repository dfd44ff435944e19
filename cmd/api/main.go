package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/config"
	dbpkg "github.com/semprecheioapp/semprecheioapp-sub001/internal/db"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/logger"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/routes"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/session"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg, zlog)

	sessions, err := session.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer sessions.Close()

	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	scheduler := routes.RegisterRoutes(r, db, cfg, zlog, sessions)

	if err := scheduler.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	zlog.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
