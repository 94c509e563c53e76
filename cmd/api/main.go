package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/portfolio-labs/advisory-scheduler/internal/config"
	dbpkg "github.com/portfolio-labs/advisory-scheduler/internal/db"
	"github.com/portfolio-labs/advisory-scheduler/internal/middleware"
	"github.com/portfolio-labs/advisory-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, availability cache disabled: %v", err)
			rdb = nil
		}
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reminders := routes.RegisterRoutes(r, db, rdb, cfg)
	go reminders.Start(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
