package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/glowupapps/salon-scheduler/internal/config"
	dbpkg "github.com/glowupapps/salon-scheduler/internal/db"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/routes"
	"github.com/glowupapps/salon-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()
	timezone.Init(cfg.Timezone)

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
