package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/artisanhub/marketplace-api/internal/config"
	croninternal "github.com/artisanhub/marketplace-api/internal/cron"
	dbpkg "github.com/artisanhub/marketplace-api/internal/db"
	"github.com/artisanhub/marketplace-api/internal/logging"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	"github.com/artisanhub/marketplace-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg)
	db := dbpkg.NewDB(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	dispatcher := routes.RegisterRoutes(r, db, cfg, log)

	scheduler := croninternal.NewScheduler(db, dispatcher, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start reminder scheduler")
	}

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
