package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/config"
	dbpkg "github.com/prashantkoirala465/Appointment-Management-System/internal/db"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/logger"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New("appointment-api", cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("ams_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
