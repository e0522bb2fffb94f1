package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/rescue-academy/internship-roster-api/api/swagger"
	"github.com/rescue-academy/internship-roster-api/internal/handler"
	"github.com/rescue-academy/internship-roster-api/internal/middleware"
	"github.com/rescue-academy/internship-roster-api/internal/repository"
	"github.com/rescue-academy/internship-roster-api/internal/service"
	"github.com/rescue-academy/internship-roster-api/pkg/cache"
	"github.com/rescue-academy/internship-roster-api/pkg/config"
	"github.com/rescue-academy/internship-roster-api/pkg/database"
	"github.com/rescue-academy/internship-roster-api/pkg/export"
	"github.com/rescue-academy/internship-roster-api/pkg/logger"
	corsmiddleware "github.com/rescue-academy/internship-roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rescue-academy/internship-roster-api/pkg/middleware/requestid"
)

// @title Internship Roster API
// @version 1.0.0
// @description Roster and schedule tracker for hospital internship students
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Cache.DefaultTTL, logr, cacheRepo != nil)

	validate := validator.New()
	csvExporter := export.NewCSVExporter()
	pdfExporter := export.NewPDFExporter()

	studentRepo := repository.NewStudentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	importRepo := repository.NewRosterImportRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authService := service.NewAuthService(settingsRepo, validate, cfg.Auth.Secret, cfg.Auth.SessionTTL, logr)
	rosterService := service.NewRosterService(studentRepo, scheduleRepo, validate, cfg.Import.CohortYear, logr)
	importService := service.NewImportService(importRepo, cacheService, service.ImportConfig{CohortYear: cfg.Import.CohortYear}, logr)
	exportService := service.NewExportService(studentRepo, scheduleRepo, csvExporter, logr)
	attendanceService := service.NewAttendanceService(attendanceRepo, csvExporter, pdfExporter, validate, cfg.Import.CohortYear, logr)
	visitService := service.NewVisitService(visitRepo, cacheService, validate, cfg.Import.CohortYear, logr)
	settingsService := service.NewSettingsService(settingsRepo, validate, logr)
	statsService := service.NewStatsService(studentRepo, scheduleRepo, visitRepo, cacheService, cfg.Stats.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authService, cfg.Auth.CookieSecure)
	rosterHandler := handler.NewRosterHandler(rosterService)
	importHandler := handler.NewImportHandler(importService, metricsService)
	exportHandler := handler.NewExportHandler(exportService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	visitHandler := handler.NewVisitHandler(visitService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	statsHandler := handler.NewStatsHandler(statsService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	session := api.Group("")
	session.Use(middleware.Session(authService))

	session.GET("/auth/verify", authHandler.Verify)
	session.GET("/students", rosterHandler.List)
	session.GET("/students/:studentNumber/schedules", rosterHandler.Schedules)
	session.GET("/export/unified", exportHandler.Unified)
	session.GET("/export/legacy", exportHandler.Legacy)
	session.GET("/export/template", exportHandler.Template)
	session.GET("/attendance", attendanceHandler.List)
	session.GET("/attendance/export/csv", attendanceHandler.ExportCSV)
	session.GET("/attendance/export/pdf", attendanceHandler.ExportPDF)
	session.GET("/visits", visitHandler.List)
	session.GET("/settings", settingsHandler.List)
	session.GET("/settings/:key", settingsHandler.Get)
	session.GET("/stats", statsHandler.Summary)

	admin := session.Group("")
	admin.Use(middleware.RequireAdmin())

	admin.PUT("/auth/password", authHandler.UpdatePassword)
	admin.PUT("/schedules/:id", rosterHandler.UpdateSchedule)
	admin.POST("/schedules/:id/absence", rosterHandler.MarkAbsent)
	admin.POST("/import/unified", importHandler.Unified)
	admin.POST("/import/legacy", importHandler.Legacy)
	admin.DELETE("/roster", importHandler.DeleteAll)
	admin.POST("/attendance", attendanceHandler.Mark)
	admin.DELETE("/attendance", attendanceHandler.Remove)
	admin.POST("/visits", visitHandler.Record)
	admin.DELETE("/visits", visitHandler.Remove)
	admin.PUT("/settings/:key", settingsHandler.Upsert)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
