// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ariebrainware/dentara-clinic/config"
	"github.com/ariebrainware/dentara-clinic/dashboard"
	"github.com/ariebrainware/dentara-clinic/docs"
	"github.com/ariebrainware/dentara-clinic/endpoint"
	"github.com/ariebrainware/dentara-clinic/identity"
	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/report"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/session"
	"github.com/ariebrainware/dentara-clinic/store"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Dentara Clinic API
// @version         1.0
// @description     Appointments, patients, tasks and live role dashboards for a dental clinic.
// @BasePath        /
// @securityDefinitions.apikey SessionToken
// @in header
// @name session-token
func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	util.SetSecurityLoggerDB(db)

	// Redis only backs the session cache, rate limits and the redis change
	// feed, so the API keeps running without it.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	}

	st, closeStore, err := store.FromConfig(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}
	defer closeStore()

	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP lookups disabled: %v", err)
	}
	defer util.CloseGeoIP()
	util.InitUserEmailCacheFromEnv()

	repos := repository.New(st)
	services := middleware.Services{
		DB:         db,
		Repos:      repos,
		Sessions:   session.NewManager(identity.NewProvider(db), repos.Users),
		Dashboards: dashboard.NewService(repos),
	}
	if cfg.S3Bucket != "" {
		client, err := config.NewS3Client(ctx)
		if err != nil {
			log.Fatalf("Error creating S3 client: %v", err)
		}
		services.Uploader = report.NewS3Uploader(client, cfg.S3Bucket)
	}

	// Set Gin mode from config
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ServicesMiddleware(services))
	router.Use(middleware.EndpointCallLogger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	endpoint.RegisterRoutes(router)

	docs.SwaggerInfo.Title = cfg.AppName
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.AppPort),
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down server: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("error starting server: %v", err)
	}
}
