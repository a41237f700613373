package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/foodondoor/backend/internal/config"
	"github.com/foodondoor/backend/internal/events"
	"github.com/foodondoor/backend/internal/httpserver"
	mw "github.com/foodondoor/backend/internal/middleware"
	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/otp"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/search"
	"github.com/foodondoor/backend/internal/service"
	"github.com/foodondoor/backend/internal/storage"
	"github.com/foodondoor/backend/pkg/db"
	"github.com/foodondoor/backend/pkg/geo"
	"github.com/foodondoor/backend/pkg/logging"
	"github.com/foodondoor/backend/pkg/push"
	"github.com/foodondoor/backend/pkg/tokens"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(models.AllModels()...); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}

	cancel()

	otpStore, err := otp.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search disabled", "error", err)
			esClient = nil
		}
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	defer producer.Close()

	repository := &repo.GormRepo{DB: gdb}
	issuer := &tokens.Issuer{Secret: cfg.JWTSecret}
	geocoder := geo.NewNominatim(cfg.NominatimURL)
	sender := push.NewFCM(cfg.FCMEndpoint, cfg.FCMServerKey)
	disk := storage.NewDisk(cfg.MediaDir)

	authSvc := &service.AuthService{
		Repo:   repository,
		OTP:    &otp.Manager{Store: otpStore},
		Tokens: issuer,
	}
	profileSvc := &service.ProfileService{Repo: repository, Disk: disk, ES: esClient}
	catalogSvc := &service.CatalogService{Repo: repository, ES: esClient}
	cartSvc := &service.CartService{Repo: repository}
	orderSvc := &service.OrderService{
		Repo:     repository,
		Geocoder: geocoder,
		Events:   producer,
		Push:     sender,
	}
	addressSvc := &service.AddressService{Repo: repository}
	deliverySvc := &service.DeliveryService{Repo: repository}
	discoverySvc := &service.DiscoveryService{Repo: repository, Geocoder: geocoder, ES: esClient}
	marketingSvc := &service.MarketingService{Repo: repository}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(mw.Common()...)
	e.Use(mw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc, Profile: profileSvc},
		Vendor: &httpserver.VendorHTTP{
			Catalog:   catalogSvc,
			Profile:   profileSvc,
			Orders:    orderSvc,
			Marketing: marketingSvc,
		},
		Customer: &httpserver.CustomerHTTP{
			Profile:   profileSvc,
			Cart:      cartSvc,
			Orders:    orderSvc,
			Addresses: addressSvc,
			Discovery: discoverySvc,
			Catalog:   catalogSvc,
			Marketing: marketingSvc,
		},
		Delivery: &httpserver.DeliveryHTTP{Svc: deliverySvc, Orders: orderSvc},
		Issuer:   issuer,
		MediaDir: cfg.MediaDir,
	})

	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr)
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server stopped")
}
