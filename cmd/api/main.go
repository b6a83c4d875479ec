package main

import (
	"context"
	"log"
	"time"

	"parcel-tracker/internal/core/cache"
	"parcel-tracker/internal/core/config"
	"parcel-tracker/internal/core/httpclient"
	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/core/server"
	parceladapter "parcel-tracker/internal/features/parcel/adapters"
	parcelhandler "parcel-tracker/internal/features/parcel/handler"
	"parcel-tracker/internal/features/parcel/ports"
	parcelservice "parcel-tracker/internal/features/parcel/service"

	"go.uber.org/zap"
)

// @title Parcel Tracker API
// @version 1.0
// @description Unified parcel tracking across carriers with inconsistent tracking APIs.
// @contact.name API Support
// @contact.email support@parceltracker.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Optional lookup cache; lookups go straight to the carriers without it.
	var lookupCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Failed to create Redis cache", zap.Error(err))
		}
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			cancel()
			l.Fatal("Redis unreachable", zap.Error(err))
		}
		cancel()

		lookupCache = redisCache
		l.Info("Lookup cache enabled", zap.Int("ttl_seconds", cfg.Cache.TTLSeconds))
	}

	client := httpclient.NewClient(20 * time.Second)

	proxySettings := proxy.Settings{
		Enabled:  cfg.Proxy.Enabled,
		Hostname: cfg.Proxy.Hostname,
		Port:     cfg.Proxy.Port,
		Username: cfg.Proxy.Username,
		Password: cfg.Proxy.Password,
	}

	carriers := cfg.Carriers

	// Registration order doubles as carrier-detection priority: distinctive
	// formats first, generic digit-count formats last.
	deliveryServices := []ports.DeliveryService{
		parceladapter.NewPacketaAdapter(carriers.PacketaBaseURL, carriers.PacketaAPIKey, client),
		parceladapter.NewNovaPoshtaAdapter(carriers.NovaPoshtaEndpoint, carriers.NovaPoshtaAPIKey, client),
		parceladapter.NewPocztaPolskaAdapter(carriers.PocztaPolskaBaseURL, client),
		parceladapter.NewMagyarPostaAdapter(carriers.MagyarPostaBaseURL, client),
		parceladapter.NewAnPostAdapter(carriers.AnPostBaseURL, client),
		parceladapter.NewUkrposhtaAdapter(carriers.UkrposhtaBaseURL, carriers.UkrposhtaToken, client),
		parceladapter.NewDHLAdapter(carriers.DHLBaseURL, carriers.DHLAPIKey, client),
		parceladapter.NewGLSAdapter(carriers.GLSBaseURL, carriers.GLSLocale, client),
		parceladapter.NewDPDAdapter(carriers.DPDBaseURL, client),
		parceladapter.NewEvriAdapter(carriers.EvriBaseURL, client),
		parceladapter.NewSamedayAdapter(carriers.SamedayBaseURL, client),
		parceladapter.NewPosteItalianeAdapter(carriers.PosteItalianePageURL, proxySettings),
	}

	parcelSvc, err := parcelservice.NewParcelService(deliveryServices, lookupCache, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		l.Fatal("Failed to build carrier registry", zap.Error(err))
	}
	parcelHdl := parcelhandler.NewParcelHandler(parcelSvc)

	srv := server.New(cfg)

	srv.App.Get("/parcels/:id", parcelHdl.GetParcel)
	srv.App.Get("/carriers", parcelHdl.ListCarriers)
	srv.App.Get("/carriers/detect/:id", parcelHdl.DetectCarrier)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
