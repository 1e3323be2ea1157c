package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"booking-service/src/internal/config"
	"booking-service/src/pkg/databases/mysql"
	"booking-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func main() {
	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "BOOKING_SERVICE")
	viperConfig.SetDefault("web.port", 8080)
	viperConfig.SetDefault("database.driver", "mysql")
	viperConfig.SetDefault("dispatch.auto_assign", true)
	viperConfig.SetDefault("feed.interval_seconds", 5)
	viperConfig.SetDefault("watcher.interval_seconds", 5)
	viperConfig.SetDefault("pricing.parcel_base", 5)
	viperConfig.SetDefault("pricing.parcel_per_kg", 1.5)
	viperConfig.SetDefault("pricing.point_to_point_base", 12)
	viperConfig.SetDefault("pricing.airport_transfer_base", 30)
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	config.NewKafkaConfig(viperConfig)
	producer := config.NewKafkaProducer(viperConfig, logger)

	memoryMode := viperConfig.GetString("database.driver") == "memory"
	var db mysql.DBInterface
	var redisClient redis.UniversalClient
	if !memoryMode {
		config.LoadRedisConfig(viperConfig)
		db = config.NewDatabase(viperConfig, logger)
		redisClient = config.NewRedis()
	}
	stores := config.NewStores(viperConfig, db, redisClient)

	geoservice, err := config.NewGeoService(viperConfig)
	if err != nil {
		logger.Error("main", fmt.Sprintf("Failed to init geoservice: %v", err), "main", "")
		geoservice = &config.GeoService{}
	}

	var asynqClient *asynq.Client
	var asynqServer *asynq.Server
	asynqMux := asynq.NewServeMux()
	if !memoryMode {
		asynqClient = config.NewAsynqClient(viperConfig)
		asynqServer = config.NewAsynqServer(viperConfig)
	}

	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)
	runtime := config.Bootstrap(&config.BootstrapConfig{
		Stores:      stores,
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Producer:    producer,
		Geoservice:  geoservice,
		AsynqClient: asynqClient,
		Async:       asynqMux,
	})

	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	go runtime.Watcher.Run(watcherCtx)

	if asynqServer != nil {
		go func() {
			if err := asynqServer.Run(asynqMux); err != nil {
				logger.Error("main", fmt.Sprintf("Failed to start asynq server: %v", err), "main", "")
			}
		}()
	}

	go func() {
		webPort := viperConfig.GetInt("web.port")
		if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	logger.Info("main", "Server booking-service is shutting down...", "graceful", "")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stopWatcher()
	runtime.Location.StopAll()
	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if producer != nil {
		_ = producer.Close()
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
	}

	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
}
