package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-service/config"
	"shop-service/internal/cache"
	"shop-service/internal/producer"
	"shop-service/internal/repository"
	"shop-service/internal/service"
	"shop-service/internal/storage"
	transport "shop-service/internal/transport/http"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	resolver := service.NewResolver(
		service.NewNotebookSource(repos.Notebooks),
		service.NewSmartphoneSource(repos.Smartphones),
	)

	images, err := storage.NewDiskStore(cfg.MediaDir, log)
	if err != nil {
		log.Fatal("Не удалось подготовить каталог media", zap.Error(err))
	}

	// Kafka опциональна: без брокеров события просто не публикуются
	var events service.EventBus
	if cfg.Kafka.Enabled {
		kp := producer.NewOrderEventsProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		events = kp
		log.Info("Kafka-продюсер включён", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	catalogSvc := service.NewCatalogService(repos, resolver, images, log)
	cartSvc := service.NewCartService(repos, resolver, log)
	orderSvc := service.NewOrderService(repos, events, log)
	customerSvc := service.NewCustomerService(repos)

	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	router := transport.NewRouter(transport.RouterDeps{
		Catalog:   transport.NewCatalogHandler(catalogSvc, redisClient, cacheTTL, log),
		Cart:      transport.NewCartHandler(cartSvc),
		Orders:    transport.NewOrderHandler(orderSvc),
		Customers: transport.NewCustomerHandler(customerSvc),
		Export:    transport.NewExportHandler(catalogSvc, log),
		JWTSecret: cfg.JWTSecret,
		MediaDir:  cfg.MediaDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("HTTP-сервер запускается", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP-сервер упал", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Останавливаем HTTP-сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	log.Info("HTTP-сервер остановлен")
}
