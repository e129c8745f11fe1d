package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Maeva109/FTHEARTIZONE/internal/backend"
	"github.com/Maeva109/FTHEARTIZONE/internal/cart"
	"github.com/Maeva109/FTHEARTIZONE/internal/checkout"
	"github.com/Maeva109/FTHEARTIZONE/internal/checkout/repository"
	"github.com/Maeva109/FTHEARTIZONE/internal/favorites"
	storefronthttp "github.com/Maeva109/FTHEARTIZONE/internal/http"
	"github.com/Maeva109/FTHEARTIZONE/internal/notify"
	"github.com/Maeva109/FTHEARTIZONE/internal/payment"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	RedisAddr       string
	RedisPassword   string
	SQLitePath      string
	MigrationsPath  string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ProcessingDelay time.Duration
	RedirectDelay   time.Duration
	ChargeRetention time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8000"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "./storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/checkout/repository/migrations"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		ProcessingDelay: 2 * time.Second,
		RedirectDelay:   4 * time.Second,
		ChargeRetention: 15 * time.Minute,
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Checkout session store
	repo, err := repository.NewRepository(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open checkout session store: %v", err)
	}
	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Checkout session store ready at %s", cfg.SQLitePath)

	// Redis for cart cache and favorites
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Remote marketplace API
	backendClient := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	log.Printf("Using marketplace backend at %s", cfg.BackendURL)

	cartStore := cart.NewStore(backendClient, cart.NewRedisCache(redisClient))
	checkoutService := checkout.NewService(repo, cartStore)

	var notifier notify.Notifier = notify.NopNotifier{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier := notify.NewKafkaNotifier(cfg.KafkaBrokers...)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		log.Printf("Publishing order confirmations to %v", cfg.KafkaBrokers)
	}

	simulator := payment.NewSimulator(
		checkoutService,
		cartStore,
		notifier,
		payment.AlwaysApprove{},
		cfg.ProcessingDelay,
		cfg.RedirectDelay,
		cfg.ChargeRetention,
	)
	defer simulator.Close()

	router := storefronthttp.NewRouter(storefronthttp.RouterConfig{
		CartStore:      cartStore,
		Checkout:       checkoutService,
		Simulator:      simulator,
		Catalog:        backendClient,
		Favorites:      favorites.NewRedisStore(redisClient),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := repo.Close(); err != nil {
		log.Printf("failed to close session store: %v", err)
	}
	log.Println("storefront stopped")
}
