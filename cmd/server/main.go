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

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"storefront/internal/database"
	"storefront/internal/notify"
	"storefront/internal/repo"
	"storefront/internal/server"
	"storefront/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbService := database.New()
	defer dbService.Close()
	db := dbService.DB()

	catalogRepo := repo.NewCatalogRepo(db)
	orderRepo := repo.NewOrderRepo(db)

	// Confirmations are an optional capability: no brokers configured
	// means order creation simply skips the notification step.
	var dispatcher *notify.Dispatcher
	if brokers := os.Getenv("NOTIFY_KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("NOTIFY_KAFKA_TOPIC")
		if topic == "" {
			topic = "order-confirmations"
		}
		notifier, err := notify.NewKafkaNotifier(strings.Split(brokers, ","), topic)
		if err != nil {
			log.Fatalf("kafka notifier: %v", err)
		}
		defer notifier.Close()
		dispatcher = notify.NewDispatcher(notifier, 256, 5*time.Second)
		go dispatcher.Run(ctx)
	}

	orderService := service.NewOrderService(db, catalogRepo, orderRepo, dispatcher)

	cfg := server.RouterConfig{RateLimit: 30, RateWindow: time.Minute}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RateLimiter = redis.NewClient(&redis.Options{Addr: addr})
	}

	router := server.NewRouter(orderService, dbService, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
