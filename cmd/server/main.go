package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sncandles/storefront/internal/cart"
	"github.com/sncandles/storefront/internal/checkout"
	"github.com/sncandles/storefront/internal/config"
	"github.com/sncandles/storefront/internal/es"
	"github.com/sncandles/storefront/internal/events"
	"github.com/sncandles/storefront/internal/handlers"
	"github.com/sncandles/storefront/internal/logging"
	loggingmw "github.com/sncandles/storefront/internal/middleware/logging"
	httpserver "github.com/sncandles/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var producer *events.Producer
	if len(configuration.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(configuration.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	}

	var esClient *elasticsearch.Client
	if configuration.ESURL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	store := cart.NewStore()
	jwtSecret := []byte(configuration.JWTSecret)

	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, Producer: producer}
	deps := httpserver.Deps{
		AuthHandler:    authHandler,
		CartHandler:    &handlers.CartHandler{Store: store, Checkout: checkout.NewService(store), Producer: producer},
		ContactHandler: &handlers.ContactHandler{DB: db, Producer: producer},
		ProductHandler: &handlers.ProductHandler{DB: db, Producer: producer, ES: esClient, ESIndex: configuration.ESIndex},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: configuration.ESIndex, DB: db},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
