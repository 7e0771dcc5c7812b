package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/resale_market/internal/config"
	"github.com/Skotchmaster/resale_market/internal/es"
	"github.com/Skotchmaster/resale_market/internal/handlers"
	"github.com/Skotchmaster/resale_market/internal/logging"
	"github.com/Skotchmaster/resale_market/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/resale_market/internal/middleware/logging"
	"github.com/Skotchmaster/resale_market/internal/mykafka"
	"github.com/Skotchmaster/resale_market/internal/payment"
	"github.com/Skotchmaster/resale_market/internal/service/order"
	"github.com/Skotchmaster/resale_market/internal/service/token"
	httpserver "github.com/Skotchmaster/resale_market/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	tokens := &token.Service{Secret: []byte(configuration.JWT_SECRET)}
	guard := &auth.Guard{DB: db, Tokens: tokens}
	workflow := &order.Workflow{DB: db, AllowRebooking: configuration.ALLOW_REBOOKING}
	gateway := payment.NewStripeGateway(configuration.STRIPE_SECRET)

	deps := httpserver.Deps{
		DB:         db,
		Guard:      guard,
		Auth:       &handlers.AuthHandler{DB: db, Tokens: tokens},
		Users:      &handlers.UserHandler{DB: db, Producer: prod},
		Categories: &handlers.CategoryHandler{DB: db},
		Products:   &handlers.ProductHandler{DB: db, Producer: prod, Index: "product"},
		Adverts:    &handlers.AdvertHandler{DB: db, Workflow: workflow, Producer: prod},
		Bookings:   &handlers.BookingHandler{DB: db, Workflow: workflow, Producer: prod},
		Wishlist:   &handlers.WishlistHandler{DB: db},
		Payments:   &handlers.PaymentHandler{Gateway: gateway},
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			deps.Products.ES = esClient
			deps.Search = &handlers.SearchHandler{ES: esClient, Index: "product"}
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", configuration.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
