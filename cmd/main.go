package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"manufacturer/auth"
	"manufacturer/config"
	"manufacturer/database"
	"manufacturer/routes"
	"manufacturer/services"
	"manufacturer/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
	}()
	slog.Info("connected to MongoDB", "database", cfg.DBName)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	users := services.NewUserService(store.NewMongoUserStore(db.Collection("users")), tokens)
	orders := services.NewOrderService(
		store.NewMongoOrderStore(db.Collection("orders")),
		store.NewMongoPaymentStore(db.Collection("payments")),
	)
	payments := services.NewPaymentService(services.NewStripeGateway(cfg.StripeSecretKey))
	products := store.NewMongoProductStore(db.Collection("products"))

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.Register(r, routes.Deps{
		Tokens:   tokens,
		Users:    users,
		Orders:   orders,
		Payments: payments,
		Products: products,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
