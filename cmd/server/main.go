package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Pakayi/pos-kasir/internal/config"
	"github.com/Pakayi/pos-kasir/internal/dashboard"
	"github.com/Pakayi/pos-kasir/internal/db"
	"github.com/Pakayi/pos-kasir/internal/event"
	httpapi "github.com/Pakayi/pos-kasir/internal/http"
	"github.com/Pakayi/pos-kasir/internal/repository"
	"github.com/Pakayi/pos-kasir/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	now := func() time.Time { return time.Now().In(cfg.Location) }

	repo := repository.New(pool)
	bus := event.NewBus()
	svc := service.New(repo, bus, now)
	dash := service.NewDashboard(repo, bus, dashboard.IndonesianWeekday, now)
	if err := dash.Start(ctx); err != nil {
		log.Fatalf("dashboard init error: %v", err)
	}
	defer dash.Stop()

	handler := httpapi.NewHandler(svc, dash, now)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("pos-kasir listening on %s (timezone %s)", server.Addr, cfg.Location)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("force close failed: %v", closeErr)
		}
	}
}
