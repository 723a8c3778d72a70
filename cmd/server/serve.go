package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-seat-reservation/internal/booking"
	"github.com/iliyamo/restaurant-seat-reservation/internal/config"
	"github.com/iliyamo/restaurant-seat-reservation/internal/handler"
	"github.com/iliyamo/restaurant-seat-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-seat-reservation/internal/queue"
	"github.com/iliyamo/restaurant-seat-reservation/internal/repository"
	"github.com/iliyamo/restaurant-seat-reservation/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-seat-reservation/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reservation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var (
				db        *sql.DB
				persister booking.Persister
			)
			if cfg.Storage == config.StorageMySQL {
				var err error
				db, err = openDB(ctx, cfg, cfg.AutoMigrate)
				if err != nil {
					return err
				}
				defer db.Close()
				persister = repository.NewReservationRepo(db)
			} else {
				log.Printf("storage=memory: reservations live only in this process; staff auth disabled")
				persister = booking.NewMemoryPersister()
			}

			desk := booking.NewDesk(booking.NewStore(persister))
			if err := desk.Bootstrap(ctx); err != nil {
				return fmt.Errorf("load reservations: %w", err)
			}

			var events handler.EventPublisher
			if cfg.Events.Enabled() {
				events = queue_publisher.New(cfg.Events.URL, cfg.Events.Queue)
				if cfg.Events.ConsumerEnabled {
					consumer := &queue.Consumer{URL: cfg.Events.URL, Queue: cfg.Events.Queue, LogPath: cfg.Events.LogPath}
					go func() {
						if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
							log.Printf("reservation-consumer stopped: %v", err)
						}
					}()
				}
			}

			rdb := config.NewRedisClient()
			if rdb == nil {
				log.Printf("redis unavailable: rate limiting and catalog cache disabled")
			} else {
				defer rdb.Close()
			}
			limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

			e := echo.New()
			e.HideBanner = true
			e.Use(echomw.Recover())
			e.Use(echomw.Logger())

			router.RegisterRoutes(e, db)
			router.RegisterCatalog(e, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
			router.RegisterBooking(e, handler.NewBookingHandler(desk, events), limiter, cfg.JWTSecret)
			if db != nil {
				auth := handler.NewAuthHandler(cfg, repository.NewStaffRepo(db), repository.NewTokenRepo(db))
				router.RegisterAuth(e, auth, cfg.JWTSecret, limiter)
			}

			addr := ":" + cfg.Port                                // Address string with port
			log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

			errCh := make(chan error, 1)
			go func() { errCh <- e.Start(addr) }()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
