package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/petsit-scheduler/internal/audit"
	"github.com/BruksfildServices01/petsit-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/petsit-scheduler/internal/db"
	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/handlers"
	"github.com/BruksfildServices01/petsit-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/petsit-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/petsit-scheduler/internal/mq"
	"github.com/BruksfildServices01/petsit-scheduler/internal/platform/logger"
	"github.com/BruksfildServices01/petsit-scheduler/internal/platform/obs"
	"github.com/BruksfildServices01/petsit-scheduler/internal/realtime"
	"github.com/BruksfildServices01/petsit-scheduler/internal/routes"
	"github.com/BruksfildServices01/petsit-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/petsit-scheduler/internal/usecase/booking"
)

func main() {
	// .env is optional, real env wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	slog.SetDefault(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Env)
	if err != nil {
		log.Fatalf("tracer: %v", err)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	var locker lock.Locker = lock.NewMemory()
	if cfg.RedisURL != "" {
		rl, err := lock.NewRedisFromURL(ctx, cfg.RedisURL, "petsit:lock:", cfg.LockTTL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rl.Close()
		locker = rl
	}

	var publisher audit.JSONPublisher = mq.Noop{}
	if cfg.AMQPURL != "" {
		p, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(logg, auditLogger, audit.NewBroker(publisher))
	defer dispatcher.Close()

	loc := timezone.Location(cfg.Timezone)
	bookingRepo := infraRepo.NewBookingGormRepository(db, loc)
	reviewRepo := infraRepo.NewReviewGormRepository(db)

	sessions := ucBooking.NewRegistry(func(actor domain.Actor) *ucBooking.Controller {
		return ucBooking.NewController(actor, bookingRepo, reviewRepo, locker, dispatcher, logg)
	}, cfg.SessionIdleTTL)
	go sessions.Run(ctx, time.Minute)

	hub := realtime.NewHub(logg)
	defer hub.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()
	routes.RegisterRoutes(r, cfg, routes.Deps{
		Bookings: handlers.NewBookingHandler(sessions, loc),
		History:  auditLogger,
		Hub:      hub,
		Log:      logg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("server running", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown", slog.Any("error", err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logg.Error("tracer shutdown", slog.Any("error", err))
	}
}
