package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urbancabz/booking-system/config"
	"github.com/urbancabz/booking-system/internal/adapter/http/handler"
	httpserver "github.com/urbancabz/booking-system/internal/adapter/http/server"
	"github.com/urbancabz/booking-system/internal/adapter/nominatim"
	"github.com/urbancabz/booking-system/internal/adapter/osrm"
	"github.com/urbancabz/booking-system/internal/adapter/postgres"
	rabbitproducer "github.com/urbancabz/booking-system/internal/adapter/rabbit"
	"github.com/urbancabz/booking-system/internal/adapter/razorpay"
	redisstore "github.com/urbancabz/booking-system/internal/adapter/redis"
	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/service/auth"
	"github.com/urbancabz/booking-system/internal/service/booking"
	"github.com/urbancabz/booking-system/internal/service/fare"
	"github.com/urbancabz/booking-system/internal/service/fleet"
	"github.com/urbancabz/booking-system/internal/service/geocode"
	"github.com/urbancabz/booking-system/internal/service/payment"
	"github.com/urbancabz/booking-system/internal/service/quote"
	"github.com/urbancabz/booking-system/internal/service/routing"
	"github.com/urbancabz/booking-system/pkg/cache"
	"github.com/urbancabz/booking-system/pkg/logger"
	postgresclient "github.com/urbancabz/booking-system/pkg/postgres"
	"github.com/urbancabz/booking-system/pkg/rabbit"
	"github.com/urbancabz/booking-system/pkg/trm"
	"github.com/urbancabz/booking-system/pkg/wshub"
)

const cacheStoreExpiry = 24 * time.Hour

type App struct {
	postgresDB *postgresclient.PostgreDB
	redis      *redisstore.Store
	rabbitMQ   *rabbit.RabbitMQ
	connHub    *wshub.ConnectionHub
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

// compositeNotifier fans booking events out to RabbitMQ and the admin
// websocket feed. Delivery is best-effort on both legs.
type compositeNotifier struct {
	producer *rabbitproducer.BookingProducer
	feed     *handler.AdminFeed
	log      logger.Logger
}

func (n *compositeNotifier) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	if n.feed != nil {
		if err := n.feed.Push(ctx, event); err != nil {
			n.log.Warn(ctx, "failed to push event to admin feed", "event_type", event.Type, "error", err.Error())
		}
	}
	if n.producer != nil {
		return n.producer.PublishBookingEvent(ctx, event)
	}
	return nil
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	// Persisted cache tier is optional. Without Redis the caches run on
	// the in-memory tier only.
	var store *redisstore.Store
	var cacheStore cache.Store
	if cfg.Redis.Enabled {
		store, err = redisstore.New(ctx, cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB, cacheStoreExpiry)
		if err != nil {
			log.Warn(ctx, "redis unavailable, caching in memory only", "error", err.Error())
		} else {
			cacheStore = store
		}
	}

	rabbitMQ, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		return nil, err
	}

	producer, err := rabbitproducer.NewBookingProducer(rabbitMQ)
	if err != nil {
		return nil, err
	}

	connHub := wshub.NewConnHub(log)
	feed := handler.NewAdminFeed(connHub, log)

	// repositories
	bookingRepo := postgres.NewBookingRepo(db.Pool)
	noteRepo := postgres.NewNoteRepo(db.Pool)
	fleetRepo := postgres.NewFleetRepo(db.Pool)
	userRepo := postgres.NewUserRepo(db.Pool)

	txManager := trm.New(db.Pool)

	// services
	tokenSvc := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authSvc := auth.New(userRepo, tokenSvc, log)

	geocodeSvc := geocode.New(nominatim.New(cfg.External.NominatimEndpoint), cacheStore, log)
	routingSvc := routing.New(geocodeSvc, osrm.New(cfg.External.OSRMEndpoint), cacheStore, log)

	fareCalc := fare.New()
	fleetSvc := fleet.New(fleetRepo, log)
	quoteSvc := quote.New(routingSvc, fleetSvc, fareCalc, log)

	notifier := &compositeNotifier{producer: producer, feed: feed, log: log}
	bookingSvc := booking.New(bookingRepo, noteRepo, fleetRepo, notifier, txManager, log)

	gateway := razorpay.New(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	paymentSvc := payment.New(gateway, bookingSvc, bookingRepo, cfg.Razorpay.KeySecret, log)

	server, err := httpserver.New(cfg, httpserver.Services{
		Auth:    authSvc,
		Quote:   quoteSvc,
		Fleet:   fleetSvc,
		Payment: paymentSvc,
		Pricer:  quoteSvc,
		Booking: bookingSvc,
		Roles:   authSvc,
	}, feed, log)
	if err != nil {
		return nil, err
	}

	return &App{
		postgresDB: db,
		redis:      store,
		rabbitMQ:   rabbitMQ,
		connHub:    connHub,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "booking system closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "service started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	a.connHub.Close()

	if err := a.rabbitMQ.Close(ctx); err != nil {
		a.log.Error(ctx, "failed to close RabbitMQ connection", err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error(ctx, "failed to close redis client", err)
		}
	}

	a.postgresDB.Pool.Close()
}
