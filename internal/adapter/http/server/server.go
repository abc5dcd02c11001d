package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urbancabz/booking-system/config"
	"github.com/urbancabz/booking-system/internal/adapter/http/handler"
	"github.com/urbancabz/booking-system/internal/adapter/http/middleware"
	"github.com/urbancabz/booking-system/pkg/logger"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
)

const serviceName = "booking-system"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health  *handler.Health
	auth    *handler.Auth
	quote   *handler.Quote
	fleet   *handler.Fleet
	payment *handler.Payment
	admin   *handler.Admin
	feed    *handler.AdminFeed
}

type Services struct {
	Auth    handler.AuthService
	Quote   handler.QuoteService
	Fleet   handler.FleetService
	Payment handler.PaymentService
	Pricer  handler.BookingPricer
	Booking handler.BookingService
	Roles   middleware.AuthService
}

func New(cfg config.Config, services Services, feed *handler.AdminFeed, log logger.Logger) (*API, error) {
	if services.Roles == nil {
		return nil, errors.New("auth service is required")
	}

	routes := &handlers{
		health:  handler.NewHealth(serviceName, log),
		auth:    handler.NewAuth(services.Auth, log),
		quote:   handler.NewQuote(services.Quote, log),
		fleet:   handler.NewFleet(services.Fleet, log),
		payment: handler.NewPayment(services.Payment, services.Pricer, log),
		admin:   handler.NewAdmin(services.Booking, log),
		feed:    feed,
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.New(services.Roles, log),
		addr:   fmt.Sprintf("%s:%s", "0.0.0.0", cfg.Server.Port),
		cfg:    cfg,
		log:    log,
	}

	api.server = &http.Server{
		Addr:         api.addr,
		Handler:      api.withMiddleware(),
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
		WriteTimeout: 0, // websocket feed connections stay open
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

// withMiddleware applies middlewares to the mux.
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(
		a.m.RequestID(
			a.m.Logging(
				a.m.Metrics(serviceName)(
					a.m.Auth(a.mux),
				),
			),
		),
	)
}
