package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/teslo-shop/storefront/config"
	"github.com/teslo-shop/storefront/internal/adapter"
	"github.com/teslo-shop/storefront/internal/adapter/cookies"
	"github.com/teslo-shop/storefront/internal/adapter/httphandler"
	"github.com/teslo-shop/storefront/internal/adapter/kafka"
	"github.com/teslo-shop/storefront/internal/adapter/orderapi"
	"github.com/teslo-shop/storefront/internal/adapter/storage"
	"github.com/teslo-shop/storefront/internal/core/port"
	"github.com/teslo-shop/storefront/internal/core/service"
	"github.com/teslo-shop/storefront/pkg/retry"
	"github.com/teslo-shop/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx            context.Context
	cfg            config.Config
	sqldb          storage.SQLDB
	catalog        service.Catalog
	ui             *service.UIState
	gateway        orderapi.OrderGateway
	eventsProducer port.CartEventsProducer
	closeEvents    func()
	httpServer     httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initCoreServices()
	app.initOrderGateway()
	app.initCartEvents()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	retryCfg := retry.RetryConfig{MaxAttempts: 5}
	sqldb, err := retry.DoWithResult(app.ctx, retryCfg,
		func() (storage.SQLDB, error) {
			return storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
		})
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initCoreServices() {
	repository := storage.NewProductsRepository(app.sqldb)
	app.catalog = service.NewCatalog(repository, app.cfg.HostName)
	app.ui = service.NewUIState()
}

func (app *App) initOrderGateway() {
	app.gateway = orderapi.NewOrderGateway(app.cfg.OrdersAPIAddr)
}

func (app *App) initCartEvents() {
	const op = "App.initCartEvents"

	broker := app.cfg.Broker
	if len(broker.SeedBrokers) == 0 {
		slog.Info("cart events are disabled: no seed brokers configured")
		return
	}

	srClient, err := sr.NewClient(sr.URLs(broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	eventsSerde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(broker.CartEventsTopic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	var tlsConfig *tls.Config
	if broker.TLS.Enabled() {
		tlsConfig = adapter.MakeTLSConfig(
			broker.TLS.CA, broker.TLS.Cert, broker.TLS.Key,
		)
	}

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx, broker.SeedBrokers, broker.CartEventsTopic, tlsConfig,
		),
		kafka.ProducerEncoderOpt(eventsSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsProducer = producer
	app.closeEvents = producer.Close
}

func (app *App) initHTTPServer() {
	mirror := func(w http.ResponseWriter, r *http.Request) port.CartMirror {
		return cookies.NewMirror(w, r)
	}

	mux := http.NewServeMux()
	httphandler.RegisterCart(
		mux, mirror, app.cfg.TaxRate, app.eventsProducer, app.gateway,
	)
	httphandler.RegisterCatalog(mux, app.catalog)
	httphandler.RegisterUI(mux, app.ui)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.closeEvents != nil {
		app.closeEvents()
	}
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
