package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/0nyxlabs/merchanding/cart"
	"github.com/0nyxlabs/merchanding/cart/persist"
	"github.com/0nyxlabs/merchanding/checkout/widget"
	"github.com/0nyxlabs/merchanding/client"
	"github.com/0nyxlabs/merchanding/gateway/internal/controller"
	"github.com/0nyxlabs/merchanding/gateway/internal/service"
	"github.com/0nyxlabs/merchanding/internal/config"
	"github.com/0nyxlabs/merchanding/internal/constants"
	"github.com/0nyxlabs/merchanding/internal/infra"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/middleware"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

func RunGatewayService(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppGatewayService).
		Str(log.KeyTag, "main RunGatewayService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.Get(c, constants.AppGatewayService)
	logger.Info().Msg("initialized config")

	logger = log.Get("/var/log/merchanding.log", cfg.Application).
		With().
		Str(log.KeyAppName, constants.AppGatewayService).
		Str(log.KeyTag, "main RunGatewayService").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("initialized logger")

	c, span := otel.Tracer.Start(c, "RunGatewayService")
	defer span.End()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.AppGatewayService, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		err = otel.ShutdownOtel(c, otelShutdowns)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing cart persistence").Logger()
	logger.Info().Msgf("initializing cart persistence backend=%s", cfg.Cart.Backend)
	c = logger.WithContext(c)
	var (
		db         *pgxpool.Pool
		cache      *redis.Client
		persisters service.PersisterFactory
	)
	switch cfg.Cart.Backend {
	case "postgres":
		db = infra.NewDatabaseClient(c, cfg.Database)
		persisters = func(namespace string) cart.Persister {
			return persist.NewPostgresPersister(db, namespace)
		}
	case "redis":
		cache = infra.NewCacheClient(c, cfg.Cache)
		persisters = func(namespace string) cart.Persister {
			return persist.NewRedisPersister(cache, namespace)
		}
	case "file":
		persisters = func(namespace string) cart.Persister {
			return persist.NewFilePersister(cfg.Cart.Dir, namespace)
		}
	default:
		logger.Warn().Msg("no cart persistence backend configured, carts are session-only")
	}
	defer func() {
		if db != nil {
			logger.Info().Msg("shutting down database")
			db.Close()
			logger.Info().Msg("shutdown database")
		}
		if cache != nil {
			logger.Info().Msg("shutting down cache")
			if err := cache.Close(); err != nil {
				err = fmt.Errorf("failed shutting down cache with error=%w", err)
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
			}
			logger.Info().Msg("shutdown cache")
		}
	}()
	logger.Info().Msg("initialized cart persistence")

	logger = logger.With().Str(log.KeyProcess, "initializing api client").Logger()
	logger.Info().Msg("initializing api client")
	apiClient := client.New(cfg.Api.BaseUrl)
	paymentWidget := widget.NewHosted(cfg.Payment.ConfirmUrl)
	logger.Info().Msg("initialized api client")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	cartService := service.NewCartService(persisters)
	checkoutService := service.NewCheckoutService(cartService, apiClient, paymentWidget)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.AppGatewayService),
		middleware.RecoverPanic,
		middleware.Logging,
	)
	router.Handle("/metrics", promhttp.Handler())

	authed := router.NewRoute().Subrouter()
	authed.Use(middleware.Auth(cfg.Application.SecretKey))
	controller.AttachCartController(authed, cartService)
	controller.AttachCheckoutController(authed, checkoutService)
	controller.AttachCatalogController(authed, apiClient)
	controller.AttachOrderController(authed, apiClient)
	controller.AttachDesignController(authed, apiClient)
	controller.AttachAdminController(authed, apiClient)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger = logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())

			c = logger.WithContext(c)
			if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
				err = fmt.Errorf("failed shutting down otel with error=%w", err)
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
			}
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	err = httpServer.Shutdown(c)
	if err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
