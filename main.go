package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qmdx00/lifecycle"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"studio-calendar/core"
	"studio-calendar/pkg/resources"
	"studio-calendar/pkg/servers"
)

func main() {
	var err error

	name, version, env := "studio-calendar", "1.0", "local"

	// 1. Config (env-driven, with local defaults)
	setupConfig()

	// 2. Logger base
	log.Logger = log.Logger.With().Str("service", name).Str("version", version).Str("env", env).Logger()
	ctx := log.Logger.WithContext(context.Background())

	startupLogger := log.Ctx(ctx).With().Str("stage", "startup").Str("component", "main").Logger()
	shutdownLogger := log.Ctx(ctx).With().Str("stage", "shut down").Str("component", "main").Logger()

	startupLogger.Info().Msg("application starting up")
	defer shutdownLogger.Info().Msg("application stopped")

	// 3. Telemetry (traces)
	// 4. Bridge zerolog -> OTel Logs (still prints to stdout; additionally exports via OTLP to the collector)
	stopTracerFn, err := resources.CreateTracer(ctx)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg(fmt.Sprintf("unable to setup otel telemetry: %v", err))
	}
	defer func() {
		stopCtx, cancelFn := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelFn()
		_ = stopTracerFn(stopCtx)
	}()

	log.Logger = log.Logger.Hook(resources.NewZerologHook(name, version))
	ctx = log.Logger.WithContext(ctx)

	// 5. Core resources
	pool, err := resources.CreateDatabaseConnectionPool(ctx)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg(fmt.Sprintf("unable to create database connection pool: %v", err))
	}

	// 6. Wiring
	repo := core.NewRepository(pool)
	handlers := core.NewHandlers(repo)

	// 7. Daemons/servers setup

	gin.SetMode(gin.ReleaseMode)

	restHandler := gin.Default()
	restHandler.Use(resources.TracerMiddleware(name))
	restHandler.Use(resources.MeterMiddleware(name))
	restHandler.SetHTMLTemplate(core.Templates())

	restHandler.GET("/calendar", handlers.GetCalendar)
	restHandler.GET("/calendar/export.ics", handlers.GetCalendarExport)
	restHandler.GET("/api/events", handlers.GetEvents)
	restHandler.POST("/events", handlers.PostEvents)
	restHandler.POST("/events/:key/deletion", handlers.RequestDeletion)
	restHandler.DELETE("/events/:key", handlers.DeleteEvents)

	debugHandler := http.NewServeMux()
	debugHandler.HandleFunc("/debug/pprof/", pprof.Index)
	debugHandler.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	debugHandler.HandleFunc("/debug/pprof/profile", pprof.Profile)
	debugHandler.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	debugHandler.HandleFunc("/debug/pprof/trace", pprof.Trace)

	// 8. Daemons/servers lifecycle

	app := lifecycle.NewApp(
		lifecycle.WithName(name),
		lifecycle.WithVersion(version),
	)

	app.Attach("base-server", servers.NewBaseServer(pool))

	app.Attach("rest-server", servers.NewHttpServer("rest-server", &http.Server{
		Addr:              net.JoinHostPort(viper.GetString("HTTP_HOST"), viper.GetString("HTTP_PORT")),
		Handler:           restHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}))

	app.Attach("debug-server", servers.NewHttpServer("debug-server", &http.Server{
		Addr:              "localhost:6060",
		Handler:           debugHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}))

	startupLogger.Info().Msg("application running")

	// 9. Run until shutdown signal

	err = app.Run()
	if err != nil {
		shutdownLogger.Error().Err(err).Msg("runtime error")
	}
}

func setupConfig() {
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_HOST", "localhost")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "studio_calendar")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4317")
}
