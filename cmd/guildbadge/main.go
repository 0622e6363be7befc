package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"guildbadge/client"
	"guildbadge/internal/assets"
	"guildbadge/internal/cache"
	"guildbadge/internal/config"
	"guildbadge/internal/infra/gateway"
	"guildbadge/internal/infra/telemetry"
	"guildbadge/internal/present/rest"
	"guildbadge/internal/usecase"
)

func main() {

	configPath := os.Getenv("GUILDBADGE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}
	dconf := conf.Domain()

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.Setup(context.Background(), conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	cl := client.New(dconf)
	store := cache.NewStore()
	pipeline := assets.NewPipeline(cl, dconf.DefaultBackgroundURL)

	directory := gateway.NewDirectoryGateway(dconf, cl, store)
	presence := gateway.NewPresenceGateway(dconf, cl, store)
	aggregator := usecase.NewAggregator(dconf, directory, presence, pipeline)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("guildbadge"))
	}

	handler := rest.NewHandler(aggregator)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}
