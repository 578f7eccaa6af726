// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetocure/patient-dashboard/internal/api"
	"github.com/meetocure/patient-dashboard/internal/config"
	"github.com/meetocure/patient-dashboard/internal/meetocure"
	"github.com/meetocure/patient-dashboard/internal/storage"
)

// initOtelProvider sets global trace and metric providers exporting over OTLP/gRPC.
func initOtelProvider(ctx context.Context, serviceName, serviceVersion, otelEndpoint string) (shutdown func(context.Context) error, err error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTel resource: %w", err)
	}

	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint %s: %w", otelEndpoint, err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	tracerProvider := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithSpanProcessor(trace.NewBatchSpanProcessor(traceExporter)),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}
	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	shutdown = func(ctx context.Context) error {
		var shutdownErr error
		if err := tracerProvider.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("tracer provider shutdown failed: %w", err))
		}
		if err := meterProvider.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("meter provider shutdown failed: %w", err))
		}
		if err := conn.Close(); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("grpc connection close failed: %w", err))
		}
		return shutdownErr
	}
	return shutdown, nil
}

// newPreferenceStore builds the configured backend. The returned close func
// releases any pool it opened.
func newPreferenceStore(ctx context.Context, cfg *config.Config) (storage.PreferenceStore, func(), error) {
	if cfg.PreferenceBackend != config.BackendPostgres {
		slog.Info("Using in-memory preference store", "ttl", cfg.PreferenceTTL)
		return storage.NewMemoryStore(cfg.PreferenceTTL), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	store := storage.NewPostgresStore(pool)
	if err := store.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("Using PostgreSQL preference store")
	return store, pool.Close, nil
}

func main() {
	logLevel := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}

	if cfg.OtelEnabled {
		otelShutdown, err := initOtelProvider(ctx, cfg.OtelServiceName, cfg.OtelServiceVersion, cfg.OtelEndpoint)
		if err != nil {
			slog.Error("Failed to initialize OTel provider (Trace/Metrics)", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				slog.Error("OTel shutdown failed", "error", err)
			} else {
				slog.Info("OTel providers shut down successfully.")
			}
		}()
	} else {
		slog.Info("OpenTelemetry disabled")
	}

	prefs, closePrefs, err := newPreferenceStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize preference store", "backend", cfg.PreferenceBackend, "error", err)
		os.Exit(1)
	}
	defer closePrefs()

	// Upstream client with OTel transport.
	instrumentedClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.HttpClientTimeout,
	}
	upstream := meetocure.NewClientWithHttpClient(cfg.UpstreamURL, instrumentedClient, cfg.PlaceholderImage)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(otelgin.Middleware(cfg.OtelServiceName))
	if cfg.AssetsDir != "" {
		router.Static("/assets", cfg.AssetsDir)
	}
	if err := api.RegisterRoutes(router, upstream, prefs, api.Options{
		DefaultCity: cfg.DefaultCity,
		RenderWait:  cfg.RenderWait,
	}); err != nil {
		slog.Error("Failed to register routes", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "address", cfg.ListenAddress, "upstream", cfg.UpstreamURL)
	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()
	slog.Info("Shutting down gracefully, press Ctrl+C again to force")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}
