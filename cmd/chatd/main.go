package main

import (
	"context"
	"devchat/domain"
	"devchat/infrastructure/grpc/chatlogv1"
	"devchat/infrastructure/grpc/server"
	"devchat/infrastructure/httpapi"
	"devchat/internal"
	"devchat/observability"
	"devchat/runtime/workers"
	"devchat/services"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the chat log daemon and blocks until a termination signal.
// Every deferred teardown runs before main decides the exit code.
func run() error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. The single log instance and its service
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	chatLog := domain.NewMessageLog(
		domain.WithMaxEntries(config.MaxEntries),
		domain.WithMaxMessageLen(config.MaxMessageLen),
	)
	chatLogService := services.NewChatLogService(chatLog, metrics, log)
	defer chatLogService.Shutdown()

	// 3. gRPC server
	healthServer := health.NewServer()
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(server.SessionInterceptor(log, chatLogService)))
	chatlogv1.RegisterChatLogServer(grpcServer, server.NewChatLogServer(log, chatLogService))
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus(chatlogv1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	// 4. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewGrpcServerWorker(log, grpcServer, config.GrpcAddress(), config.ShutdownTimeout),
		workers.NewHealthMonitoringWorker(log, metrics, chatLogService, config.MetricInterval),
	)

	if config.EnableHTTP {
		router := chi.NewRouter()
		router.Use(middleware.RequestID, middleware.Recoverer)
		httpapi.NewHandler(log, chatLogService, registry).Mount(router)
		sup.Add(workers.NewHTTPServerWorker(log, router, config.HTTPAddress(), config.ShutdownTimeout))
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Chat log daemon starting",
		"grpc", config.GrpcAddress(),
		"http_enabled", config.EnableHTTP,
		"max_entries", config.MaxEntries,
		"max_message_len", config.MaxMessageLen)

	// 6. Block until every worker returned
	sup.Run(ctx)

	healthServer.Shutdown()
	log.Info("Program stopped cleanly")
	return nil
}
