package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/simui-api/internal/clients/reference"
	"github.com/KirkDiggler/simui-api/internal/handlers/simui/v1alpha1"
	buildorchestrator "github.com/KirkDiggler/simui-api/internal/orchestrators/builds"
	"github.com/KirkDiggler/simui-api/internal/pkg/clock"
	"github.com/KirkDiggler/simui-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/simui-api/internal/redis"
	buildrepo "github.com/KirkDiggler/simui-api/internal/repositories/builds"
	"github.com/KirkDiggler/simui-api/internal/specs"
)

var (
	serverCfg    *Config
	serverCfgErr error
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the build service. Settings come from SIMUI_* environment variables and can be overridden with flags.`,
	RunE:  runServer,
}

func init() {
	serverCfg, serverCfgErr = loadConfig()
	if serverCfgErr != nil {
		serverCfg = &Config{}
	}
	serverCfg.bindFlags(serverCmd.Flags())
}

func runServer(cmd *cobra.Command, args []string) error {
	if serverCfgErr != nil {
		return serverCfgErr
	}
	cfg := serverCfg
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.slogLevel()})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	buildService, cleanup, err := wireBuildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	buildHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		BuildService: buildService,
	})
	if err != nil {
		return fmt.Errorf("failed to create build handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := newGRPCServer()
	v1alpha1.RegisterBuildServiceServer(srv, buildHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(cfg.ShutdownTimeout):
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// wireBuildService connects redis and builds the orchestrator behind the
// handler. cleanup closes the redis client.
func wireBuildService(ctx context.Context, cfg *Config) (buildorchestrator.Service, func(), error) {
	client, err := redisclient.Open(cfg.RedisAddr, cfg.RedisMaster, &redisclient.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	repo, err := buildrepo.NewRedis(&buildrepo.Config{
		Client:      client,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("build"),
		TTL:         cfg.BuildTTL,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create build repository: %w", err)
	}

	registry, err := specs.Builtin()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load specs: %w", err)
	}

	catalog, err := reference.New(&reference.Config{
		BaseURL:     cfg.ReferenceBaseURL,
		HTTPTimeout: cfg.ReferenceTimeout,
		Redis:       client,
		RedisTTL:    cfg.ReferenceCacheTTL,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create reference catalog: %w", err)
	}

	svc, err := buildorchestrator.NewOrchestrator(&buildorchestrator.Config{
		BuildRepo:   repo,
		Registry:    registry,
		Catalog:     catalog,
		LinkBaseURL: cfg.LinkBaseURL,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create build orchestrator: %w", err)
	}

	return svc, cleanup, nil
}

func newGRPCServer() *grpc.Server {
	logger := grpc_logging.LoggerFunc(logFunc)
	recovery := grpc_recovery.WithRecoveryHandlerContext(recoverFunc)

	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recovery),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recovery),
		),
	)
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Default().Log(ctx, slog.Level(level), msg, fields...)
}

func recoverFunc(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "panic in handler", "panic", p)
	return status.Errorf(codes.Internal, "internal error")
}
