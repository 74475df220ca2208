package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/clarsbyte/onshape-mcp/feature"
	"github.com/clarsbyte/onshape-mcp/onshape"
	cadotel "github.com/clarsbyte/onshape-mcp/otel"
	"github.com/clarsbyte/onshape-mcp/server"
)

// Version is stamped via ldflags at release build time.
var Version = "dev"

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE:  runServe,
	}

	cmd.Flags().String("config", "", "Path to onshape-mcp.yaml config")
	cmd.Flags().String("transport", "", "MCP transport: stdio | sse | http")
	cmd.Flags().String("host", "", "Listen host for the sse and http transports")
	cmd.Flags().IntP("port", "p", 0, "Listen port for the sse and http transports")
	cmd.Flags().Bool("otel", false, "Export traces and metrics over OTLP")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Credentials and enterprise endpoints commonly live in a local .env.
	_ = godotenv.Load()

	explicitConfigPath, _ := cmd.Flags().GetString("config")
	cfg, err := server.LoadConfig(explicitConfigPath)
	if err != nil {
		return exitError(exitConfig, "loading config: %v", err)
	}
	if cmd.Flags().Changed("transport") {
		raw, _ := cmd.Flags().GetString("transport")
		transport, err := server.ParseTransport(raw)
		if err != nil {
			return exitError(exitValidation, "%v", err)
		}
		cfg.Transport = transport
	}
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	level, err := server.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return exitError(exitConfig, "%v", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	// Stdout belongs to the stdio transport; logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	creds, err := onshape.CredentialsFromEnv()
	if err != nil {
		return exitError(exitCredentials, "%v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if enabled, _ := cmd.Flags().GetBool("otel"); enabled {
		shutdown, err := cadotel.Setup(ctx, "onshape-mcp", Version)
		if err != nil {
			return exitError(exitRuntime, "initializing telemetry: %v", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Warn("telemetry shutdown", "error", err)
			}
		}()
	}

	requestObserver, err := cadotel.NewRequestObserver(
		otelapi.GetMeterProvider().Meter("onshape-mcp/api"),
		otelapi.GetTracerProvider().Tracer("onshape-mcp/api"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing request observability: %v", err)
	}
	onshape.SetObserver(requestObserver)
	defer onshape.SetObserver(nil)

	chainObserver, err := cadotel.NewChainObserver(
		otelapi.GetMeterProvider().Meter("onshape-mcp/chain"),
		otelapi.GetTracerProvider().Tracer("onshape-mcp/chain"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing chain observability: %v", err)
	}
	feature.SetObserver(chainObserver)
	defer feature.SetObserver(nil)

	client := onshape.NewClient(creds, onshape.ClientConfig{
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})
	srv := server.New(client, Version, logger)

	if err := srv.Run(ctx, cfg.Transport, cfg.Host, cfg.Port); err != nil {
		return exitError(exitRuntime, "server error: %v", err)
	}
	return nil
}
