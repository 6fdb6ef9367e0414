package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatbot/internal/backend"
	"chatbot/internal/config"
	"chatbot/internal/fixtures"
	"chatbot/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr, prefix, fixturesDir, chatDelay, corsOrigins string
		corsEnabled                                       bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock inference backend",
		Example: "  chatbot serve\n" +
			"  chatbot serve --addr :9000 --chat-delay 750ms --cors-enabled --cors-origins http://localhost:5173",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			f := cmd.Flags()
			if f.Changed("addr") {
				cfg.Addr = addr
			}
			if f.Changed("api-prefix") {
				cfg.APIPrefix = prefix
			}
			if f.Changed("fixtures-dir") {
				cfg.FixturesDir = fixturesDir
			}
			if f.Changed("chat-delay") {
				cfg.ChatDelay = chatDelay
			}
			if f.Changed("cors-enabled") {
				cfg.CORSEnabled = corsEnabled
			}
			if f.Changed("cors-origins") {
				cfg.CORSOrigins = config.SplitCSV(corsOrigins)
			}
			h, err := newServerHandler(cfg, a.log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.Addr, h, a.log)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", config.DefaultAddr, "HTTP listen address (defaults CHATBOT_ADDR)")
	f.StringVar(&prefix, "api-prefix", config.DefaultAPIPrefix, "Mount point of the API routes")
	f.StringVar(&fixturesDir, "fixtures-dir", "", "Directory with models.json and chat_stream.json (default: built-in fixtures)")
	f.StringVar(&chatDelay, "chat-delay", "", "Artificial latency per chat, e.g. 500ms")
	f.BoolVar(&corsEnabled, "cors-enabled", false, "Enable CORS for browser clients")
	f.StringVar(&corsOrigins, "cors-origins", "*", "Comma-separated allowed origins")
	return cmd
}

// newServerHandler wires fixtures, the mock service and the HTTP layer.
func newServerHandler(cfg config.Config, log zerolog.Logger) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set, err := fixtures.LoadDir(cfg.FixturesDir)
	if err != nil {
		return nil, err
	}
	delay, _ := cfg.ChatDelayDuration()
	svcLog := log.With().Str("component", "backend").Logger()
	svc := backend.New(backend.Config{Fixtures: set, ChatDelay: delay, Logger: &svcLog})

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetAPIPrefix(cfg.APIPrefix)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetChatTimeoutSeconds(cfg.ChatTimeoutSeconds)
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	httpapi.SetCORSOptions(cfg.CORSEnabled, origins, nil, nil)
	if cfg.HTTPLogLevel != "" {
		httpapi.SetDefaultLogLevel(cfg.HTTPLogLevel)
	}
	log.Debug().Int("models", len(set.Models)).Int("chunks", len(set.Stream)).Str("fixtures", cfg.FixturesDir).Msg("fixtures loaded")
	return httpapi.NewMux(svc), nil
}

// serve runs h on addr until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	httpapi.SetBaseContext(ctx)
	defer httpapi.SetBaseContext(nil)
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("chatbot mock backend listening")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("chatbot mock backend stopped")
	return nil
}
