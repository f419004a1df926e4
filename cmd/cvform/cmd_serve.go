package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cvform/components/cvpanel"
	"github.com/goliatone/go-cvform/internal/config"
	"github.com/goliatone/go-cvform/pkg/session"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr     string
	serveBasePath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the CV builder page over HTTP",
	Long: `Starts an HTTP server hosting the CV builder: an aside with one form per
section and a preview of the submitted CV. State lives in memory for the
lifetime of the process.`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	flags.StringVar(&serveBasePath, "base-path", "", "mount the builder under this path")
}

func runServe(cmd *cobra.Command, args []string) error {
	local := cfg
	if cmd.Flags().Changed("addr") {
		local.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("base-path") {
		local.Server.BasePath = serveBasePath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state, err := buildState(ctx, local, logger)
	if err != nil {
		return err
	}
	handler, err := newServerHandler(state, local, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              local.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cv builder listening", zap.String("addr", server.Addr), zap.String("base_path", local.Server.BasePath))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("cv builder stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newServerHandler builds the chi router with the builder mounted at the
// configured base path and a /healthz probe at the root.
func newServerHandler(state *session.State, cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	themeCfg, err := buildTheme(cfg)
	if err != nil {
		return nil, err
	}
	renderer, err := buildRenderer(config.Config{
		Render: config.RenderConfig{
			Renderer:     "vanilla",
			Title:        cfg.Render.Title,
			TemplatesDir: cfg.Render.TemplatesDir,
			Stylesheets:  cfg.Render.Stylesheets,
		},
	}, false)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	_, err = cvpanel.RegisterRoutes(r, cfg.Server.BasePath, state,
		cvpanel.WithRenderer(renderer),
		cvpanel.WithTheme(themeCfg),
		cvpanel.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
