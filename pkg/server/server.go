package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	reporthandlers "github.com/clocksynk/dashboard/pkg/handlers/report"
	timeclockhandlers "github.com/clocksynk/dashboard/pkg/handlers/timeclock"
	clocksynkmiddleware "github.com/clocksynk/dashboard/pkg/server/middleware"
	"github.com/clocksynk/dashboard/pkg/services/render"
	"github.com/clocksynk/dashboard/pkg/services/report"
	"github.com/clocksynk/dashboard/pkg/services/timeclock"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
	onShutdown      []func(ctx context.Context)
}

type Dependencies struct {
	Reports   report.Service
	TimeClock timeclock.Service
	HTML      render.Renderer
	Text      render.Renderer
	XLSX      render.XLSXExporter
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter mounts every endpoint under /api/v1 plus /healthz.
func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	reportHandler := reporthandlers.NewHandler(deps.Reports, deps.HTML, deps.Text, deps.XLSX)
	timeHandler := timeclockhandlers.NewHandler(deps.TimeClock)

	router := chi.NewRouter()
	router.Use(clocksynkmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		reportHandler.Routes(r)
		timeHandler.Routes(r)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// OnShutdown registers fn to run after the HTTP server has drained, or after
// it failed to serve.
func (w *WebAPI) OnShutdown(fn func(ctx context.Context)) {
	w.onShutdown = append(w.onShutdown, fn)
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		// The listener never came up or died; release what the hooks hold.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()
		w.runShutdownHooks(ctx)
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		w.runShutdownHooks(ctx)

		if err != nil {
			return err
		}
	}

	return nil
}

func (w *WebAPI) runShutdownHooks(ctx context.Context) {
	for _, fn := range w.onShutdown {
		fn(ctx)
	}
}
