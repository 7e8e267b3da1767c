package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/clocksynk/dashboard/pkg/runtime/app"
	"github.com/clocksynk/dashboard/pkg/services/config"
)

// Env carries state shared by every command: the persistent --config flag
// and the output writer.
type Env struct {
	ConfigPath string
	Output     io.Writer
}

// Session is a loaded configuration with its logger attached to Ctx.
type Session struct {
	Config *config.Config
	Logger zerolog.Logger
	Ctx    context.Context
	closer io.Closer
}

func (s *Session) Close() {
	_ = s.closer.Close()
}

func (e *Env) Session(ctx context.Context) (*Session, error) {
	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, closer := config.NewLogger(cfg.Log)
	return &Session{
		Config: cfg,
		Logger: logger,
		Ctx:    logger.WithContext(ctx),
		closer: closer,
	}, nil
}

// App loads the configuration and wires the application. The returned
// cleanup drains deliveries, closes the store and flushes the log file.
func (e *Env) App(ctx context.Context) (*app.App, *Session, func(), error) {
	session, err := e.Session(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := app.New(session.Ctx, session.Config)
	if err != nil {
		session.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	cleanup := func() {
		if err := a.Close(session.Ctx); err != nil {
			session.Logger.Error().Err(err).Msg("failed to close application")
		}
		session.Close()
	}
	return a, session, cleanup, nil
}
