package metrics

import (
	"context"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/finance"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const DefaultReadTimeout = 10 * time.Second

type Loader interface {
	Load(ctx context.Context, window domain.Window) (*Snapshot, error)
}

type loader struct {
	reader   dashboard.Reader
	provider finance.Provider
	timeout  time.Duration
}

// NewLoader returns a Loader that reads every collection concurrently. A nil
// provider leaves Financials zeroed.
func NewLoader(reader dashboard.Reader, provider finance.Provider, timeout time.Duration) Loader {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &loader{reader: reader, provider: provider, timeout: timeout}
}

func (l *loader) Load(ctx context.Context, window domain.Window) (*Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(l.read(gctx, "tasks", func(ctx context.Context) (err error) {
		snapshot.Tasks, err = l.reader.Tasks(ctx)
		return err
	}))
	g.Go(l.read(gctx, "time_entries", func(ctx context.Context) (err error) {
		snapshot.TimeEntries, err = l.reader.TimeEntries(ctx)
		return err
	}))
	g.Go(l.read(gctx, "client_projects", func(ctx context.Context) (err error) {
		snapshot.Projects, err = l.reader.ClientProjects(ctx)
		return err
	}))
	g.Go(l.read(gctx, "ideas", func(ctx context.Context) (err error) {
		snapshot.Ideas, err = l.reader.Ideas(ctx)
		return err
	}))
	g.Go(l.read(gctx, "activity", func(ctx context.Context) (err error) {
		snapshot.Activity, err = l.reader.RecentActivity(ctx, window.Start)
		return err
	}))
	if l.provider != nil {
		g.Go(l.read(gctx, "finance:"+l.provider.Name(), func(ctx context.Context) (err error) {
			snapshot.Financials, err = l.provider.Financials(ctx, window)
			return err
		}))
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("snapshot load failed")
		return nil, err
	}

	return &snapshot, nil
}

func (l *loader) read(ctx context.Context, source string, fn func(context.Context) error) func() error {
	return func() error {
		readCtx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()

		if err := fn(readCtx); err != nil {
			return &DataUnavailableError{Source: source, Err: err}
		}
		return nil
	}
}
