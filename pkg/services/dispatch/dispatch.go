package dispatch

import (
	"context"
	"errors"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

var ErrDispatchTimeout = errors.New("dispatch timed out")

type Result struct {
	Delivered bool
}

// Dispatcher hands a rendered report to a delivery channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg domain.ReportMessage) (Result, error)
}

type logDispatcher struct{}

// NewLogDispatcher returns a Dispatcher that only logs the message. It is the
// default when no delivery channel is configured.
func NewLogDispatcher() Dispatcher {
	return logDispatcher{}
}

func (logDispatcher) Dispatch(ctx context.Context, msg domain.ReportMessage) (Result, error) {
	zerolog.Ctx(ctx).Info().
		Str("kind", string(msg.Kind)).
		Str("subject", msg.Subject).
		Strs("recipients", msg.Recipients).
		Int("html_bytes", len(msg.HTML)).
		Msg("report ready for delivery")
	return Result{Delivered: true}, nil
}

type fanout struct {
	dispatchers []Dispatcher
}

// NewFanout dispatches to every channel concurrently. The message counts as
// delivered only when every channel delivers it.
func NewFanout(dispatchers ...Dispatcher) Dispatcher {
	return &fanout{dispatchers: dispatchers}
}

func (f *fanout) Dispatch(ctx context.Context, msg domain.ReportMessage) (Result, error) {
	results := make([]Result, len(f.dispatchers))

	var g multierror.Group
	for i, d := range f.dispatchers {
		i, d := i, d
		g.Go(func() error {
			res, err := d.Dispatch(ctx, msg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait().ErrorOrNil(); err != nil {
		return Result{}, err
	}

	for _, res := range results {
		if !res.Delivered {
			return Result{}, nil
		}
	}
	return Result{Delivered: true}, nil
}
