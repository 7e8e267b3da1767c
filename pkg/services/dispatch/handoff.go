package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultWait            = 5 * time.Second
	DefaultDeliveryTimeout = 60 * time.Second
)

// Handoff runs deliveries in the background and waits a bounded time for
// their outcome. A delivery still running when the wait expires keeps going
// under its own deadline.
type Handoff struct {
	dispatcher      Dispatcher
	wait            time.Duration
	deliveryTimeout time.Duration
	inflight        sync.WaitGroup
}

func NewHandoff(dispatcher Dispatcher, wait, deliveryTimeout time.Duration) *Handoff {
	if wait <= 0 {
		wait = DefaultWait
	}
	if deliveryTimeout <= 0 {
		deliveryTimeout = DefaultDeliveryTimeout
	}
	return &Handoff{
		dispatcher:      dispatcher,
		wait:            wait,
		deliveryTimeout: deliveryTimeout,
	}
}

type outcome struct {
	result Result
	err    error
}

func (h *Handoff) Send(ctx context.Context, msg domain.ReportMessage) domain.DeliveryStatus {
	logger := zerolog.Ctx(ctx).With().Str("subject", msg.Subject).Logger()

	deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.deliveryTimeout)
	done := make(chan outcome, 1)

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		defer cancel()

		res, err := h.dispatcher.Dispatch(deliveryCtx, msg)
		if err != nil {
			logger.Error().Err(err).Msg("report delivery failed")
		}
		done <- outcome{result: res, err: err}
	}()

	timer := time.NewTimer(h.wait)
	defer timer.Stop()

	select {
	case o := <-done:
		switch {
		case o.err != nil:
			return domain.DeliveryFailed
		case o.result.Delivered:
			return domain.DeliveryDelivered
		default:
			return domain.DeliveryPending
		}
	case <-timer.C:
		logger.Warn().Err(ErrDispatchTimeout).Dur("wait", h.wait).Msg("delivery continues in background")
		return domain.DeliveryPending
	case <-ctx.Done():
		logger.Warn().Err(ctx.Err()).Msg("caller left before delivery finished")
		return domain.DeliveryPending
	}
}

// Wait blocks until every background delivery has returned.
func (h *Handoff) Wait() {
	h.inflight.Wait()
}
