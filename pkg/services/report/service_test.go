package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/dispatch"
	"github.com/clocksynk/dashboard/pkg/services/metrics"
	"github.com/clocksynk/dashboard/pkg/services/recipients"
	"github.com/clocksynk/dashboard/pkg/services/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context, window domain.Window) (*metrics.Snapshot, error) {
	args := m.Called(ctx, window)
	if s := args.Get(0); s != nil {
		return s.(*metrics.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

type dispatcherFunc func(ctx context.Context, msg domain.ReportMessage) (dispatch.Result, error)

func (f dispatcherFunc) Dispatch(ctx context.Context, msg domain.ReportMessage) (dispatch.Result, error) {
	return f(ctx, msg)
}

func newTestService(t *testing.T, loader metrics.Loader, d dispatch.Dispatcher, wait time.Duration) (Service, *dispatch.Handoff) {
	t.Helper()
	html, err := render.NewHTMLRenderer()
	require.NoError(t, err)
	text, err := render.NewTextRenderer(render.DefaultTableConfig())
	require.NoError(t, err)

	handoff := dispatch.NewHandoff(d, wait, time.Second)
	svc, err := NewService(Dependencies{
		Loader:     loader,
		HTML:       html,
		Text:       text,
		Deliverer:  handoff,
		Recipients: recipients.Defaults(),
		Clock:      func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc, handoff
}

func TestService_GenerateUsesReportWindows(t *testing.T) {
	loader := new(mockLoader)
	snapshot := scenarioSnapshot()
	loader.On("Load", mock.Anything, WeeklyWindow(now)).Return(&snapshot, nil).Once()
	loader.On("Load", mock.Anything, MonthlyWindow(now)).Return(&snapshot, nil).Once()
	svc, _ := newTestService(t, loader, dispatch.NewLogDispatcher(), time.Second)

	weekly, err := svc.GenerateWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60, weekly.Metrics.TaskCompletion)

	monthly, err := svc.GenerateMonthly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "June 2024", monthly.Period)
	loader.AssertExpectations(t)
}

func TestService_SendWeekly(t *testing.T) {
	loader := new(mockLoader)
	snapshot := scenarioSnapshot()
	loader.On("Load", mock.Anything, mock.Anything).Return(&snapshot, nil)

	var got domain.ReportMessage
	svc, handoff := newTestService(t, loader, dispatcherFunc(func(_ context.Context, msg domain.ReportMessage) (dispatch.Result, error) {
		got = msg
		return dispatch.Result{Delivered: true}, nil
	}), time.Second)

	res, err := svc.SendWeekly(context.Background())
	require.NoError(t, err)
	handoff.Wait()

	assert.True(t, res.Success)
	assert.Equal(t, domain.DeliveryDelivered, res.Delivery)
	assert.Equal(t, []string{"erin@clocksynk.com", "jared@clocksynk.com", "bill@clocksynk.com"}, res.Recipients)
	assert.Equal(t, "ClockSynk Weekly Team Report - Week of 6/7/2024 - 6/14/2024", res.Subject)
	assert.Contains(t, res.HTML, "<!DOCTYPE html>")
	assert.Equal(t, res.Subject, got.Subject)
	assert.Equal(t, domain.ReportKindWeekly, got.Kind)
	assert.NotEmpty(t, got.Text)
	assert.True(t, now.Equal(got.GeneratedAt))
}

func TestService_SendMonthly_DeliveryFailureIsIsolated(t *testing.T) {
	loader := new(mockLoader)
	snapshot := scenarioSnapshot()
	loader.On("Load", mock.Anything, mock.Anything).Return(&snapshot, nil)

	svc, handoff := newTestService(t, loader, dispatcherFunc(func(context.Context, domain.ReportMessage) (dispatch.Result, error) {
		return dispatch.Result{}, errors.New("mailbox full")
	}), time.Second)

	res, err := svc.SendMonthly(context.Background())
	require.NoError(t, err)
	handoff.Wait()

	assert.True(t, res.Success)
	assert.Equal(t, domain.DeliveryFailed, res.Delivery)
	assert.Equal(t, []string{"erin@clocksynk.com", "board@clocksynk.com"}, res.Recipients)
	assert.Equal(t, "ClockSynk Monthly Business Report - June 2024", res.Subject)
}

func TestService_SlowDispatchIsPending(t *testing.T) {
	loader := new(mockLoader)
	snapshot := scenarioSnapshot()
	loader.On("Load", mock.Anything, mock.Anything).Return(&snapshot, nil)

	// Delivery takes six times the wait bound.
	wait := 50 * time.Millisecond
	svc, handoff := newTestService(t, loader, dispatcherFunc(func(ctx context.Context, _ domain.ReportMessage) (dispatch.Result, error) {
		select {
		case <-time.After(6 * wait):
			return dispatch.Result{Delivered: true}, nil
		case <-ctx.Done():
			return dispatch.Result{}, ctx.Err()
		}
	}), wait)

	start := time.Now()
	res, err := svc.SendWeekly(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, domain.DeliveryPending, res.Delivery)
	assert.Less(t, elapsed, 5*wait)
	handoff.Wait()
}

func TestService_DataUnavailable(t *testing.T) {
	loader := new(mockLoader)
	loader.On("Load", mock.Anything, mock.Anything).
		Return(nil, &metrics.DataUnavailableError{Source: "tasks", Err: errors.New("connection refused")})

	called := false
	svc, _ := newTestService(t, loader, dispatcherFunc(func(context.Context, domain.ReportMessage) (dispatch.Result, error) {
		called = true
		return dispatch.Result{Delivered: true}, nil
	}), time.Second)

	res, err := svc.SendWeekly(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, metrics.ErrDataUnavailable)

	_, err = svc.GenerateMonthly(context.Background())
	assert.ErrorIs(t, err, metrics.ErrDataUnavailable)
	assert.False(t, called)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := NewService(Dependencies{})
	assert.Error(t, err)
}
