package dispatch

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var message = domain.ReportMessage{
	Kind:        domain.ReportKindWeekly,
	Subject:     "ClockSynk Weekly Team Report - Week of 6/7/2024 - 6/14/2024",
	HTML:        "<html><body>report</body></html>",
	Text:        "report",
	Recipients:  []string{"erin@clocksynk.com", "jared@clocksynk.com"},
	GeneratedAt: time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC),
}

type funcDispatcher func(ctx context.Context, msg domain.ReportMessage) (Result, error)

func (f funcDispatcher) Dispatch(ctx context.Context, msg domain.ReportMessage) (Result, error) {
	return f(ctx, msg)
}

func delivered(context.Context, domain.ReportMessage) (Result, error) {
	return Result{Delivered: true}, nil
}

func TestLogDispatcher(t *testing.T) {
	res, err := NewLogDispatcher().Dispatch(context.Background(), message)
	require.NoError(t, err)
	assert.True(t, res.Delivered)
}

func TestFanout(t *testing.T) {
	tests := []struct {
		name          string
		dispatchers   []Dispatcher
		wantDelivered bool
		wantErrs      int
	}{
		{
			name:          "all channels deliver",
			dispatchers:   []Dispatcher{funcDispatcher(delivered), funcDispatcher(delivered)},
			wantDelivered: true,
		},
		{
			name: "one channel queues",
			dispatchers: []Dispatcher{funcDispatcher(delivered), funcDispatcher(func(context.Context, domain.ReportMessage) (Result, error) {
				return Result{}, nil
			})},
		},
		{
			name: "errors are collected",
			dispatchers: []Dispatcher{
				funcDispatcher(func(context.Context, domain.ReportMessage) (Result, error) { return Result{}, errors.New("smtp down") }),
				funcDispatcher(delivered),
				funcDispatcher(func(context.Context, domain.ReportMessage) (Result, error) { return Result{}, errors.New("bucket gone") }),
			},
			wantErrs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewFanout(tt.dispatchers...).Dispatch(context.Background(), message)
			if tt.wantErrs > 0 {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "smtp down")
				assert.Contains(t, err.Error(), "bucket gone")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDelivered, res.Delivered)
		})
	}
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(ctx, email)
	if r := args.Get(0); r != nil {
		return r.(*rest.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSendGridDispatcher(t *testing.T) {
	cfg := SendGridConfig{FromEmail: "reports@clocksynk.com"}

	t.Run("builds one personalization with every recipient", func(t *testing.T) {
		sender := new(mockSender)
		sender.On("SendWithContext", mock.Anything, mock.MatchedBy(func(m *mail.SGMailV3) bool {
			return m.Subject == message.Subject &&
				len(m.Personalizations) == 1 &&
				len(m.Personalizations[0].To) == 2 &&
				len(m.Content) == 2 &&
				m.Content[0].Type == "text/plain" &&
				m.Content[1].Type == "text/html"
		})).Return(&rest.Response{StatusCode: 202}, nil)

		res, err := newSendGridDispatcher(sender, cfg).Dispatch(context.Background(), message)
		require.NoError(t, err)
		assert.True(t, res.Delivered)
		sender.AssertExpectations(t)
	})

	t.Run("api error status", func(t *testing.T) {
		sender := new(mockSender)
		sender.On("SendWithContext", mock.Anything, mock.Anything).
			Return(&rest.Response{StatusCode: 401, Body: "unauthorized"}, nil)

		_, err := newSendGridDispatcher(sender, cfg).Dispatch(context.Background(), message)
		assert.ErrorContains(t, err, "status 401")
	})

	t.Run("no recipients", func(t *testing.T) {
		msg := message
		msg.Recipients = nil
		_, err := newSendGridDispatcher(new(mockSender), cfg).Dispatch(context.Background(), msg)
		assert.Error(t, err)
	})

	t.Run("api key required", func(t *testing.T) {
		_, err := NewSendGridDispatcher(SendGridConfig{})
		assert.Error(t, err)
	})
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver(t *testing.T) {
	client := &fakeS3{}
	d, err := NewS3Archiver(client, "clocksynk-reports")
	require.NoError(t, err)
	d.(*s3Archiver).newID = func() string { return "abc" }

	res, err := d.Dispatch(context.Background(), message)
	require.NoError(t, err)
	assert.True(t, res.Delivered)
	assert.Equal(t, "clocksynk-reports", *client.input.Bucket)
	assert.Equal(t, "reports/weekly/2024-06-14-abc.html", *client.input.Key)
	assert.Equal(t, message.HTML, client.body)

	client.err = errors.New("access denied")
	_, err = d.Dispatch(context.Background(), message)
	assert.ErrorContains(t, err, "access denied")

	_, err = NewS3Archiver(client, "")
	assert.Error(t, err)
}

func TestHandoff(t *testing.T) {
	t.Run("fast delivery", func(t *testing.T) {
		h := NewHandoff(funcDispatcher(delivered), time.Second, time.Second)
		assert.Equal(t, domain.DeliveryDelivered, h.Send(context.Background(), message))
		h.Wait()
	})

	t.Run("failed delivery", func(t *testing.T) {
		h := NewHandoff(funcDispatcher(func(context.Context, domain.ReportMessage) (Result, error) {
			return Result{}, errors.New("rejected")
		}), time.Second, time.Second)
		assert.Equal(t, domain.DeliveryFailed, h.Send(context.Background(), message))
		h.Wait()
	})

	t.Run("slow delivery is pending and keeps running", func(t *testing.T) {
		release := make(chan struct{})
		var finished atomic.Bool
		h := NewHandoff(funcDispatcher(func(ctx context.Context, _ domain.ReportMessage) (Result, error) {
			<-release
			finished.Store(true)
			return Result{Delivered: true}, nil
		}), 20*time.Millisecond, time.Second)

		start := time.Now()
		status := h.Send(context.Background(), message)
		assert.Equal(t, domain.DeliveryPending, status)
		assert.Less(t, time.Since(start), 500*time.Millisecond)

		close(release)
		h.Wait()
		assert.True(t, finished.Load())
	})

	t.Run("delivery outlives the caller context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var deliveryErr atomic.Value
		h := NewHandoff(funcDispatcher(func(dctx context.Context, _ domain.ReportMessage) (Result, error) {
			cancel()
			time.Sleep(10 * time.Millisecond)
			if err := dctx.Err(); err != nil {
				deliveryErr.Store(err)
			}
			return Result{Delivered: true}, nil
		}), time.Second, time.Second)

		status := h.Send(ctx, message)
		h.Wait()
		assert.Contains(t, []domain.DeliveryStatus{domain.DeliveryDelivered, domain.DeliveryPending}, status)
		assert.Nil(t, deliveryErr.Load())
	})
}
