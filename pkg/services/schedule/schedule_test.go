package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendWeekly(ctx context.Context) (*domain.SendResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*domain.SendResult)
	return res, args.Error(1)
}

func (m *mockSender) SendMonthly(ctx context.Context) (*domain.SendResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*domain.SendResult)
	return res, args.Error(1)
}

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}},
		{name: "custom", cfg: Config{WeeklySpec: "0 30 8 * * 5", MonthlySpec: "0 0 7 1 * *", Location: time.UTC}},
		{name: "invalid weekly", cfg: Config{WeeklySpec: "every monday"}, wantErr: true},
		{name: "invalid monthly", cfg: Config{MonthlySpec: "0 0 99 1 * *"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(new(mockSender), tt.cfg, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.cron.Entries(), 2)
		})
	}
}

func TestNewScheduler_NilSender(t *testing.T) {
	_, err := NewScheduler(nil, Config{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestScheduler_Next(t *testing.T) {
	s, err := NewScheduler(new(mockSender), Config{Location: time.UTC}, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next()
	require.Len(t, next, 2)
	for _, n := range next {
		assert.True(t, n.After(time.Now()))
		assert.Equal(t, 9, n.Hour())
	}
}

func TestScheduler_Run(t *testing.T) {
	sender := new(mockSender)
	sender.On("SendWeekly", mock.Anything).
		Return(&domain.SendResult{Success: true, Delivery: domain.DeliveryDelivered}, nil).Once()
	sender.On("SendMonthly", mock.Anything).
		Return(nil, errors.New("data unavailable")).Once()

	s, err := NewScheduler(sender, Config{RunTimeout: time.Second}, zerolog.Nop())
	require.NoError(t, err)

	s.Run(domain.ReportKindWeekly)
	s.Run(domain.ReportKindMonthly)
	s.Run(domain.ReportKind("quarterly"))

	sender.AssertExpectations(t)
}

func TestScheduler_RunHasDeadline(t *testing.T) {
	sender := new(mockSender)
	sender.On("SendWeekly", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(&domain.SendResult{Success: true}, nil).Once()

	s, err := NewScheduler(sender, Config{}, zerolog.Nop())
	require.NoError(t, err)

	s.Run(domain.ReportKindWeekly)
	sender.AssertExpectations(t)
}
