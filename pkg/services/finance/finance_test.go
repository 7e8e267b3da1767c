package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) Name() string { return "broken" }

func (failingProvider) Financials(context.Context, domain.Window) (domain.Financials, error) {
	return domain.Financials{}, errors.New("upstream down")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	static := func(_ context.Context, _ string) (Provider, error) {
		return NewStatic(domain.Financials{Revenue: 10}), nil
	}

	require.NoError(t, r.Register("static", static))
	require.NoError(t, r.Register("quickbooks", static))
	assert.Error(t, r.Register("static", static))
	assert.Error(t, r.Register("", static))
	assert.Error(t, r.Register("nil", nil))

	assert.Equal(t, []string{"quickbooks", "static"}, r.ListProviders())

	p, err := r.Create(context.Background(), "static", "")
	require.NoError(t, err)
	assert.Equal(t, "static", p.Name())

	_, err = r.Create(context.Background(), "unknown", "")
	assert.Error(t, err)
}

func TestComposite(t *testing.T) {
	window := domain.Window{Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name      string
		providers []Provider
		want      domain.Financials
		wantErr   bool
	}{
		{
			name: "sums figures and keeps the first runway",
			providers: []Provider{
				NewStatic(domain.Financials{Revenue: 1000, Expenses: 400, BurnRate: 400, Cash: 5000, Runway: 12}),
				NewStatic(domain.Financials{Expenses: 100, BurnRate: 100, Runway: 3}),
			},
			want: domain.Financials{Revenue: 1000, Expenses: 500, BurnRate: 500, Cash: 5000, Runway: 12},
		},
		{
			name: "runway falls through zero values",
			providers: []Provider{
				NewStatic(domain.Financials{Expenses: 50}),
				NewStatic(domain.Financials{Runway: 7}),
			},
			want: domain.Financials{Expenses: 50, Runway: 7},
		},
		{
			name:      "one failure fails the whole read",
			providers: []Provider{NewStatic(domain.Financials{Revenue: 1}), failingProvider{}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewComposite(tt.providers...).Financials(context.Background(), window)
			if tt.wantErr {
				assert.ErrorContains(t, err, "broken")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
