package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

// Provider reports vendor figures for a report window.
type Provider interface {
	Name() string
	Financials(ctx context.Context, window domain.Window) (domain.Financials, error)
}

type staticProvider struct {
	figures domain.Financials
}

// NewStatic returns a provider that always reports figures, used when no
// accounting system is connected.
func NewStatic(figures domain.Financials) Provider {
	return &staticProvider{figures: figures}
}

func (p *staticProvider) Name() string {
	return "static"
}

func (p *staticProvider) Financials(_ context.Context, _ domain.Window) (domain.Financials, error) {
	return p.figures, nil
}

type composite struct {
	providers []Provider
}

// NewComposite sums the figures of every provider. Runway is taken from the
// first provider that reports one.
func NewComposite(providers ...Provider) Provider {
	return &composite{providers: providers}
}

func (c *composite) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, "+")
}

func (c *composite) Financials(ctx context.Context, window domain.Window) (domain.Financials, error) {
	var total domain.Financials
	for _, p := range c.providers {
		f, err := p.Financials(ctx, window)
		if err != nil {
			return domain.Financials{}, fmt.Errorf("%s: %w", p.Name(), err)
		}
		total.Revenue += f.Revenue
		total.Expenses += f.Expenses
		total.BurnRate += f.BurnRate
		total.Cash += f.Cash
		if total.Runway == 0 {
			total.Runway = f.Runway
		}
	}
	return total, nil
}
