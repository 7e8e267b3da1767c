package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/finance"
)

const costColumn = "totalCost"

// UsageAPI is the slice of the Cost Management query client the provider uses.
type UsageAPI interface {
	Usage(
		ctx context.Context,
		scope string,
		parameters armcostmanagement.QueryDefinition,
		options *armcostmanagement.QueryClientUsageOptions,
	) (armcostmanagement.QueryClientUsageResponse, error)
}

type provider struct {
	client UsageAPI
	scope  string
}

// Factory builds a provider from a profile in the Azure CLI config file.
func Factory(_ context.Context, profile string) (finance.Provider, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(path, profile)
	if err != nil {
		return nil, err
	}

	factory, err := armcostmanagement.NewClientFactory(cfg.Credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}
	return New(factory.NewQueryClient(), cfg.SubscriptionID), nil
}

func New(client UsageAPI, subscriptionID string) finance.Provider {
	return &provider{
		client: client,
		scope:  fmt.Sprintf("/subscriptions/%s", subscriptionID),
	}
}

func (p *provider) Name() string {
	return "azure"
}

func (p *provider) Financials(ctx context.Context, window domain.Window) (domain.Financials, error) {
	exportType := armcostmanagement.ExportTypeActualCost
	timeframe := armcostmanagement.TimeframeTypeCustom
	start, end := window.Start, window.End

	params := armcostmanagement.QueryDefinition{
		Type:      &exportType,
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &start,
			To:   &end,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				costColumn: {
					Name:     to.Ptr("PreTaxCost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
		},
	}

	result, err := p.client.Usage(ctx, p.scope, params, nil)
	if err != nil {
		return domain.Financials{}, fmt.Errorf("failed to query costs: %w", err)
	}

	total, err := sumColumn(result.Properties, costColumn)
	if err != nil {
		return domain.Financials{}, err
	}
	return domain.Financials{Expenses: total, BurnRate: total}, nil
}

func sumColumn(props *armcostmanagement.QueryProperties, name string) (float64, error) {
	if props == nil {
		return 0, nil
	}

	idx := -1
	for i, col := range props.Columns {
		if col != nil && col.Name != nil && *col.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		if len(props.Rows) == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("cost column %q missing from query result", name)
	}

	var total float64
	for _, row := range props.Rows {
		if len(row) <= idx {
			continue
		}
		v, ok := row[idx].(float64)
		if !ok {
			return 0, fmt.Errorf("unexpected %T in cost column", row[idx])
		}
		total += v
	}
	return total, nil
}
