package awsce

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/finance"
)

const (
	DefaultRegion = "us-east-1" // Cost Explorer is served from us-east-1 only

	costMetric = "UnblendedCost"
	dateLayout = "2006-01-02"
)

// CostAndUsageAPI is the slice of the Cost Explorer client the provider uses.
type CostAndUsageAPI interface {
	GetCostAndUsage(
		ctx context.Context,
		params *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
}

type provider struct {
	client CostAndUsageAPI
}

func LoadConfig(ctx context.Context, profile string) (*aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("invalid AWS credentials for profile %s: %w", profile, err)
	}

	return &awsCfg, nil
}

// Factory builds a provider from a shared-config profile.
func Factory(ctx context.Context, profile string) (finance.Provider, error) {
	cfg, err := LoadConfig(ctx, profile)
	if err != nil {
		return nil, err
	}
	return New(costexplorer.NewFromConfig(*cfg)), nil
}

func New(client CostAndUsageAPI) finance.Provider {
	return &provider{client: client}
}

func (p *provider) Name() string {
	return "aws"
}

// Financials reports the cloud bill for the window as expenses. Credits and
// refunds are excluded so the figure reflects spend.
func (p *provider) Financials(ctx context.Context, window domain.Window) (domain.Financials, error) {
	start := window.Start.UTC().Format(dateLayout)
	end := window.End.UTC().Format(dateLayout)
	if end <= start {
		end = window.Start.UTC().AddDate(0, 0, 1).Format(dateLayout)
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{costMetric},
		Filter: &types.Expression{
			Not: &types.Expression{
				Dimensions: &types.DimensionValues{
					Key:    types.DimensionRecordType,
					Values: []string{"Credit", "Refund"},
				},
			},
		},
	}

	var total float64
	for {
		result, err := p.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return domain.Financials{}, fmt.Errorf("failed to get cost and usage: %w", err)
		}

		for _, byTime := range result.ResultsByTime {
			amount, err := metricAmount(byTime.Total)
			if err != nil {
				return domain.Financials{}, err
			}
			total += amount
		}

		if result.NextPageToken == nil || *result.NextPageToken == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return domain.Financials{Expenses: total, BurnRate: total}, nil
}

func metricAmount(metrics map[string]types.MetricValue) (float64, error) {
	m, ok := metrics[costMetric]
	if !ok || m.Amount == nil {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(*m.Amount, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s amount %q: %w", costMetric, *m.Amount, err)
	}
	return amount, nil
}
