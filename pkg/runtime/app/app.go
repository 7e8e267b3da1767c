package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/config"
	"github.com/clocksynk/dashboard/pkg/services/dispatch"
	"github.com/clocksynk/dashboard/pkg/services/finance"
	"github.com/clocksynk/dashboard/pkg/services/finance/awsce"
	"github.com/clocksynk/dashboard/pkg/services/finance/azure"
	"github.com/clocksynk/dashboard/pkg/services/finance/quickbooks"
	"github.com/clocksynk/dashboard/pkg/services/metrics"
	"github.com/clocksynk/dashboard/pkg/services/recipients"
	"github.com/clocksynk/dashboard/pkg/services/render"
	"github.com/clocksynk/dashboard/pkg/services/report"
	"github.com/clocksynk/dashboard/pkg/services/timeclock"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
	"github.com/clocksynk/dashboard/pkg/store/mongo"
	mongodashboard "github.com/clocksynk/dashboard/pkg/store/mongo/dashboard"
	"github.com/clocksynk/dashboard/pkg/store/sqlite"
	sqlitedashboard "github.com/clocksynk/dashboard/pkg/store/sqlite/dashboard"
)

// App holds the wired services shared by the web server and the CLI.
type App struct {
	Store     dashboard.Store
	Reports   report.Service
	TimeClock timeclock.Service
	HTML      render.Renderer
	Text      render.Renderer
	XLSX      render.XLSXExporter
	Finance   finance.Registry
	Handoff   *dispatch.Handoff
	Location  *time.Location
}

// NewFinanceRegistry registers every known finance provider. Static figures
// and QuickBooks credentials come from cfg; aws and azure read their own
// credential files using the profile passed to Create.
func NewFinanceRegistry(cfg config.FinanceConfig) (finance.Registry, error) {
	registry := finance.NewRegistry()
	factories := map[string]finance.ProviderFactory{
		"static": func(context.Context, string) (finance.Provider, error) {
			return finance.NewStatic(domain.Financials{
				Revenue:  cfg.Static.Revenue,
				Expenses: cfg.Static.Expenses,
				BurnRate: cfg.Static.BurnRate,
				Cash:     cfg.Static.Cash,
				Runway:   cfg.Static.Runway,
			}), nil
		},
		"quickbooks": quickbooks.Factory(quickbooks.Config{
			BaseURL:     cfg.QuickBooks.BaseURL,
			RealmID:     cfg.QuickBooks.RealmID,
			AccessToken: cfg.QuickBooks.AccessToken,
			Sandbox:     cfg.QuickBooks.Sandbox,
		}),
		"aws":   awsce.Factory,
		"azure": azure.Factory,
	}
	for name, factory := range factories {
		if err := registry.Register(name, factory); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// NewFinanceProvider creates the configured providers and sums them. It
// returns nil when none are configured, leaving report financials zeroed.
func NewFinanceProvider(ctx context.Context, registry finance.Registry, cfg config.FinanceConfig) (finance.Provider, error) {
	providers := make([]finance.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		profile := ""
		switch name {
		case "aws":
			profile = cfg.AWSProfile
		case "azure":
			profile = cfg.AzureProfile
		}
		p, err := registry.Create(ctx, name, profile)
		if err != nil {
			return nil, fmt.Errorf("failed to create finance provider %s: %w", name, err)
		}
		providers = append(providers, p)
	}

	switch len(providers) {
	case 0:
		return nil, nil
	case 1:
		return providers[0], nil
	default:
		return finance.NewComposite(providers...), nil
	}
}

// NewDispatcher builds the delivery channels named in cfg.Channels.
func NewDispatcher(ctx context.Context, cfg config.DispatchConfig) (dispatch.Dispatcher, error) {
	channels := make([]dispatch.Dispatcher, 0, len(cfg.Channels))
	for _, name := range cfg.Channels {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "log":
			channels = append(channels, dispatch.NewLogDispatcher())
		case "sendgrid":
			d, err := dispatch.NewSendGridDispatcher(dispatch.SendGridConfig{
				APIKey:    cfg.SendGrid.APIKey,
				FromEmail: cfg.SendGrid.FromEmail,
				FromName:  cfg.SendGrid.FromName,
			})
			if err != nil {
				return nil, err
			}
			channels = append(channels, d)
		case "s3":
			awsCfg, err := awsce.LoadConfig(ctx, cfg.S3.Profile)
			if err != nil {
				return nil, err
			}
			d, err := dispatch.NewS3Archiver(s3.NewFromConfig(*awsCfg), cfg.S3.Bucket)
			if err != nil {
				return nil, err
			}
			channels = append(channels, d)
		default:
			return nil, fmt.Errorf("unknown dispatch channel %q", name)
		}
	}

	switch len(channels) {
	case 0:
		return dispatch.NewLogDispatcher(), nil
	case 1:
		return channels[0], nil
	default:
		return dispatch.NewFanout(channels...), nil
	}
}

// openStore is swapped in tests.
var openStore = NewStore

func NewStore(ctx context.Context, cfg config.StorageConfig) (dashboard.Store, error) {
	switch cfg.Driver {
	case "mongo":
		db, err := mongo.Connect(ctx, mongo.Settings{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			return nil, err
		}
		return mongodashboard.NewStore(db)
	default:
		db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		return sqlitedashboard.NewStore(db)
	}
}

// New wires the application from cfg. Close must be called to drain pending
// deliveries and release the store.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	logger := zerolog.Ctx(ctx)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	defer func() {
		if err != nil {
			if cerr := store.Close(ctx); cerr != nil {
				logger.Warn().Err(cerr).Msg("failed to close store")
			}
		}
	}()

	registry, err := NewFinanceRegistry(cfg.Finance)
	if err != nil {
		return nil, err
	}
	provider, err := NewFinanceProvider(ctx, registry, cfg.Finance)
	if err != nil {
		return nil, err
	}

	dispatcher, err := NewDispatcher(ctx, cfg.Dispatch)
	if err != nil {
		return nil, fmt.Errorf("failed to configure dispatch: %w", err)
	}
	handoff := dispatch.NewHandoff(dispatcher, cfg.Dispatch.Timeout, cfg.Dispatch.DeliveryTimeout)

	recipientRegistry := recipients.Defaults()
	if cfg.Recipients.File != "" {
		recipientRegistry, err = recipients.Load(cfg.Recipients.File)
		if err != nil {
			return nil, err
		}
	}

	html, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}
	text, err := render.NewTextRenderer(render.DefaultTableConfig())
	if err != nil {
		return nil, err
	}

	clock := func() time.Time { return time.Now().In(loc) }
	reports, err := report.NewService(report.Dependencies{
		Loader:     metrics.NewLoader(store, provider, cfg.Data.Timeout),
		HTML:       html,
		Text:       text,
		Deliverer:  handoff,
		Recipients: recipientRegistry,
		Clock:      clock,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("storage", cfg.Storage.Driver).
		Strs("finance", cfg.Finance.Providers).
		Strs("channels", cfg.Dispatch.Channels).
		Str("timezone", loc.String()).
		Msg("application configured")

	return &App{
		Store:     store,
		Reports:   reports,
		TimeClock: timeclock.NewService(store, clock),
		HTML:      html,
		Text:      text,
		XLSX:      render.NewXLSXExporter(),
		Finance:   registry,
		Handoff:   handoff,
		Location:  loc,
	}, nil
}

// Close waits for in-flight deliveries, then closes the store.
func (a *App) Close(ctx context.Context) error {
	a.Handoff.Wait()
	return a.Store.Close(ctx)
}
