package quickbooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/finance"
)

const (
	ProductionBaseURL = "https://quickbooks.api.intuit.com/v3/company"
	SandboxBaseURL    = "https://sandbox-quickbooks.api.intuit.com/v3/company"

	// noBurnRunway is reported when the ledger shows no expenses.
	noBurnRunway = 999

	dateLayout = "2006-01-02"
)

var ErrTokenExpired = errors.New("quickbooks access token expired")

type Config struct {
	BaseURL     string
	RealmID     string
	AccessToken string
	Sandbox     bool
	Timeout     time.Duration
}

func (c Config) Configured() bool {
	return c.RealmID != "" && c.AccessToken != ""
}

type client struct {
	baseURL string
	realmID string
	token   string
	http    *http.Client
}

func New(cfg Config) (finance.Provider, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("quickbooks realm id and access token are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ProductionBaseURL
		if cfg.Sandbox {
			baseURL = SandboxBaseURL
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		realmID: cfg.RealmID,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Factory adapts New to the finance registry. The profile is unused since
// a company file is selected by realm id.
func Factory(cfg Config) finance.ProviderFactory {
	return func(_ context.Context, _ string) (finance.Provider, error) {
		return New(cfg)
	}
}

func (c *client) Name() string {
	return "quickbooks"
}

func (c *client) Financials(ctx context.Context, window domain.Window) (domain.Financials, error) {
	pl, err := c.report(ctx, "reports/ProfitAndLoss", url.Values{
		"start_date":        {window.Start.Format(dateLayout)},
		"end_date":          {window.End.Format(dateLayout)},
		"accounting_method": {"Accrual"},
	})
	if err != nil {
		return domain.Financials{}, fmt.Errorf("profit and loss: %w", err)
	}

	bs, err := c.report(ctx, "reports/BalanceSheet", url.Values{
		"date": {window.End.Format(dateLayout)},
	})
	if err != nil {
		return domain.Financials{}, fmt.Errorf("balance sheet: %w", err)
	}

	return Summarize(pl, bs), nil
}

func (c *client) report(ctx context.Context, endpoint string, query url.Values) (*Report, error) {
	u := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, url.PathEscape(c.realmID), endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quickbooks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrTokenExpired
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("quickbooks api error (status %d): %s", resp.StatusCode, string(body))
	}

	var r Report
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse quickbooks report: %w", err)
	}
	return &r, nil
}

// Report is the subset of a QuickBooks report payload that the summary reads.
type Report struct {
	Rows struct {
		Row []Row `json:"Row"`
	} `json:"Rows"`
}

type Row struct {
	Header  *ColSet `json:"Header,omitempty"`
	Summary *ColSet `json:"Summary,omitempty"`
}

type ColSet struct {
	ColData []ColData `json:"ColData"`
}

type ColData struct {
	Value string `json:"value"`
}

// Summarize derives monthly figures from a profit and loss report and a
// balance sheet. Either may be nil.
func Summarize(pl, bs *Report) domain.Financials {
	var revenue, expenses, cash float64

	if pl != nil {
		for _, row := range pl.Rows.Row {
			header := strings.ToLower(row.header())
			if header == "" {
				continue
			}
			if strings.Contains(header, "income") || strings.Contains(header, "revenue") {
				revenue += row.amount()
			}
			if strings.Contains(header, "expense") || strings.Contains(header, "cost") {
				expenses += row.amount()
			}
		}
	}

	if bs != nil {
		for _, row := range bs.Rows.Row {
			header := strings.ToLower(row.header())
			if strings.Contains(header, "cash") || strings.Contains(header, "bank") {
				cash = row.amount()
			}
		}
	}

	runway := noBurnRunway
	if expenses > 0 {
		runway = int(math.Floor(cash / expenses))
	}

	return domain.Financials{
		Revenue:  math.Round(revenue),
		Expenses: math.Round(expenses),
		BurnRate: math.Round(expenses),
		Cash:     math.Round(cash),
		Runway:   runway,
	}
}

func (r Row) header() string {
	if r.Header == nil || len(r.Header.ColData) == 0 {
		return ""
	}
	return r.Header.ColData[0].Value
}

func (r Row) amount() float64 {
	if r.Summary == nil || len(r.Summary.ColData) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(r.Summary.ColData[1].Value, 64)
	if err != nil {
		return 0
	}
	return v
}
