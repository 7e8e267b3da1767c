package domain

// Financials holds vendor-reported figures for a report window. Amounts are in
// the ledger currency, Runway is in months.
type Financials struct {
	Revenue  float64
	Expenses float64
	BurnRate float64
	Cash     float64
	Runway   int
}
