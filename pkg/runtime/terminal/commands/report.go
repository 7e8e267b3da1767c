package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clocksynk/dashboard/pkg/adapters"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/runtime/app"
)

var formats = []string{"json", "html", "text", "xlsx"}

type ReportCmd struct {
	env    *Env
	format string
	out    string
	send   bool
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:       "report weekly|monthly",
		Short:     "Generate a report, optionally sending it",
		ValidArgs: []string{string(domain.ReportKindWeekly), string(domain.ReportKindMonthly)},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE:      rc.run,
	}

	cmd.Flags().StringVar(&rc.format, "format", "json", "Output format: json, html, text or xlsx")
	cmd.Flags().StringVar(&rc.out, "out", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&rc.send, "send", false, "Send the report to its recipients")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	kind, _ := domain.ParseReportKind(args[0])
	if !validFormat(rc.format) {
		return fmt.Errorf("unsupported format %q, expected one of %v", rc.format, formats)
	}
	if rc.format == "xlsx" && rc.out == "" {
		return fmt.Errorf("xlsx output requires --out")
	}

	a, session, cleanup, err := rc.env.App(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := session.Ctx

	w := rc.env.Output
	if rc.out != "" {
		f, err := os.Create(rc.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if rc.send {
		var res *domain.SendResult
		if kind == domain.ReportKindWeekly {
			res, err = a.Reports.SendWeekly(ctx)
		} else {
			res, err = a.Reports.SendMonthly(ctx)
		}
		if err != nil {
			return err
		}
		return encodeJSON(w, adapters.MapSendResultDomainToApi(*res))
	}

	if kind == domain.ReportKindWeekly {
		report, err := a.Reports.GenerateWeekly(ctx)
		if err != nil {
			return err
		}
		return writeWeekly(w, a, rc.format, report)
	}
	report, err := a.Reports.GenerateMonthly(ctx)
	if err != nil {
		return err
	}
	return writeMonthly(w, a, rc.format, report)
}

func writeWeekly(w io.Writer, a *app.App, format string, report *domain.WeeklyReport) error {
	switch format {
	case "html":
		return writeRendered(w)(a.HTML.RenderWeekly(report))
	case "text":
		return writeRendered(w)(a.Text.RenderWeekly(report))
	case "xlsx":
		return a.XLSX.ExportWeekly(w, report)
	default:
		return encodeJSON(w, adapters.MapWeeklyReportDomainToApi(*report))
	}
}

func writeMonthly(w io.Writer, a *app.App, format string, report *domain.MonthlyReport) error {
	switch format {
	case "html":
		return writeRendered(w)(a.HTML.RenderMonthly(report))
	case "text":
		return writeRendered(w)(a.Text.RenderMonthly(report))
	case "xlsx":
		return a.XLSX.ExportMonthly(w, report)
	default:
		return encodeJSON(w, adapters.MapMonthlyReportDomainToApi(*report))
	}
}

func writeRendered(w io.Writer) func(string, error) error {
	return func(body string, err error) error {
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, body)
		return err
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func validFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
