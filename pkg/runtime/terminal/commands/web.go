package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clocksynk/dashboard/pkg/server"
	"github.com/clocksynk/dashboard/pkg/services/schedule"
)

func NewWebCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Start the reporting web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, session, cleanup, err := env.App(cmd.Context())
			if err != nil {
				return err
			}
			cfg := session.Config

			api := server.NewWebAPI(session.Logger, server.Config{
				Addr:            cfg.Addr(),
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Dependencies: server.Dependencies{
					Reports:   a.Reports,
					TimeClock: a.TimeClock,
					HTML:      a.HTML,
					Text:      a.Text,
					XLSX:      a.XLSX,
				},
			})

			if cfg.Schedule.Enabled {
				scheduler, err := schedule.NewScheduler(a.Reports, schedule.Config{
					WeeklySpec:  cfg.Schedule.Weekly,
					MonthlySpec: cfg.Schedule.Monthly,
					Location:    a.Location,
				}, session.Logger)
				if err != nil {
					cleanup()
					return fmt.Errorf("failed to configure scheduler: %w", err)
				}
				scheduler.Start()
				api.OnShutdown(func(ctx context.Context) {
					select {
					case <-scheduler.Stop().Done():
					case <-ctx.Done():
					}
				})
			}
			api.OnShutdown(func(context.Context) { cleanup() })

			return api.Start()
		},
	}
}
