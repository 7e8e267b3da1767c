package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/clocksynk/dashboard/pkg/runtime/app"
)

func NewFinanceCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Inspect finance providers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "providers",
		Short: "List available finance providers; configured ones are marked with *",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := env.Session(cmd.Context())
			if err != nil {
				return err
			}
			defer session.Close()

			registry, err := app.NewFinanceRegistry(session.Config.Finance)
			if err != nil {
				return err
			}
			for _, name := range registry.ListProviders() {
				marker := " "
				if slices.Contains(session.Config.Finance.Providers, name) {
					marker = "*"
				}
				if _, err := fmt.Fprintf(env.Output, "%s %s\n", marker, name); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return cmd
}
