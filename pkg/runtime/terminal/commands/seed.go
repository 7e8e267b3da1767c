package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clocksynk/dashboard/pkg/store/fixtures"
)

func NewSeedCmd(env *Env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load tasks, projects, ideas and time entries from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fixtures.LoadFile(file)
			if err != nil {
				return err
			}

			a, session, cleanup, err := env.App(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := fixtures.Seed(session.Ctx, a.Store, data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.Output, "seeded %d records (%d already present)\n", summary.Inserted, summary.Skipped)
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the fixtures YAML file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
