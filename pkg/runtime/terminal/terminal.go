package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clocksynk/dashboard/pkg/runtime/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		env: &commands.Env{Output: opts.Output},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, used by tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "clocksynk",
		Short:         "ClockSynk team and business reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.env.Output)

	cmd.PersistentFlags().StringVarP(&cli.env.ConfigPath, "config", "c", "",
		"Path to a YAML config file (CLOCKSYNK_* environment variables override it)")

	cmd.AddCommand(commands.NewWebCmd(cli.env))
	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewSeedCmd(cli.env))
	cmd.AddCommand(commands.NewFinanceCmd(cli.env))

	return cmd
}
