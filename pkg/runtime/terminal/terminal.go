package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/rate-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/rate-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// Loader builds the runtime from the config file at configPath.
type Loader func(ctx context.Context, configPath string) (*commands.Runtime, error)

// CLI represents the command-line interface
type CLI struct {
	loader     Loader
	configPath string
	output     io.Writer
	reporter   *export.Reporter
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Loader Loader
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		loader:   opts.Loader,
		output:   opts.Output,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) load(ctx context.Context) (*commands.Runtime, error) {
	return cli.loader(ctx, cli.configPath)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rate-atlas",
		Short:         "Rate-cut cycle analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the rate-atlas config file")

	cmd.AddCommand(commands.NewCyclesCmd(cli.load, cli.reporter))
	cmd.AddCommand(commands.NewAnalyzeCmd(cli.load, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.load))

	return cmd
}
