package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/rate-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	view     string
	load     LoadFunc
	reporter *export.Reporter
}

func NewAnalyzeCmd(load LoadFunc, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute dashboard views and print their tables",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.view, "view", "", "Only compute this view (e.g., lending)")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	rt, err := ac.load(ctx)
	if err != nil {
		return err
	}
	defer rt.release()

	if ac.view != "" {
		view, err := rt.Dashboard.View(ctx, ac.view)
		if err != nil {
			return fmt.Errorf("failed to analyze view %s: %w", ac.view, err)
		}
		return ac.reporter.HandleView(view)
	}

	report, err := rt.Dashboard.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to analyze: %w", err)
	}
	return ac.reporter.HandleReport(report)
}
