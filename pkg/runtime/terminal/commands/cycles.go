package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/rate-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type CyclesCmd struct {
	window   int
	load     LoadFunc
	reporter *export.Reporter
}

func NewCyclesCmd(load LoadFunc, reporter *export.Reporter) *cobra.Command {
	cc := &CyclesCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List detected rate-cut cycles",
		RunE:  cc.run,
	}

	cmd.Flags().IntVar(&cc.window, "window", 0, "Window in months to show after each cycle start")

	return cmd
}

func (cc *CyclesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	rt, err := cc.load(ctx)
	if err != nil {
		return err
	}
	defer rt.release()

	markers, err := rt.Dashboard.Markers(ctx, cc.window)
	if err != nil {
		return fmt.Errorf("failed to detect cycles: %w", err)
	}
	return cc.reporter.HandleCycles(rt.Dashboard.PolicySeries(), markers)
}
