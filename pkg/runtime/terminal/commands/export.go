package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	bucket string
	load   LoadFunc
}

func NewExportCmd(load LoadFunc) *cobra.Command {
	ec := &ExportCmd{load: load}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload the full dashboard report to S3 as JSON",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.bucket, "bucket", "", "Target bucket (defaults to export.bucket)")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	rt, err := ec.load(ctx)
	if err != nil {
		return err
	}
	defer rt.release()

	report, err := rt.Dashboard.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	exporter, err := rt.NewExporter(ctx, ec.bucket)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	uri, err := exporter.Export(ctx, report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
	return err
}
