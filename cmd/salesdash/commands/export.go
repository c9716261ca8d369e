package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/salesdash-mcp/pkg/export"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

func installExportCmd(a *App) {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export parsed rows as CSV, JSON or XML",
		Args:  inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				a.usageErr = true
				return err
			}
			pd, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			if !pd.HasData {
				return export.ErrNoData
			}

			if output == "" {
				return writeExport(cmd.OutOrStdout(), f, pd)
			}
			if err := writeExportFile(output, f, pd); err != nil {
				return err
			}
			slog.Info("export written", slog.String("file", output), slog.Int("rows", len(pd.Rows)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "export format: csv, json or xml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	a.rootCmd.AddCommand(cmd)
}

func writeExport(w io.Writer, f export.Format, pd tabular.ParsedData) error {
	if err := export.Write(w, f, pd); err != nil {
		if errors.Is(err, export.ErrNoData) {
			return err
		}
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// writeExportFile creates path and writes the export to it. A failed close is
// reported when the write itself succeeded.
func writeExportFile(path string, f export.Format, pd tabular.ParsedData) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
	}()
	return writeExport(file, f, pd)
}
