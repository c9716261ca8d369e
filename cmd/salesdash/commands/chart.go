package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/usestring/salesdash-mcp/pkg/chart"
	"github.com/usestring/salesdash-mcp/pkg/render"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

type chartOutput struct {
	Points  []tabular.ChartPoint  `json:"points"`
	Totals  []chart.CategoryTotal `json:"totals"`
	Summary chart.Summary         `json:"summary"`
}

func installChartCmd(a *App) {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "chart [FILE]",
		Short: "Project a payload onto period totals",
		Long: `Project rows onto (Period, Value) points and total them per period.
Payloads without a Period column have no chart series.`,
		Args: inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pd, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			points := tabular.Project(pd)
			totals := chart.GroupByCategory(points)
			out := chartOutput{Points: points, Totals: totals, Summary: chart.Summarize(totals)}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, out)
			}
			if len(totals) == 0 {
				_, err := fmt.Fprintln(w, render.NoDataMessage)
				return err
			}

			tw := tablewriter.NewWriter(w)
			tw.SetHeader([]string{tabular.PeriodColumn, "Total", "Axis"})
			tw.SetAutoFormatHeaders(false)
			tw.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
			for _, t := range totals {
				tw.Append([]string{t.Category, render.FormatCurrency(t.Value), t.Label})
			}
			tw.SetFooter([]string{"Total", render.FormatCurrency(out.Summary.Total), chart.FormatAxisValue(out.Summary.Total)})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write points, totals and summary as JSON")

	a.rootCmd.AddCommand(cmd)
}
