package commands

import (
	"github.com/spf13/cobra"
)

func installParseCmd(a *App) {
	var limit int

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Materialize a payload into rows",
		Long:  "Print the parsed rows, headers, convention and dropped leaf count as JSON.",
		Args:  inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pd, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			if limit > 0 && len(pd.Rows) > limit {
				pd.Rows = pd.Rows[:limit]
			}
			return writeJSON(cmd.OutOrStdout(), pd)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most this many rows (0 prints all)")

	a.rootCmd.AddCommand(cmd)
}
