package commands

import (
	"github.com/spf13/cobra"

	"github.com/usestring/salesdash-mcp/pkg/render"
)

func installTableCmd(a *App) {
	var html bool

	cmd := &cobra.Command{
		Use:   "table [FILE]",
		Short: "Render a payload as a sorted table",
		Args:  inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pd, err := a.parse(cmd, args)
			if err != nil {
				return err
			}
			if html {
				return render.HTML(cmd.OutOrStdout(), pd)
			}
			return render.Text(cmd.OutOrStdout(), pd)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "write HTML table markup instead of text")

	a.rootCmd.AddCommand(cmd)
}
