package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/salesdash-mcp/pkg/payload"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

func installDescribeCmd(a *App) {
	cmd := &cobra.Command{
		Use:   "describe [FILE]",
		Short: "Report the leaf shape of a payload",
		Long: `Report leaf count, path length histogram, chosen convention, headers and
distinct labels per segment, as JSON.`,
		Args: inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.payloadBytes(cmd, args)
			if err != nil {
				return err
			}
			v, err := payload.Decode(data, &payload.DecodeOptions{MaxDepth: a.maxDepth})
			if err != nil {
				return fmt.Errorf("decoding payload: %w", err)
			}
			d, err := tabular.DescribeWithOptions(v, &tabular.Options{MaxDepth: a.maxDepth})
			if err != nil {
				return fmt.Errorf("describing payload: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), d)
		},
	}

	a.rootCmd.AddCommand(cmd)
}
