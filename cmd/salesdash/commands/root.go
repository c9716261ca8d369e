// Package commands implements the salesdash command line interface.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/salesdash-mcp/internal/logging"
	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/payload"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// App is the salesdash CLI.
type App struct {
	rootCmd *cobra.Command

	verbose  bool
	maxDepth int
	envelope bool

	usageErr bool
}

// New builds the command tree.
func New() *App {
	a := &App{}
	a.rootCmd = &cobra.Command{
		Use:   "salesdash",
		Short: "Inspect revenue dashboard payloads",
		Long: `Parse nested revenue payloads into tables, chart series and exports.
Each command reads a payload from FILE, or from stdin when FILE is omitted or "-".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			cfg := logging.DefaultConfig()
			cfg.Level = level
			_, err := logging.Setup(cfg)
			return err
		},
	}
	a.rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		a.usageErr = true
		return err
	})

	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	a.rootCmd.PersistentFlags().IntVar(&a.maxDepth, "max-depth", payload.DefaultMaxDepth, "maximum object nesting accepted in a payload")
	a.rootCmd.PersistentFlags().BoolVarP(&a.envelope, "envelope", "e", false, "input is a chat backend response; its output is parsed")

	installParseCmd(a)
	installTableCmd(a)
	installChartCmd(a)
	installExportCmd(a)
	installDescribeCmd(a)

	return a
}

// Run executes the command line.
func (a *App) Run() error {
	err := a.rootCmd.Execute()
	if err != nil && isArgsError(err) {
		a.usageErr = true
	}
	return err
}

// UsageError reports whether the last Run failed on command usage.
func (a *App) UsageError() bool {
	return a.usageErr
}

// SetArgs overrides os.Args for the next Run.
func (a *App) SetArgs(args ...string) {
	a.rootCmd.SetArgs(args)
}

// SetIO overrides stdin, stdout and stderr.
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.rootCmd.SetIn(in)
	a.rootCmd.SetOut(out)
	a.rootCmd.SetErr(errOut)
}

var errUsage = errors.New("usage")

func isArgsError(err error) bool {
	return errors.Is(err, errUsage)
}

// inputArgs accepts zero or one FILE argument.
func inputArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

// readInput returns the payload bytes named by args.
func (a *App) readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return data, nil
}

// payloadBytes returns the raw payload, unwrapping a backend response when
// --envelope is set.
func (a *App) payloadBytes(cmd *cobra.Command, args []string) ([]byte, error) {
	data, err := a.readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if !a.envelope {
		return data, nil
	}

	var resp client.ChatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	processed, err := client.ProcessResponse(&resp)
	if err != nil {
		return nil, fmt.Errorf("processing response envelope: %w", err)
	}
	if len(processed.RawData) == 0 {
		return []byte("null"), nil
	}
	return processed.RawData, nil
}

// parse reads and materializes the input.
func (a *App) parse(cmd *cobra.Command, args []string) (tabular.ParsedData, error) {
	data, err := a.payloadBytes(cmd, args)
	if err != nil {
		return tabular.ParsedData{}, err
	}
	pd, err := tabular.Parse(data, &tabular.Options{MaxDepth: a.maxDepth})
	if err != nil {
		return tabular.ParsedData{}, fmt.Errorf("parsing payload: %w", err)
	}
	return pd, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
