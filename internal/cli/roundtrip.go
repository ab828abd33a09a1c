package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlsketch/sqlsketch"
)

// RoundtripOptions holds flags for the roundtrip command.
type RoundtripOptions struct {
	*RootOptions
}

// RoundtripResult is the roundtrip command's success payload.
type RoundtripResult struct {
	SQL      string   `json:"sql"`
	Complete bool     `json:"complete"`
	Notes    []string `json:"notes,omitempty"`
}

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RoundtripOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "roundtrip <query.sql>",
		Short: "Decompile a statement and recompile it",
		Long: `Decompile a SQL SELECT statement and immediately recompile the result.

Shows the canonical statement the model produces for a hand-written query,
which makes it easy to see what a lossy decompilation kept. Pass "-" to
read the statement from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(opts, args[0], cmd)
		},
	}

	return cmd
}

func runRoundtrip(opts *RoundtripOptions, sqlPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	catalog, err := loadCatalog(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	input, err := readInputFile(sqlPath)
	if err != nil {
		return formatter.Error(ErrCodeInput, fmt.Sprintf("reading query file: %v", err))
	}

	m, rep := sqlsketch.Decompile(catalog, string(input))

	if formatter.Format == "json" {
		return formatter.Success(RoundtripResult{
			SQL:      m.SQL(),
			Complete: rep.Complete,
			Notes:    rep.Notes,
		})
	}

	fmt.Fprintln(formatter.Writer, m.SQL())
	printNotes(formatter, rep)
	return nil
}
