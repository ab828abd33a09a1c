package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlsketch/sqlsketch"
)

// DecompileOptions holds flags for the decompile command.
type DecompileOptions struct {
	*RootOptions
	Output string // output file path
}

// DecompileResult is the decompile command's success payload.
type DecompileResult struct {
	State    sqlsketch.State `json:"state"`
	Complete bool            `json:"complete"`
	Notes    []string        `json:"notes,omitempty"`
}

// NewDecompileCommand creates the decompile command.
func NewDecompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decompile <query.sql>",
		Short: "Decompile a SELECT statement into a query model",
		Long: `Decompile a SQL SELECT statement back into a query model snapshot.

Decompilation is best effort: constructs the model cannot hold (aggregate
functions, OR-grouped predicates, unknown tables) are dropped and reported
as notes. Pass "-" to read the statement from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runDecompile(opts *DecompileOptions, sqlPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	catalog, err := loadCatalog(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	input, err := readInputFile(sqlPath)
	if err != nil {
		return formatter.Error(ErrCodeInput, fmt.Sprintf("reading query file: %v", err))
	}

	formatter.VerboseLog("Statement kind: %s", sqlsketch.StatementKind(string(input)))

	m, rep := sqlsketch.Decompile(catalog, string(input))

	data, err := sqlsketch.MarshalState(m.Snapshot())
	if err != nil {
		return formatter.Error(ErrCodeState, err.Error())
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, append(data, '\n'), 0644); err != nil {
			return formatter.Error(ErrCodeWrite, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote state to %s", opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(DecompileResult{
			State:    m.Snapshot(),
			Complete: rep.Complete,
			Notes:    rep.Notes,
		})
	}

	fmt.Fprintln(formatter.Writer, string(data))
	printNotes(formatter, rep)
	return nil
}

// printNotes reports dropped constructs after text output.
func printNotes(formatter *OutputFormatter, rep sqlsketch.Report) {
	if rep.Complete {
		return
	}
	fmt.Fprintln(formatter.ErrWriter, "Partial decompilation:")
	for _, note := range rep.Notes {
		fmt.Fprintf(formatter.ErrWriter, "  - %s\n", note)
	}
}
