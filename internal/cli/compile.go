package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlsketch/sqlsketch"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompileResult is the compile command's success payload.
type CompileResult struct {
	SQL string `json:"sql"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <state.json>",
		Short: "Compile a saved query model to SQL",
		Long: `Compile a saved query model snapshot to a SQL SELECT statement.

The snapshot is restored against the catalog and rendered deterministically,
so the same state always produces the same statement.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, statePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	catalog, err := loadCatalog(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	data, err := readInputFile(statePath)
	if err != nil {
		return formatter.Error(ErrCodeInput, fmt.Sprintf("reading state file: %v", err))
	}

	st, err := sqlsketch.UnmarshalState(data)
	if err != nil {
		return formatter.Error(ErrCodeState, err.Error())
	}
	formatter.VerboseLog("Restoring %d table(s), %d join(s), %d condition(s)",
		len(st.Tables), len(st.Joins), len(st.Conditions))

	sql := sqlsketch.RestoreState(catalog, st).SQL()

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(sql+"\n"), 0644); err != nil {
			return formatter.Error(ErrCodeWrite, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote SQL to %s", opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(CompileResult{SQL: sql})
	}
	fmt.Fprintln(formatter.Writer, sql)
	return nil
}
