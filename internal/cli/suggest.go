package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlsketch/sqlsketch"
)

// SuggestOptions holds flags for the suggest command.
type SuggestOptions struct {
	*RootOptions
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuggestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suggest <table>...",
		Short: "Suggest joins between catalog tables",
		Long: `Suggest equality joins for a set of catalog tables.

Suggestions come from declared foreign keys first, then from primary-key
naming conventions (a "site" table's "id" matching another table's
"site_id" column).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(opts, args, cmd)
		},
	}

	return cmd
}

func runSuggest(opts *SuggestOptions, tables []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	catalog, err := loadCatalog(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	m := sqlsketch.NewQueryModel(catalog)
	for _, name := range tables {
		if _, err := m.AddTable(name, false); err != nil {
			return formatter.Error(ErrCodeModel, fmt.Sprintf("adding table %q: %v", name, err))
		}
	}

	suggestions := sqlsketch.SuggestJoins(m)
	formatter.VerboseLog("Found %d suggestion(s) across %d table(s)", len(suggestions), len(tables))

	if formatter.Format == "json" {
		return formatter.Success(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Fprintln(formatter.Writer, "No join suggestions")
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintf(formatter.Writer, "%s %s.%s = %s.%s\n",
			s.Type, s.LeftTable, s.LeftColumn, s.RightTable, s.RightColumn)
	}
	return nil
}
