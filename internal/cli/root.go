// Package cli implements the sqlsketch command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlsketch/sqlsketch"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	CatalogPath string
	Verbose     bool
	Format      string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sqlsketch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sqlsketch",
		Short: "sqlsketch - bidirectional SELECT builder",
		Long: `Compile visual query models to SQL and decompile SQL back into models.

Every command resolves table and column names against a schema catalog,
supplied as a YAML file via --catalog.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.CatalogPath, "catalog", "c", "", "schema catalog YAML file (required)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewDecompileCommand(opts))
	cmd.AddCommand(NewRoundtripCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadCatalog reads the catalog named by --catalog.
func loadCatalog(opts *RootOptions, formatter *OutputFormatter) (*sqlsketch.Catalog, error) {
	if opts.CatalogPath == "" {
		return nil, formatter.Error(ErrCodeCatalog, "missing required --catalog flag")
	}
	catalog, err := sqlsketch.LoadCatalogFile(opts.CatalogPath)
	if err != nil {
		return nil, formatter.Error(ErrCodeCatalog, err.Error())
	}
	formatter.VerboseLog("Loaded catalog with %d table(s) from %s", len(catalog.Tables), opts.CatalogPath)
	return catalog, nil
}

// readInputFile reads a command's file argument, with "-" meaning stdin.
func readInputFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
