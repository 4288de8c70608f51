package cli

import (
	"github.com/spf13/cobra"

	"errenum-generator/internal/logging"
)

// options holds the flag values shared by the subcommands.
type options struct {
	DeclPath       string
	OutputDir      string
	Package        string
	ErrorTypes     []string
	MatchQualified bool
	Verify         []string
	DumpPlan       bool
	Verbose        bool
}

// NewRootCmd wires CLI flags to configuration and registers the
// gen and check subcommands.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "errenum-generator",
		Short:         "Generate Error, Unwrap, and conversion boilerplate for error enums",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Configure(opts.Verbose)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.DeclPath, "decl", "f", "errors.yaml", "Path to the enum declaration file")
	cmd.PersistentFlags().StringSliceVar(&opts.ErrorTypes, "error-types", []string{"Error"}, "Type names treated as error-like during inference")
	cmd.PersistentFlags().BoolVar(&opts.MatchQualified, "match-qualified", false, "Match --error-types against fully qualified references")
	cmd.PersistentFlags().StringSliceVar(&opts.Verify, "verify", nil, "Go package patterns to load for type verification")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newGenCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))

	return cmd
}
