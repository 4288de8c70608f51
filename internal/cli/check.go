package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// newCheckCmd builds the check subcommand: resolve and verify without
// writing anything.
func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Resolve the declared enums and report diagnostics without generating",
		RunE: func(_ *cobra.Command, _ []string) error {
			p, _, err := resolvePlan(opts)
			if err != nil {
				return newExitError(ExitCodeCheckFailed, err)
			}

			reportDiagnostics(&p.Diagnostics)

			if p.Diagnostics.HasErrors() {
				return newExitError(ExitCodeCheckFailed, p.Diagnostics.Error())
			}

			for i := range p.Enums {
				ep := &p.Enums[i]
				slog.Info("resolved",
					"enum", ep.Name,
					"variants", len(ep.Policies),
					"conversions", len(ep.Conversions),
					"has_cause", ep.HasCause())
			}

			return nil
		},
	}
}
