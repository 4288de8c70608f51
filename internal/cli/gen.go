package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/declfile"
	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/gen"
	"errenum-generator/internal/plan"
)

// newGenCmd builds the gen subcommand: the full pipeline from
// declaration file to written Go source.
func newGenCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go source for the declared enums",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGen(opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutputDir, "out", "./generated", "Output directory for generated files")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name for generated files (overrides the declaration file)")
	cmd.Flags().BoolVar(&opts.DumpPlan, "dump-plan", false, "Dump the resolved plan to stderr before generating")

	return cmd
}

func runGen(opts *options) error {
	p, df, err := resolvePlan(opts)
	if err != nil {
		return newExitError(ExitCodeGenerationFailed, err)
	}

	if p.Diagnostics.HasErrors() {
		reportDiagnostics(&p.Diagnostics)
		return newExitError(ExitCodeGenerationFailed, p.Diagnostics.Error())
	}
	reportDiagnostics(&p.Diagnostics)

	if opts.DumpPlan {
		spew.Fdump(os.Stderr, p)
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.OutputDir = opts.OutputDir
	if df.Package != "" {
		cfg.PackageName = df.Package
	}
	if opts.Package != "" {
		cfg.PackageName = opts.Package
	}

	files, err := gen.NewGenerator(cfg).Generate(p)
	if err != nil {
		return newExitError(ExitCodeGenerationFailed, err)
	}

	if err := gen.WriteFiles(files, cfg.OutputDir); err != nil {
		return newExitError(ExitCodeGenerationFailed, err)
	}

	for _, f := range files {
		slog.Info("generated", "file", f.Filename, "bytes", len(f.Content))
	}

	return nil
}

// resolvePlan loads the declaration file and runs resolution plus
// optional type verification. Shared by gen and check.
func resolvePlan(opts *options) (*plan.Plan, *declfile.DeclFile, error) {
	df, err := declfile.LoadFile(opts.DeclPath)
	if err != nil {
		return nil, nil, err
	}

	cfg := plan.ResolutionConfig{
		CauseTypeNames: opts.ErrorTypes,
		MatchQualified: opts.MatchQualified,
	}

	p, err := plan.NewResolver(cfg).BuildAll(df.Declarations())
	if err != nil {
		return nil, nil, err
	}

	if len(opts.Verify) > 0 {
		verifier := analyze.NewVerifier()
		if err := verifier.LoadPackages(opts.Verify...); err != nil {
			return nil, nil, fmt.Errorf("type verification: %w", err)
		}

		verifier.VerifyPlan(p, &p.Diagnostics)
	}

	return p, df, nil
}

// reportDiagnostics logs every diagnostic at its matching level.
func reportDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		switch d.Severity {
		case diagnostic.SeverityError:
			slog.Error(d.String())
		case diagnostic.SeverityWarning:
			slog.Warn(d.String())
		default:
			slog.Debug(d.String())
		}
	}
}
