package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantize-tools/quantcfg/internal/config"
	"github.com/quantize-tools/quantcfg/internal/legacy"
)

// ValidationResult holds validation results for one configuration.
type ValidationResult struct {
	Valid            bool   `json:"valid"`
	LegacyCompatible bool   `json:"legacy_compatible"`
	Reason           string `json:"reason,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration without emitting output",
		Long: `Validate an advanced quantization configuration.

Checks that the document decodes against the schema and dry-runs the
legacy translator, reporting unsupported fields or range-estimator
combinations without writing any output. A configuration that loads but
cannot be translated is still usable by the modern pipeline; it is
reported as legacy-incompatible rather than invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	params, err := config.Load(path)
	if err != nil {
		return outputError(formatter, err)
	}
	formatter.VerboseLog("Loaded configuration from %s", path)

	result := ValidationResult{Valid: true, LegacyCompatible: true}
	if _, err := legacy.Translate(params); err != nil {
		result.LegacyCompatible = false
		result.Reason = err.Error()
	}

	if formatter.Format == "json" {
		if result.LegacyCompatible {
			return formatter.Success(result)
		}
		if err := formatter.Success(result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, result.Reason)
	}

	if result.LegacyCompatible {
		fmt.Fprintf(formatter.Writer, "✓ %s is valid and legacy-compatible\n", path)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✗ %s is valid but not representable in the legacy format\n", path)
	fmt.Fprintf(formatter.Writer, "  %s\n", result.Reason)
	return NewExitError(ExitFailure, result.Reason)
}
