package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantize-tools/quantcfg/internal/config"
	"github.com/quantize-tools/quantcfg/internal/legacy"
	"github.com/quantize-tools/quantcfg/internal/profile"
	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Output  string // output file path
	Profile string // load from a stored profile instead of a file
	DB      string // profile database path
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate [config-file]",
		Short: "Translate a configuration to the legacy format",
		Long: `Translate an advanced quantization configuration into the flat legacy
dictionary schema.

The configuration is read from a YAML or CUE file, or from a stored
profile with --profile. Translation fails if the configuration holds any
option the legacy format cannot represent; nothing is dropped silently.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "translate a stored profile instead of a file")
	cmd.Flags().StringVar(&opts.DB, "db", defaultProfileDB, "profile database path")

	return cmd
}

func runTranslate(opts *TranslateOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	params, source, err := resolveParams(cmd, opts, args)
	if err != nil {
		return outputError(formatter, err)
	}
	formatter.VerboseLog("Loaded configuration from %s", source)

	result, err := legacy.Translate(params)
	if err != nil {
		return outputError(formatter, err)
	}

	data, err := legacy.MarshalCanonical(result)
	if err != nil {
		return outputError(formatter, err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, append(data, '\n'), 0644); err != nil {
			wrapped := fmt.Errorf("writing output file: %w", err)
			_ = formatter.Error(ErrCodeWriteFailed, wrapped.Error(), nil)
			return WrapExitError(ExitCommandError, wrapped.Error(), err)
		}
		formatter.VerboseLog("Wrote legacy configuration to %s", opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, string(data))
	return nil
}

// resolveParams loads the configuration from the file argument or, with
// --profile, from the profile store. Exactly one source must be given.
func resolveParams(cmd *cobra.Command, opts *TranslateOptions, args []string) (*qparams.AdvancedQuantizationParams, string, error) {
	switch {
	case opts.Profile != "" && len(args) > 0:
		return nil, "", fmt.Errorf("pass a config file or --profile, not both")
	case opts.Profile != "":
		store, err := profile.Open(opts.DB)
		if err != nil {
			return nil, "", err
		}
		defer store.Close()

		rev, err := store.Get(cmd.Context(), opts.Profile)
		if err != nil {
			return nil, "", err
		}
		return rev.Params, fmt.Sprintf("profile %q (revision %s)", opts.Profile, rev.ID), nil
	case len(args) > 0:
		params, err := config.Load(args[0])
		if err != nil {
			return nil, "", err
		}
		return params, args[0], nil
	default:
		return nil, "", fmt.Errorf("pass a config file or --profile")
	}
}
