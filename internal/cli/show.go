package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quantize-tools/quantcfg/internal/config"
	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Full bool // show the full serialized tree, not only overrides
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <config-file>",
		Short: "Show a configuration's explicitly-set fields",
		Long: `Show which fields of a configuration are explicitly set per parameter
group. Unset fields inherit defaults elsewhere and are omitted.

With --full, the complete serialized parameter tree is shown instead,
including unset fields.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Full, "full", false, "show the full serialized tree")

	return cmd
}

func runShow(opts *ShowOptions, path string, cmd *cobra.Command) error {
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

	if opts.Full {
		return outputShow(formatter, qparams.ToMap(params))
	}
	return outputShow(formatter, groupChanges(params))
}

// groupChanges collects the explicitly-set fields of every leaf parameter
// group plus the general scalar knobs.
func groupChanges(p *qparams.AdvancedQuantizationParams) map[string]map[string]any {
	return map[string]map[string]any{
		"general": {
			"overflow_fix":            string(p.OverflowFix),
			"quantize_outputs":        p.QuantizeOutputs,
			"inplace_statistics":      p.InplaceStatistics,
			"disable_bias_correction": p.DisableBiasCorrection,
		},
		"activations_quantization_params":        qparams.Changes(p.ActivationsQuantizationParams),
		"weights_quantization_params":            qparams.Changes(p.WeightsQuantizationParams),
		"activations_range_estimator_params.min": qparams.Changes(p.ActivationsRangeEstimatorParams.Min),
		"activations_range_estimator_params.max": qparams.Changes(p.ActivationsRangeEstimatorParams.Max),
		"weights_range_estimator_params.min":     qparams.Changes(p.WeightsRangeEstimatorParams.Min),
		"weights_range_estimator_params.max":     qparams.Changes(p.WeightsRangeEstimatorParams.Max),
		"bias_correction_params":                 qparams.Changes(p.BiasCorrectionParams),
	}
}

func outputShow(formatter *OutputFormatter, data any) error {
	if formatter.Format == "json" {
		return formatter.Success(data)
	}

	// Text rendering: indented "key: value" lines, keys sorted for
	// deterministic output. Empty groups are omitted.
	switch m := data.(type) {
	case map[string]map[string]any:
		for _, group := range sortedMapKeys(m) {
			changes := m[group]
			if len(changes) == 0 {
				continue
			}
			fmt.Fprintf(formatter.Writer, "%s:\n", group)
			printFlat(formatter, "  ", changes)
		}
	case map[string]any:
		printFlat(formatter, "", m)
	}
	return nil
}

func printFlat(formatter *OutputFormatter, indent string, m map[string]any) {
	for _, k := range sortedMapKeys(m) {
		if nested, ok := m[k].(map[string]any); ok {
			fmt.Fprintf(formatter.Writer, "%s%s:\n", indent, k)
			printFlat(formatter, indent+"  ", nested)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s%s: %v\n", indent, k, m[k])
	}
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
