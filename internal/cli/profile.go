package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantize-tools/quantcfg/internal/config"
	"github.com/quantize-tools/quantcfg/internal/profile"
	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// defaultProfileDB is the default profile database path.
const defaultProfileDB = "quantcfg.db"

// ProfileOptions holds flags shared by the profile subcommands.
type ProfileOptions struct {
	*RootOptions
	DB string // profile database path
}

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored configuration profiles",
		Long: `Manage named quantization configuration profiles.

Profiles are stored as append-only revisions in a SQLite database; saving
under an existing name creates a new revision and never rewrites history.`,
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", defaultProfileDB, "profile database path")

	cmd.AddCommand(newProfileSaveCommand(opts))
	cmd.AddCommand(newProfileListCommand(opts))
	cmd.AddCommand(newProfileShowCommand(opts))

	return cmd
}

func newProfileSaveCommand(opts *ProfileOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "save <name> <config-file>",
		Short:         "Save a configuration as a new profile revision",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileSave(opts, args[0], args[1], cmd)
		},
	}
}

func newProfileListCommand(opts *ProfileOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored profiles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileList(opts, cmd)
		},
	}
}

func newProfileShowCommand(opts *ProfileOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show the latest revision of a profile",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileShow(opts, args[0], cmd)
		},
	}
}

// SaveResult is the payload for a successful profile save.
type SaveResult struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

func runProfileSave(opts *ProfileOptions, name, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	params, err := config.Load(path)
	if err != nil {
		return outputError(formatter, err)
	}

	store, err := profile.Open(opts.DB)
	if err != nil {
		return outputError(formatter, err)
	}
	defer store.Close()

	revision, err := store.Save(cmd.Context(), name, params)
	if err != nil {
		return outputError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(SaveResult{Name: name, Revision: revision})
	}
	fmt.Fprintf(formatter.Writer, "✓ Saved profile %q (revision %s)\n", name, revision)
	return nil
}

func runProfileList(opts *ProfileOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	store, err := profile.Open(opts.DB)
	if err != nil {
		return outputError(formatter, err)
	}
	defer store.Close()

	infos, err := store.List(cmd.Context())
	if err != nil {
		return outputError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(formatter.Writer, "No profiles stored")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%s: %d revision(s)\n", info.Name, info.Revisions)
	}
	return nil
}

func runProfileShow(opts *ProfileOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	store, err := profile.Open(opts.DB)
	if err != nil {
		return outputError(formatter, err)
	}
	defer store.Close()

	rev, err := store.Get(cmd.Context(), name)
	if err != nil {
		return outputError(formatter, err)
	}

	tree := qparams.ToMap(rev.Params)
	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"name":     rev.Name,
			"revision": rev.ID,
			"seq":      rev.Seq,
			"params":   tree,
		})
	}
	fmt.Fprintf(formatter.Writer, "%s (revision %s, seq %d):\n", rev.Name, rev.ID, rev.Seq)
	printFlat(formatter, "  ", tree)
	return nil
}

// newFormatter builds the standard formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
