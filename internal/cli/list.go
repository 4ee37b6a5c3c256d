package cli

import (
	"github.com/dekarrin/bandbook/internal/logging"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every band",
		Long:  `Show every band in ID order, one tab-separated line per band.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := cfg.Log.Create()
	if err != nil {
		return err
	}
	defer logging.Close(log)

	dir, err := directory(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, b := range dir.Bands() {
		writeBand(out, b)
	}
	return nil
}
