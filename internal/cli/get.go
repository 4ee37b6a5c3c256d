package cli

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/internal/logging"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show the band with the given ID",
		Long: `Show the band with the given 1-based ID as a tab-separated line of ID,
name, and description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, idArg string, cmd *cobra.Command) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return bandbook.NewError(fmt.Sprintf("band ID %q is not an integer", idArg), bandbook.ErrBadArgument)
	}

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

	b, ok := dir.Band(id)
	if !ok {
		return bandbook.NewError(fmt.Sprintf("no band with ID %d", id), bandbook.ErrNotFound)
	}

	writeBand(cmd.OutOrStdout(), b)
	return nil
}
