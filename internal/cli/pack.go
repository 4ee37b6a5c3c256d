package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/config"
	"github.com/dekarrin/bandbook/resources/pack"
	"github.com/spf13/cobra"
)

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack SRC DEST",
		Short: "Compile band resources into a binary pack",
		Long: `Compile the band resources in SRC into a binary resource pack at DEST.

SRC may be a YAML or JSON resource file, another pack, or a SQLite resource
database. The resources must build a valid band table or nothing is written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(args[0], args[1], cmd)
		},
	}

	return cmd
}

func runPack(src, dest string, cmd *cobra.Command) error {
	if !strings.EqualFold(filepath.Ext(dest), pack.Ext) {
		return bandbook.NewError(fmt.Sprintf("pack destination %q must end in %s", dest, pack.Ext), bandbook.ErrBadArgument)
	}

	res, st, err := readResources(cmd.Context(), src)
	if err != nil {
		return err
	}

	if err := pack.Write(dest, res); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "packed %d band(s) into %s\n", st.Len(), dest)
	return nil
}

// readResources loads the band keys at path and checks that they build a
// Store. Only the band keys are returned.
func readResources(ctx context.Context, path string) (bandbook.Resources, *bandbook.Store, error) {
	rp, err := config.ResourcesAt(path).Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	if c, ok := rp.(io.Closer); ok {
		defer c.Close()
	}

	res := bandbook.Resources{}
	for _, key := range []string{bandbook.KeyNames, bandbook.KeyDescriptions} {
		res[key], err = rp.StringArray(key)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: read %s: %w", path, key, err)
		}
	}

	st, err := bandbook.LoadStore(res)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return res, st, nil
}
