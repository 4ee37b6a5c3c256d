package cli

import (
	"fmt"

	"github.com/dekarrin/bandbook/resources/sqlite"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed SRC DB",
		Short: "Load band resources into a SQLite database",
		Long: `Load the band resources in SRC into the SQLite resource database DB,
creating it if needed. Existing band keys in DB are replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(args[0], args[1], cmd)
		},
	}

	return cmd
}

func runSeed(src, dbPath string, cmd *cobra.Command) (err error) {
	res, st, err := readResources(cmd.Context(), src)
	if err != nil {
		return err
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close sqlite: %w", closeErr)
		}
	}()

	if err := db.Import(cmd.Context(), res); err != nil {
		return fmt.Errorf("seed %s: %w", dbPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d band(s) into %s\n", st.Len(), dbPath)
	return nil
}
