// Package cli holds the cobra commands of the bandbook executable.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// EnvConfig names the environment variable that supplies the config file
	// path when --config is not given.
	EnvConfig = "BANDBOOK_CONFIG"

	defaultConfigFile = "bandbook.yml"
	defaultEnvFile    = ".env"
)

// loadDirectory builds the Directory that commands read from.
var loadDirectory = bandbook.Instance

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile    string
	Resources     string
	ResourcesType config.ResourceType
	EnvFile       string
	Verbose       bool

	configGiven bool
}

// NewRootCommand creates the root command for the bandbook CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bandbook",
		Short: "Look up bands by ID",
		Long: `Bandbook loads a table of band names and descriptions once and answers
lookups by 1-based band ID, from the command line or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load env file %q: %w", opts.EnvFile, err)
			}

			opts.configGiven = cmd.Flags().Changed("config")
			if !opts.configGiven {
				if envConf := os.Getenv(EnvConfig); envConf != "" {
					opts.ConfigFile = envConf
					opts.configGiven = true
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", defaultConfigFile, "Path to configuration file (JSON or YAML)")
	cmd.PersistentFlags().StringVarP(&opts.Resources, "resources", "r", "", "Read bands from this resource file, pack, or SQLite DB instead of the configured resources")
	cmd.PersistentFlags().VarP(resourceTypeFlag{t: &opts.ResourcesType}, "type", "t", "Read --resources as this type (file, pack, or sqlite) instead of inferring it from the extension")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", defaultEnvFile, "Load environment variables from this file if it exists")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable logging")

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewPackCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// loadConfig reads the configuration the flags point to. A config file that
// was never asked for by name is allowed to be missing.
func (opts *RootOptions) loadConfig() (config.Config, error) {
	var cfg config.Config

	loaded, err := config.Load(opts.ConfigFile)
	if err != nil {
		if opts.configGiven || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	} else {
		cfg = loaded
	}

	if opts.Resources != "" {
		cfg.Resources = config.ResourcesAt(opts.Resources)
		if opts.ResourcesType != config.ResourcesNone {
			cfg.Resources.Type = opts.ResourcesType
		}
	} else if opts.ResourcesType != config.ResourcesNone {
		return cfg, bandbook.NewError("--type requires --resources", bandbook.ErrBadArgument)
	}
	if opts.Verbose {
		cfg.Log.Enabled = true
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// directory opens the configured resources and hands them to loadDirectory.
func directory(ctx context.Context, cfg config.Config, log bandbook.Logger) (*bandbook.Directory, error) {
	rp, err := cfg.Resources.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open resources: %w", err)
	}
	if c, ok := rp.(io.Closer); ok {
		defer c.Close()
	}

	dir, err := loadDirectory(rp)
	if err != nil {
		return nil, fmt.Errorf("load bands: %w", err)
	}

	log.Debugf("loaded %d band(s) from %s resources, snapshot %s", dir.Store().Len(), cfg.Resources.Type, dir.Store().Snapshot())
	return dir, nil
}

// resourceTypeFlag accepts the name of a resource type that has a path.
type resourceTypeFlag struct {
	t *config.ResourceType
}

var _ pflag.Value = resourceTypeFlag{}

func (f resourceTypeFlag) String() string {
	if f.t == nil {
		return ""
	}
	return string(*f.t)
}

func (f resourceTypeFlag) Set(s string) error {
	rt, err := config.ParseResourceType(s)
	if err != nil {
		return err
	}
	if rt == config.ResourcesS3 {
		return fmt.Errorf("s3 resources must be set in the config file")
	}
	*f.t = rt
	return nil
}

func (f resourceTypeFlag) Type() string {
	return "type"
}

func writeBand(w io.Writer, b bandbook.Band) {
	fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Name, b.Description)
}
