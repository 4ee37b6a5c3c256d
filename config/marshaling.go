package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dekarrin/bandbook"
	"gopkg.in/yaml.v3"
)

type marshaledResources struct {
	Type      string `yaml:"type" json:"type"`
	Path      string `yaml:"path,omitempty" json:"path,omitempty"`
	Bucket    string `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	Key       string `yaml:"key,omitempty" json:"key,omitempty"`
	Region    string `yaml:"region,omitempty" json:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	PathStyle bool   `yaml:"path_style,omitempty" json:"path_style,omitempty"`
}

type marshaledLog struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Provider string `yaml:"provider" json:"provider"`
	File     string `yaml:"file,omitempty" json:"file,omitempty"`
}

type marshaledConfig struct {
	Resources marshaledResources `yaml:"resources" json:"resources"`
	Listen    string             `yaml:"listen" json:"listen"`
	Logging   marshaledLog       `yaml:"logging" json:"logging"`
}

func marshalConfig(cfg Config) marshaledConfig {
	return marshaledConfig{
		Resources: marshaledResources{
			Type:      cfg.Resources.Type.String(),
			Path:      cfg.Resources.Path,
			Bucket:    cfg.Resources.S3.Bucket,
			Key:       cfg.Resources.S3.Key,
			Region:    cfg.Resources.S3.Region,
			Endpoint:  cfg.Resources.S3.Endpoint,
			PathStyle: cfg.Resources.S3.PathStyle,
		},
		Listen: cfg.Listen,
		Logging: marshaledLog{
			Enabled:  cfg.Log.Enabled,
			Provider: cfg.Log.Provider.String(),
			File:     cfg.Log.File,
		},
	}
}

func unmarshalConfig(cfg *Config, mc marshaledConfig) error {
	var err error

	cfg.Resources.Type, err = ParseResourceType(mc.Resources.Type)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	cfg.Resources.Path = mc.Resources.Path
	cfg.Resources.S3.Bucket = mc.Resources.Bucket
	cfg.Resources.S3.Key = mc.Resources.Key
	cfg.Resources.S3.Region = mc.Resources.Region
	cfg.Resources.S3.Endpoint = mc.Resources.Endpoint
	cfg.Resources.S3.PathStyle = mc.Resources.PathStyle

	cfg.Listen = mc.Listen

	cfg.Log.Enabled = mc.Logging.Enabled
	cfg.Log.Provider, err = bandbook.ParseLogProvider(mc.Logging.Provider)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	cfg.Log.File = mc.Logging.File

	return nil
}

func decode(f bandbook.Format, data []byte) (Config, error) {
	var cfg Config
	var mc marshaledConfig
	var err error

	switch f {
	case bandbook.JSON:
		err = json.Unmarshal(data, &mc)
	case bandbook.YAML:
		err = yaml.Unmarshal(data, &mc)
	default:
		return cfg, fmt.Errorf("cannot unmarshal data in format %q", f.String())
	}

	if err != nil {
		return cfg, err
	}

	cfg.Format = f
	err = unmarshalConfig(&cfg, mc)
	return cfg, err
}

func encode(f bandbook.Format, c Config) ([]byte, error) {
	mc := marshalConfig(c)
	var err error
	var data []byte

	switch f {
	case bandbook.JSON:
		data, err = json.Marshal(mc)
	case bandbook.YAML:
		data, err = yaml.Marshal(mc)
	default:
		return nil, fmt.Errorf("cannot marshal data in format %q", f.String())
	}

	return data, err
}

// Dump dumps the configuration into the bytes in a formatted file. This is the
// complete representation of the current state of the Config, and if parsed by
// Load, would result in an equivalent config.
//
// The config will be dumped in the same format it was loaded with, or will
// default to YAML if the cfg was created without loading from a data stream.
//
// This function will cause a panic if there is a problem marshaling the config
// data in its format.
func Dump(cfg Config) []byte {
	f := cfg.Format
	if f == bandbook.NoFormat {
		f = bandbook.YAML
	}
	b, err := encode(f, cfg)
	if err != nil {
		panic(fmt.Sprintf("format encoding failed: %v", err))
	}
	return b
}

// Load loads a configuration from a JSON or YAML file. The format of the file
// is determined by examining its extension; files ending in .json are parsed as
// JSON files, and files ending in .yaml or .yml are parsed as YAML files. Other
// extensions are not supported. The extension is not case-sensitive.
//
// The returned Config does not have defaults filled in.
func Load(file string) (Config, error) {
	f := bandbook.DetectFormat(file)
	if f == bandbook.NoFormat {
		return Config{}, fmt.Errorf("%s: incompatible format; must be a %s file", file, bandbook.FormatList())
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", file, err)
	}

	cfg, err := decode(f, data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}
