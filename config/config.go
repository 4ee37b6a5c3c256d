// Package config contains configuration options for bandbook programs: where
// band resources are loaded from, where the HTTP API listens, and how logging
// is done.
package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/internal/logging"
	"github.com/dekarrin/bandbook/resources/pack"
	"github.com/dekarrin/bandbook/resources/s3"
)

const (
	DefaultListen     = "localhost:8080"
	DefaultFilePath   = "bands.yml"
	DefaultPackPath   = "bands" + pack.Ext
	DefaultSQLitePath = "bands.db"
)

// ResourceType is a kind of place that band resources are loaded from.
type ResourceType string

const (
	ResourcesNone   ResourceType = ""
	ResourcesFile   ResourceType = "file"
	ResourcesPack   ResourceType = "pack"
	ResourcesSQLite ResourceType = "sqlite"
	ResourcesS3     ResourceType = "s3"
)

func (rt ResourceType) String() string {
	return string(rt)
}

// ParseResourceType parses the name of a ResourceType. The empty string is
// ResourcesNone.
func ParseResourceType(s string) (ResourceType, error) {
	switch rt := ResourceType(strings.ToLower(s)); rt {
	case ResourcesNone, ResourcesFile, ResourcesPack, ResourcesSQLite, ResourcesS3:
		return rt, nil
	default:
		return ResourcesNone, fmt.Errorf("resource type not one of 'file', 'pack', 'sqlite', or 's3': %q", s)
	}
}

// Resources locates the band resources.
type Resources struct {
	// Type is the kind of resource source. It also determines which of the
	// other fields are used.
	Type ResourceType

	// Path is the path on disk to the resource file, pack, or database. Used
	// by ResourcesFile, ResourcesPack, and ResourcesSQLite.
	Path string

	// S3 locates the resource object for ResourcesS3.
	S3 s3.Config
}

// ResourcesAt returns a Resources for the file at path, with the type of
// resource guessed from its extension: pack.Ext is a pack, .db and .sqlite are
// SQLite databases, and anything else is a resource file.
func ResourcesAt(path string) Resources {
	rt := ResourcesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case pack.Ext:
		rt = ResourcesPack
	case ".db", ".sqlite":
		rt = ResourcesSQLite
	}
	return Resources{Type: rt, Path: path}
}

func (r Resources) FillDefaults() Resources {
	newR := r

	if newR.Type == ResourcesNone {
		newR.Type = ResourcesFile
	}

	switch newR.Type {
	case ResourcesFile:
		if newR.Path == "" {
			newR.Path = DefaultFilePath
		}
	case ResourcesPack:
		if newR.Path == "" {
			newR.Path = DefaultPackPath
		}
	case ResourcesSQLite:
		if newR.Path == "" {
			newR.Path = DefaultSQLitePath
		}
	case ResourcesS3:
		if newR.S3.Region == "" {
			newR.S3.Region = s3.DefaultRegion
		}
	}

	return newR
}

func (r Resources) Validate() error {
	switch r.Type {
	case ResourcesFile, ResourcesPack, ResourcesSQLite:
		if r.Path == "" {
			return fmt.Errorf("path: must not be empty")
		}
	case ResourcesS3:
		if r.S3.Bucket == "" {
			return fmt.Errorf("bucket: must not be empty")
		}
		if r.S3.Key == "" {
			return fmt.Errorf("key: must not be empty")
		}
	case ResourcesNone:
		return fmt.Errorf("type: must not be empty")
	default:
		return fmt.Errorf("type: unknown resource type %q", r.Type)
	}
	return nil
}

// Log contains logging options.
type Log struct {
	// Enabled is whether to enable built-in logging statements.
	Enabled bool

	// Provider must be the name of one of the logging providers. If set to
	// None or unset, it will default to Jellog.
	Provider bandbook.LogProvider

	// File to log to. If not set, all logging will be done to stderr and it
	// will display all logging statements. If set, the file will receive all
	// levels of log messages and stderr will show only those of Info level or
	// higher.
	File string
}

// Create returns the Logger that log configures. If log is not enabled, this
// is a NoOpLogger.
func (log Log) Create() (bandbook.Logger, error) {
	if !log.Enabled {
		return logging.NoOpLogger{}, nil
	}
	return logging.New(log.Provider, log.File)
}

func (log Log) FillDefaults() Log {
	newLog := log

	if newLog.Enabled && newLog.Provider == bandbook.NoLog {
		newLog.Provider = bandbook.Jellog
	}

	return newLog
}

func (log Log) Validate() error {
	if log.Enabled && log.Provider == bandbook.NoLog {
		return fmt.Errorf("provider: must not be empty")
	}

	return nil
}

// Config is a complete configuration for a bandbook program.
type Config struct {
	// Resources is where the bands are loaded from. Defaults to the resource
	// file DefaultFilePath.
	Resources Resources

	// Listen is the address that the HTTP API listens on, in host:port form.
	// Defaults to DefaultListen.
	Listen string

	// Log is used to configure the built-in logging system. It can be left
	// blank to disable logging entirely.
	Log Log

	// Format is the format the config was loaded from, used in Dump.
	Format bandbook.Format
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	newCFG.Resources = newCFG.Resources.FillDefaults()
	newCFG.Log = newCFG.Log.FillDefaults()
	if newCFG.Listen == "" {
		newCFG.Listen = DefaultListen
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if err := cfg.Resources.Validate(); err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	if err := cfg.Log.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
