package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/internal/logging"
	"github.com/dekarrin/bandbook/resources/pack"
	"github.com/dekarrin/bandbook/resources/s3"
	"github.com/dekarrin/bandbook/resources/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	testCases := []struct {
		name      string
		file      string
		content   string
		expect    Config
		expectErr bool
	}{
		{
			name: "full yaml",
			file: "bandbook.yml",
			content: `
resources:
  type: s3
  bucket: my-bucket
  key: res/bands.bbp
  region: eu-west-1
  endpoint: http://localhost:9000
  path_style: true
listen: ":9090"
logging:
  enabled: true
  provider: std
  file: bandbook.log
`,
			expect: Config{
				Resources: Resources{
					Type: ResourcesS3,
					S3: s3.Config{
						Bucket:    "my-bucket",
						Key:       "res/bands.bbp",
						Region:    "eu-west-1",
						Endpoint:  "http://localhost:9000",
						PathStyle: true,
					},
				},
				Listen: ":9090",
				Log: Log{
					Enabled:  true,
					Provider: bandbook.StdLog,
					File:     "bandbook.log",
				},
				Format: bandbook.YAML,
			},
		},
		{
			name:    "json",
			file:    "bandbook.json",
			content: `{"resources": {"type": "sqlite", "path": "data/bands.db"}}`,
			expect: Config{
				Resources: Resources{Type: ResourcesSQLite, Path: "data/bands.db"},
				Format:    bandbook.JSON,
			},
		},
		{
			name:    "empty yaml",
			file:    "bandbook.yaml",
			content: ``,
			expect:  Config{Format: bandbook.YAML},
		},
		{
			name:      "bad resource type",
			file:      "bandbook.yml",
			content:   "resources:\n  type: ftp\n",
			expectErr: true,
		},
		{
			name:      "bad log provider",
			file:      "bandbook.yml",
			content:   "logging:\n  provider: syslog\n",
			expectErr: true,
		},
		{
			name:      "unsupported extension",
			file:      "bandbook.toml",
			content:   "listen = ':8080'",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			actual, err := Load(path)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Load_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "bandbook.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Dump(t *testing.T) {
	cfg := Config{
		Resources: Resources{Type: ResourcesPack, Path: "res/bands.bbp"},
		Listen:    "localhost:8081",
		Log:       Log{Enabled: true, Provider: bandbook.Jellog},
	}

	for _, f := range bandbook.SupportedFormats() {
		t.Run(f.String(), func(t *testing.T) {
			assert := assert.New(t)
			cfg.Format = f

			data := Dump(cfg)

			path := filepath.Join(t.TempDir(), "bandbook."+f.Extensions()[0])
			require.NoError(t, os.WriteFile(path, data, 0644))

			loaded, err := Load(path)
			assert.NoError(err)
			assert.Equal(cfg, loaded)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	testCases := []struct {
		name   string
		input  Config
		expect Config
	}{
		{
			name:  "empty",
			input: Config{},
			expect: Config{
				Resources: Resources{Type: ResourcesFile, Path: DefaultFilePath},
				Listen:    DefaultListen,
			},
		},
		{
			name:  "pack without path",
			input: Config{Resources: Resources{Type: ResourcesPack}},
			expect: Config{
				Resources: Resources{Type: ResourcesPack, Path: DefaultPackPath},
				Listen:    DefaultListen,
			},
		},
		{
			name:  "sqlite without path",
			input: Config{Resources: Resources{Type: ResourcesSQLite}},
			expect: Config{
				Resources: Resources{Type: ResourcesSQLite, Path: DefaultSQLitePath},
				Listen:    DefaultListen,
			},
		},
		{
			name: "s3 without region",
			input: Config{Resources: Resources{
				Type: ResourcesS3,
				S3:   s3.Config{Bucket: "b", Key: "k.yml"},
			}},
			expect: Config{
				Resources: Resources{
					Type: ResourcesS3,
					S3:   s3.Config{Bucket: "b", Key: "k.yml", Region: s3.DefaultRegion},
				},
				Listen: DefaultListen,
			},
		},
		{
			name:  "enabled log gets jellog",
			input: Config{Log: Log{Enabled: true}, Listen: ":80"},
			expect: Config{
				Resources: Resources{Type: ResourcesFile, Path: DefaultFilePath},
				Listen:    ":80",
				Log:       Log{Enabled: true, Provider: bandbook.Jellog},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := tc.input.FillDefaults()

			assert.Equal(tc.expect, actual)
			assert.NoError(actual.Validate())
		})
	}
}

func Test_Config_Validate(t *testing.T) {
	valid := Config{}.FillDefaults()

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no resource type", mutate: func(c *Config) { c.Resources.Type = ResourcesNone }},
		{name: "unknown resource type", mutate: func(c *Config) { c.Resources.Type = "ftp" }},
		{name: "no path", mutate: func(c *Config) { c.Resources.Path = "" }},
		{name: "s3 without bucket", mutate: func(c *Config) {
			c.Resources = Resources{Type: ResourcesS3, S3: s3.Config{Key: "k.yml"}}
		}},
		{name: "s3 without key", mutate: func(c *Config) {
			c.Resources = Resources{Type: ResourcesS3, S3: s3.Config{Bucket: "b"}}
		}},
		{name: "bad listen", mutate: func(c *Config) { c.Listen = "localhost" }},
		{name: "enabled log without provider", mutate: func(c *Config) { c.Log = Log{Enabled: true} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func Test_ResourcesAt(t *testing.T) {
	testCases := []struct {
		path   string
		expect ResourceType
	}{
		{path: "bands.yml", expect: ResourcesFile},
		{path: "bands.json", expect: ResourcesFile},
		{path: "res/bands.bbp", expect: ResourcesPack},
		{path: "res/bands.BBP", expect: ResourcesPack},
		{path: "bands.db", expect: ResourcesSQLite},
		{path: "bands.sqlite", expect: ResourcesSQLite},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, Resources{Type: tc.expect, Path: tc.path}, ResourcesAt(tc.path))
		})
	}
}

func Test_Resources_Open(t *testing.T) {
	res := bandbook.Resources{
		bandbook.KeyNames:        {"Queen", "ABBA"},
		bandbook.KeyDescriptions: {"Rock band", "Pop band"},
	}
	expect := []bandbook.Band{
		{ID: 1, Name: "Queen", Description: "Rock band"},
		{ID: 2, Name: "ABBA", Description: "Pop band"},
	}

	dir := t.TempDir()

	ymlPath := filepath.Join(dir, "bands.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("band_names: [Queen, ABBA]\nband_descriptions: [Rock band, Pop band]\n"), 0644))

	packPath := filepath.Join(dir, "bands.bbp")
	require.NoError(t, pack.Write(packPath, res))

	dbPath := filepath.Join(dir, "bands.db")
	db, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Import(context.Background(), res))
	require.NoError(t, db.Close())

	testCases := []struct {
		name string
		r    Resources
	}{
		{name: "file", r: ResourcesAt(ymlPath)},
		{name: "pack", r: ResourcesAt(packPath)},
		{name: "sqlite", r: ResourcesAt(dbPath)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rp, err := tc.r.Open(context.Background())
			if !assert.NoError(err) {
				return
			}
			if c, ok := rp.(io.Closer); ok {
				defer c.Close()
			}

			st, err := bandbook.LoadStore(rp)
			if !assert.NoError(err) {
				return
			}
			assert.Equal(expect, st.All())
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := Resources{Type: "ftp"}.Open(context.Background())
		assert.Error(t, err)
	})
}

func Test_Log_Create(t *testing.T) {
	assert := assert.New(t)

	l, err := Log{}.Create()
	assert.NoError(err)
	assert.IsType(logging.NoOpLogger{}, l)

	l, err = Log{Enabled: true, Provider: bandbook.StdLog, File: filepath.Join(t.TempDir(), "b.log")}.Create()
	assert.NoError(err)
	assert.NotNil(l)
}
