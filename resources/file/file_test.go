package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/bandbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Decode(t *testing.T) {
	testCases := []struct {
		name        string
		data        string
		format      bandbook.Format
		expect      bandbook.Resources
		expectErrIs error
		expectErr   bool
	}{
		{
			name:   "yaml flow lists",
			data:   "band_names: [Queen, ABBA]\nband_descriptions: [Rock band, Pop band]\n",
			format: bandbook.YAML,
			expect: bandbook.Resources{
				bandbook.KeyNames:        {"Queen", "ABBA"},
				bandbook.KeyDescriptions: {"Rock band", "Pop band"},
			},
		},
		{
			name: "yaml block lists",
			data: "band_names:\n  - Queen\n  - ABBA\n" +
				"band_descriptions:\n  - Rock band\n  - \"\"\n",
			format: bandbook.YAML,
			expect: bandbook.Resources{
				bandbook.KeyNames:        {"Queen", "ABBA"},
				bandbook.KeyDescriptions: {"Rock band", ""},
			},
		},
		{
			name:   "yaml null list is empty",
			data:   "band_names:\nband_descriptions: []\n",
			format: bandbook.YAML,
			expect: bandbook.Resources{
				bandbook.KeyNames:        {},
				bandbook.KeyDescriptions: {},
			},
		},
		{
			name:   "json",
			data:   `{"band_names": ["Queen"], "band_descriptions": ["Rock band"]}`,
			format: bandbook.JSON,
			expect: bandbook.Resources{
				bandbook.KeyNames:        {"Queen"},
				bandbook.KeyDescriptions: {"Rock band"},
			},
		},
		{
			name:        "json not a map of lists",
			data:        `{"band_names": "Queen"}`,
			format:      bandbook.JSON,
			expectErrIs: bandbook.ErrDecodingFailure,
		},
		{
			name:        "malformed yaml",
			data:        "band_names: [Queen\n",
			format:      bandbook.YAML,
			expectErrIs: bandbook.ErrDecodingFailure,
		},
		{
			name:      "no format",
			data:      "band_names: [Queen]",
			format:    bandbook.NoFormat,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Decode([]byte(tc.data), tc.format)

			if tc.expectErrIs != nil {
				assert.ErrorIs(err, tc.expectErrIs)
				return
			}
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

func Test_Load(t *testing.T) {
	dir := t.TempDir()

	ymlPath := filepath.Join(dir, "bands.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("band_names: [Queen]\nband_descriptions: [Rock band]\n"), 0644))

	txtPath := filepath.Join(dir, "bands.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("Queen"), 0644))

	t.Run("yaml file", func(t *testing.T) {
		assert := assert.New(t)

		res, err := Load(ymlPath)

		assert.NoError(err)
		assert.Equal(bandbook.Resources{
			bandbook.KeyNames:        {"Queen"},
			bandbook.KeyDescriptions: {"Rock band"},
		}, res)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(txtPath)
		assert.ErrorContains(t, err, "incompatible format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func Test_Encode_Decode(t *testing.T) {
	res := bandbook.Resources{
		bandbook.KeyNames:        {"Queen", "ABBA"},
		bandbook.KeyDescriptions: {"Rock band", ""},
	}

	for _, f := range bandbook.SupportedFormats() {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(res, f)
			require.NoError(t, err)

			actual, err := Decode(data, f)
			require.NoError(t, err)
			assert.Equal(t, res, actual)
		})
	}
}
