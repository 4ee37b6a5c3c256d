// Package file reads band resources from YAML and JSON files. The top level of
// a resource file maps resource keys to lists of strings:
//
//	band_names: [Queen, ABBA]
//	band_descriptions: [Rock band, Pop band]
package file

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dekarrin/bandbook"
	"gopkg.in/yaml.v3"
)

// Load reads the resource file at path. Its format is determined by its
// extension; see bandbook.DetectFormat.
func Load(path string) (bandbook.Resources, error) {
	f := bandbook.DetectFormat(path)
	if f == bandbook.NoFormat {
		return nil, fmt.Errorf("%s: incompatible format; must be a %s file", path, bandbook.FormatList())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Decode decodes resource data in the given format. Any array that is present
// but null decodes as an empty array. If the data cannot be decoded, the
// returned error will match bandbook.ErrDecodingFailure.
func Decode(data []byte, f bandbook.Format) (bandbook.Resources, error) {
	var raw map[string][]string
	var err error

	switch f {
	case bandbook.JSON:
		err = json.Unmarshal(data, &raw)
	case bandbook.YAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("cannot decode data in format %q", f.String())
	}

	if err != nil {
		return nil, bandbook.NewError("", err, bandbook.ErrDecodingFailure)
	}

	res := bandbook.Resources{}
	for k, v := range raw {
		if v == nil {
			v = []string{}
		}
		res[k] = v
	}
	return res, nil
}

// Encode encodes res in the given format.
func Encode(res bandbook.Resources, f bandbook.Format) ([]byte, error) {
	raw := map[string][]string(res)

	switch f {
	case bandbook.JSON:
		return json.MarshalIndent(raw, "", "  ")
	case bandbook.YAML:
		return yaml.Marshal(raw)
	default:
		return nil, fmt.Errorf("cannot encode data in format %q", f.String())
	}
}
