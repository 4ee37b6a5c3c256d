package bandbook

import (
	"path/filepath"
	"strings"
)

// Format is a text encoding for configuration and resource files.
type Format int

const (
	NoFormat Format = iota
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "YAML"
	case JSON:
		return "JSON"
	default:
		return "NoFormat"
	}
}

// Extensions returns the file extensions, without the leading dot, that files
// of format f use.
func (f Format) Extensions() []string {
	switch f {
	case YAML:
		return []string{"yaml", "yml"}
	case JSON:
		return []string{"json", "jsn"}
	default:
		return nil
	}
}

// SupportedFormats returns every Format except NoFormat.
func SupportedFormats() []Format {
	return []Format{JSON, YAML}
}

// DetectFormat detects the format of a file from its extension. The extension
// is not case-sensitive. Returns NoFormat if the format could not be detected.
func DetectFormat(file string) Format {
	ext := strings.ToLower(filepath.Ext(file))
	ext = strings.TrimPrefix(ext, ".")

	for _, f := range SupportedFormats() {
		for _, checkedExt := range f.Extensions() {
			if ext == checkedExt {
				return f
			}
		}
	}

	return NoFormat
}

// FormatList gives a human-readable list of the extensions of all supported
// formats, such as ".json, .jsn, .yaml, or .yml", for use in error messages.
func FormatList() string {
	var exts []string
	for _, f := range SupportedFormats() {
		for _, ext := range f.Extensions() {
			exts = append(exts, "."+ext)
		}
	}

	if len(exts) < 2 {
		return strings.Join(exts, "")
	}
	return strings.Join(exts[:len(exts)-1], ", ") + ", or " + exts[len(exts)-1]
}
