// Package pack reads and writes compiled band resource packs. A pack holds the
// same data as a resource file but in a binary form encoded with REZI, and is
// what an application bundles with itself so that it does not need to parse
// text on startup.
//
// Packs are conventionally stored with the Ext extension.
package pack

import (
	"fmt"
	"os"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/rezi/v2"
)

const (
	// Ext is the file extension of a pack file.
	Ext = ".bbp"

	// CurrentVersion is the version of the pack format written by this
	// package.
	CurrentVersion = 1

	magic = "BANDBOOK"
)

// Pack is a versioned set of resources.
type Pack struct {
	// Version is the format version of the pack. Zero means CurrentVersion
	// when encoding.
	Version int

	Resources bandbook.Resources
}

func (p Pack) MarshalBinary() ([]byte, error) {
	ver := p.Version
	if ver == 0 {
		ver = CurrentVersion
	}

	res := map[string][]string(p.Resources)
	if res == nil {
		res = map[string][]string{}
	}

	var enc []byte

	enc = append(enc, rezi.MustEnc(magic)...)
	enc = append(enc, rezi.MustEnc(ver)...)

	resData, err := rezi.Enc(res)
	if err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	enc = append(enc, resData...)

	return enc, nil
}

// UnmarshalBinary decodes a pack. Data that is not a pack, or is a pack of a
// version other than CurrentVersion, is rejected with an error that matches
// bandbook.ErrDecodingFailure.
func (p *Pack) UnmarshalBinary(data []byte) error {
	var decoded Pack
	var offset int

	var m string
	n, err := rezi.Dec(data, &m)
	if err != nil || m != magic {
		return bandbook.NewError("not a band resource pack", bandbook.ErrDecodingFailure)
	}
	offset += n

	// version
	n, err = rezi.Dec(data[offset:], &decoded.Version)
	if err != nil {
		return bandbook.NewError("version", err, bandbook.ErrDecodingFailure)
	}
	offset += n
	if decoded.Version != CurrentVersion {
		msg := fmt.Sprintf("unsupported pack version %d", decoded.Version)
		return bandbook.NewError(msg, bandbook.ErrDecodingFailure)
	}

	// resources
	var res map[string][]string
	_, err = rezi.Dec(data[offset:], &res)
	if err != nil {
		return bandbook.NewError("resources", err, bandbook.ErrDecodingFailure)
	}
	decoded.Resources = bandbook.Resources{}
	for k, v := range res {
		if v == nil {
			v = []string{}
		}
		decoded.Resources[k] = v
	}

	*p = decoded

	return nil
}

// Write encodes res as a pack of the current version and writes it to path,
// replacing any file already there.
func Write(path string, res bandbook.Resources) error {
	data, err := Pack{Resources: res}.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode pack: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}
	return nil
}

// Load reads the pack at path and returns its resources.
func Load(path string) (bandbook.Resources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Decode decodes the bytes of a pack and returns its resources.
func Decode(data []byte) (bandbook.Resources, error) {
	var p Pack
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p.Resources, nil
}
