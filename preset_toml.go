package ambient

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadPreset reads and validates a preset from a TOML file.
func LoadPreset(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()
	p, err := ReadPreset(bufio.NewReader(f))
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func ParsePreset(data []byte) (Preset, error) {
	return ReadPreset(bytes.NewReader(data))
}

// ReadPreset decodes and validates a TOML preset. Unknown keys are rejected.
func ReadPreset(r io.Reader) (Preset, error) {
	var p Preset
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Preset{}, fmt.Errorf("%w: %s", ErrInvalidParameter, strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Preset{}, fmt.Errorf("preset toml %d:%d: %w", row, col, err)
		}
		return Preset{}, err
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// WritePreset encodes p as TOML, e.g. to start a custom preset from a
// built-in one.
func WritePreset(w io.Writer, p Preset) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(p)
}
