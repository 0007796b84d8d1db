package board

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/errors"
)

// Format is a board file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything that is not
// .json is read as TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Parse decodes, normalizes and validates a board.
func Parse(data []byte, format Format) (*Board, error) {
	var b Board
	switch format {
	case FormatTOML, "":
		md, err := toml.Decode(string(data), &b)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "decode toml board")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidBoard, "unknown board key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "decode json board")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported board format %q", format)
	}

	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ReadFile reads and parses the board at path.
func ReadFile(path string) (*Board, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read board %s", path)
	}
	return Parse(data, FormatFromPath(path))
}

// Marshal encodes the board.
func (b *Board) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(b, "", "  ")
	case FormatTOML, "":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(b); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported board format %q", format)
}

// Hash identifies the layout-relevant content of the board: everything but
// its id. Viewport and grid defaults are applied first, so spelling out a
// default does not change the hash.
func (b *Board) Hash() string {
	c := *b
	c.ID = ""
	c.Grid = c.Grid.WithDefaults()
	c.Viewport = c.Viewport.WithDefaults()
	data, _ := json.Marshal(c)
	return cache.Hash(data)
}
