package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/extkit/extpack/internal/fsutil"
	"github.com/extkit/extpack/internal/messages"
)

// ErrInvalidFormat reports a pack file matching neither accepted shape.
// A load that fails with it leaves all prior state untouched.
var ErrInvalidFormat = errors.New(messages.ManifestInvalidFormat)

// Decode parses pack data. Both the full export object and the legacy bare
// list of extension descriptors are accepted; anything else is a format error.
func Decode(data []byte) (*Pack, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrInvalidFormat
	}
	switch trimmed[0] {
	case '{':
		var pack Pack
		if err := json.Unmarshal(trimmed, &pack); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return &pack, nil
	case '[':
		var extensions []Extension
		if err := json.Unmarshal(trimmed, &extensions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return &Pack{Extensions: extensions}, nil
	default:
		return nil, ErrInvalidFormat
	}
}

// Encode renders the pack as pretty-printed JSON with a trailing newline.
func Encode(pack *Pack) ([]byte, error) {
	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestEncodeFailedFmt, err)
	}
	return append(data, '\n'), nil
}

// Load reads and decodes the pack file at path.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestReadFailedFmt, path, err)
	}
	return Decode(data)
}

// Save encodes the pack and writes it to path atomically.
func Save(path string, pack *Pack) error {
	data, err := Encode(pack)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}
