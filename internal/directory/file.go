package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gadsby/notify-arrival/internal/domain/presence"
)

var (
	// ErrMissing is returned when the name file does not exist.
	ErrMissing = errors.New("name file not found")
	// ErrMalformed is returned when the name file is not a flat map of strings.
	ErrMalformed = errors.New("name file is malformed")
)

// File reads the name directory from a JSON or YAML file.
type File struct {
	// path is the filesystem location of the name file.
	path string
}

// NewFile returns a directory backed by the file at path.
func NewFile(path string) *File {
	return &File{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the name file.
func (f *File) Path() string {
	return f.path
}

// Load reads and decodes the file. Keys are normalized hardware ids, so any
// casing or unpadded groups in the file resolve to the same entry.
func (f *File) Load(_ context.Context) (presence.Directory, error) {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, f.path)
		}

		return nil, fmt.Errorf("read name file: %w", err)
	}

	raw, err := decode(contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, f.path, err)
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: %s: no entries", ErrMalformed, f.path)
	}

	return normalize(f.path, raw)
}

// normalize keys raw by canonical hardware id. Two file keys for the same id
// make the file malformed, otherwise the winner would depend on map order.
func normalize(path string, raw map[string]string) (presence.Directory, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var (
		directory = make(presence.Directory, len(raw))
		seen      = make(map[presence.HardwareID]string, len(raw))
	)

	for _, key := range keys {
		id := presence.NormalizeHardwareID(key)
		if first, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %s: keys %q and %q are both %s", ErrMalformed, path, first, key, id)
		}

		seen[id] = key
		directory[id] = raw[key]
	}

	return directory, nil
}

// decode reads valid JSON with encoding/json, which tolerates tab indentation
// that YAML rejects, and everything else as YAML.
func decode(contents []byte) (map[string]string, error) {
	var (
		raw map[string]string
		err error
	)

	if json.Valid(contents) {
		err = json.Unmarshal(contents, &raw)
	} else {
		err = yaml.Unmarshal(contents, &raw)
	}

	if err != nil {
		return nil, err
	}

	return raw, nil
}
