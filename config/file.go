package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/kevingerman/pianoman/models"
)

// parseFile reads a config file into a flat key/value layer. The format is
// picked by extension: .yaml and .yml are YAML, anything else is JSON with
// comments allowed. A missing file yields found == false and no error.
func parseFile(path string) (layer map[string]any, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading config file %q: %w", path, err)
	}

	var decoded any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &decoded)
	default:
		decoded, err = models.DecodeJSONValue(jsonc.ToJSON(data))
	}
	if err != nil {
		return nil, true, fmt.Errorf("%w %q: %w", ErrInvalidFile, path, err)
	}

	layer, ok := decoded.(map[string]any)
	if !ok {
		return nil, true, fmt.Errorf("%w %q: top level is %T, want an object", ErrInvalidFile, path, decoded)
	}
	return layer, true, nil
}
