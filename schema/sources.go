package schema

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/kevingerman/pianoman/models"
)

// DefaultResourceName is the name of the schema bundled with the module.
const DefaultResourceName = "default.config.json"

//go:embed default.config.json
var defaultResource []byte

// EmbeddedSource returns the Source for the bundled default schema.
func EmbeddedSource() Source {
	return BytesSource(defaultResource)
}

type bytesSource struct {
	data []byte
}

// BytesSource returns a Source decoding data as a schema resource.
func BytesSource(data []byte) Source {
	return &bytesSource{data: data}
}

func (s *bytesSource) Load(ctx context.Context) ([]models.FieldSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decode(s.data)
}

type fileSource struct {
	path string
}

// FileSource returns a Source reading a schema resource from path.
func FileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) ([]models.FieldSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading schema file: %w", err)
	}
	return decode(data)
}

type staticSource struct {
	fields []models.FieldSpec
}

// StaticSource returns a Source yielding copies of fields.
func StaticSource(fields ...models.FieldSpec) Source {
	return &staticSource{fields: fields}
}

func (s *staticSource) Load(context.Context) ([]models.FieldSpec, error) {
	out := make([]models.FieldSpec, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Clone()
	}
	return out, nil
}
