package schema

//go:generate mockgen -source=interfaces.go -destination=../internal/mock/schema_source_mock.go -package=mock

import (
	"context"

	"github.com/kevingerman/pianoman/models"
)

// Source produces the raw field specs of a schema. Loader validates and
// memoizes whatever a Source returns.
type Source interface {
	// Load returns the field specs in declaration order.
	Load(ctx context.Context) ([]models.FieldSpec, error)
}
