package validators

import (
	"strings"

	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
)

// MaxProductIDLength caps identifiers taken from the URL path.
const MaxProductIDLength = 64

// ProductID trims a path identifier and rejects empty or oversized values.
func ProductID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if len(id) > MaxProductIDLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is too long")
	}
	return id, nil
}
