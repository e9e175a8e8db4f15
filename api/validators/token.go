package validators

import (
	"strings"

	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
)

var ErrInvalidToken = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid auth token")

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	token := strings.TrimSpace(header)
	if token == "" {
		return "", ErrInvalidToken
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" || strings.Count(token, ".") != 2 {
		return "", ErrInvalidToken
	}
	return token, nil
}
