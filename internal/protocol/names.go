package protocol

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxNameLength is the longest display name accepted.
const MaxNameLength = 20

var validate = validator.New()

type displayName struct {
	Name string `validate:"required,max=20,alpha"`
}

// NormalizeName trims surrounding whitespace from a requested name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateName reports whether name is 1 to 20 ASCII letters, either case.
// Callers normalize first; surrounding whitespace is rejected here.
func ValidateName(name string) error {
	if err := validate.Struct(displayName{Name: name}); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidName, name, err)
	}
	return nil
}
