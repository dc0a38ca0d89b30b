package customer

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidCode = errors.New("customer code must be 8 characters")

const codeLength = 8

// Code is the unique human-readable customer code printed on loyalty cards.
type Code struct {
	value string
}

// GenerateCode derives an 8-character uppercase code the same way the store
// has always issued them.
func GenerateCode() Code {
	return Code{value: strings.ToUpper(uuid.New().String()[:codeLength])}
}

func NewCode(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != codeLength {
		return Code{}, ErrInvalidCode
	}
	return Code{value: s}, nil
}

func (c Code) String() string {
	return c.value
}
