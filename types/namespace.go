package types

import (
	"regexp"

	"github.com/rotisserie/eris"
)

var (
	regexAlphanumeric = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Namespace is a label identifying a world instance. It shows up in logs,
// metrics tags, and the diagnostics server so that multiple worlds in one
// process can be told apart.
type Namespace string

func (n Namespace) String() string {
	return string(n)
}

// Validate validates that the namespace is alphanumeric or - (hyphen).
func (n Namespace) Validate() error {
	if !regexAlphanumeric.MatchString(n.String()) {
		return eris.New("Invalid namespace. A namespace must be alphanumeric.")
	}
	return nil
}
