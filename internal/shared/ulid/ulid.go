package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Declared as a var so tests can stub it.
var NewULID = func() string {
	return ulid.Make().String()
}
