package starling

import "github.com/pkg/errors"

// Error taxonomy. Returned errors and panic values wrap one of these; match
// them with errors.Is.
var (
	// ErrInvalidArgument reports an unknown transition name, a nil
	// transition function or another malformed argument.
	ErrInvalidArgument = errors.New("starling: invalid argument")

	// ErrInvalidProperty reports a query for a property that is not animated,
	// or a property the target does not expose.
	ErrInvalidProperty = errors.New("starling: invalid property")

	// ErrIndexOutOfRange reports a vertex index outside [0, NumVertices).
	ErrIndexOutOfRange = errors.New("starling: index out of range")

	// ErrUnknownHint reports a property hint suffix other than rgb, rad or
	// deg. It is never fatal: the property falls back to linear
	// interpolation.
	ErrUnknownHint = errors.New("starling: unknown property hint")
)
