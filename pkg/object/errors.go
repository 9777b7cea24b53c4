package object

import "errors"

// Failure kinds surfaced by the codec and store. Callers match with
// errors.Is; every site wraps these with operation context.
var (
	// ErrNotFound reports a hash with no backing entry in the store.
	ErrNotFound = errors.New("object not found")

	// ErrCorrupt reports a bad compressed stream, a bad envelope, or a
	// declared length that does not match the payload.
	ErrCorrupt = errors.New("corrupt object")

	// ErrUnsupportedType reports an unrecognized object type tag.
	ErrUnsupportedType = errors.New("unsupported object type")

	// ErrMalformedHeader reports a kvlm header that cannot be parsed.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMalformedTree reports a tree payload that cannot be parsed or a
	// tree entry that cannot be serialized.
	ErrMalformedTree = errors.New("malformed tree")
)
