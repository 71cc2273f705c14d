package gltfasset

import "github.com/pkg/errors"

// Load failures are terminal: they describe malformed or incompatible input,
// so nothing is retried and no partially assembled model is ever returned.
var (
	ErrMissingAttribute = errors.New("missing vertex attribute")
	ErrSizeMismatch     = errors.New("attribute accessor size mismatch")
	ErrMissingIndices   = errors.New("missing primitive indices")
	ErrNoScene          = errors.New("document defines no scene")
)
