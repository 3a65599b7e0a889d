package runtime

import "errors"

// Sentinel failures raised by the value layer. The interpreter classifies
// them into its error kinds with errors.Is.
var (
	ErrUnknownSymbol       = errors.New("unknown symbol")
	ErrNotAttributable     = errors.New("value has no attributes")
	ErrMalformedObject     = errors.New("malformed object")
	ErrFrameStackUnderflow = errors.New("frame stack underflow")
)
