package pdf

import "errors"

// ErrRenderFailed is returned when the PDF document cannot be produced
// or written to the output path. The invoice number must not have been
// committed yet when this surfaces; rendering happens before commit so
// a failed render never consumes a number.
var ErrRenderFailed = errors.New("invoice rendering failed")
