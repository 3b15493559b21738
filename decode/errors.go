package decode

import "errors"

// ErrDecoder is fatal and surfaced to the driver. ParseXML returns it when
// the reference document cannot be parsed, and Decode returns it when its
// worker pool reports an error. This package opens no files, so a failure
// to open the input is reported by the caller, not with ErrDecoder. Decode
// does not return it for a segment whose location reference has fewer than
// 2 points: that segment is counted in Stats.RoutesNotCalculated.
var ErrDecoder = errors.New("decode: fatal decoder error")

// ErrBadInput flags invalid CLI-level parameters, rejected before any
// decode work starts.
var ErrBadInput = errors.New("decode: invalid input parameters")
