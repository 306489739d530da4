package mpv

import "fmt"

// Error is a negative libmpv status code.
type Error int

const (
	ErrEventQueueFull      Error = -1
	ErrNoMem               Error = -2
	ErrUninitialized       Error = -3
	ErrInvalidParameter    Error = -4
	ErrOptionNotFound      Error = -5
	ErrOptionFormat        Error = -6
	ErrOptionError         Error = -7
	ErrPropertyNotFound    Error = -8
	ErrPropertyFormat      Error = -9
	ErrPropertyUnavailable Error = -10
	ErrPropertyError       Error = -11
	ErrCommand             Error = -12
	ErrLoadingFailed       Error = -13
	ErrAOInitFailed        Error = -14
	ErrVOInitFailed        Error = -15
	ErrNothingToPlay       Error = -16
	ErrUnknownFormat       Error = -17
	ErrUnsupported         Error = -18
	ErrNotImplemented      Error = -19
	ErrGeneric             Error = -20
)

// same text as mpv_error_string
var errorStrings = [...]string{
	"success",
	"event queue full",
	"memory allocation failed",
	"core not uninitialized",
	"invalid parameter",
	"option not found",
	"unsupported format for accessing option",
	"error setting option",
	"property not found",
	"unsupported format for accessing property",
	"property unavailable",
	"error accessing property",
	"error running command",
	"loading failed",
	"audio output initialization failed",
	"video output initialization failed",
	"no audio or video data played",
	"unrecognized file format",
	"not supported",
	"operation not implemented",
	"something happened",
}

func (e Error) Error() string {
	if i := -int(e); i >= 0 && i < len(errorStrings) {
		return errorStrings[i]
	}
	return fmt.Sprintf("unknown error %d", int(e))
}

// newError converts a libmpv status into an error; non-negative
// statuses are success.
func newError(status int) error {
	if status >= 0 {
		return nil
	}
	return Error(status)
}
