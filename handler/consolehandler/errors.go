package consolehandler

import "errors"

// ErrClosed is returned by Handle after Close
var ErrClosed = errors.New("console handler closed")
