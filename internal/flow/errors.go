package flow

import "errors"

// ErrBusy is returned for user input received while an effect is in flight.
var ErrBusy = errors.New("a request is already in progress")
