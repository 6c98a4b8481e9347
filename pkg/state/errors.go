package state

import "errors"

var ErrNoSnapshot = errors.New("no snapshot has been published")
