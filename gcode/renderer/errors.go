package renderer

import "errors"

var errBadAttribute = errors.New("renderer: layer attribute has an unexpected type")
