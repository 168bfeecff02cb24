package prices

import "errors"

var ErrValidation = errors.New("validation failed")
