package ram

import "errors"

var ErrAccessSize = errors.New("access size must be 1, 2 or 4")
