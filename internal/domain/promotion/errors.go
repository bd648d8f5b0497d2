package promotion

import "errors"

var (
	ErrAlreadyPromoted   = errors.New("employee already holds a promoted record")
	ErrPromotionNotFound = errors.New("promotion record not found")
)
