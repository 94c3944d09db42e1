package rule

import "errors"

var (
	// ErrInvalidRule indicates an unrecognized rule or rule code.
	ErrInvalidRule = errors.New("rule: invalid rule code")
)
