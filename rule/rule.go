// Package rule implements the reward eligibility rules a notice can attach
// to its view, like, and comment actions.
package rule

import "fmt"

// Rule selects how winners are picked from a notice's action list.
type Rule int

const (
	// FIFO rewards the first MaxWinners actions.
	FIFO Rule = iota
	// Interval rewards every IntervalN-th action, up to MaxWinners winners.
	Interval
)

// Wire codes for rules. Any other value is rejected on both encode and
// decode.
const (
	CodeFIFO     uint8 = 0
	CodeInterval uint8 = 1
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case FIFO:
		return "fifo"
	case Interval:
		return "interval"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// Encode converts a rule to its wire code.
func Encode(r Rule) (uint8, error) {
	switch r {
	case FIFO:
		return CodeFIFO, nil
	case Interval:
		return CodeInterval, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidRule, int(r))
	}
}

// Decode converts a wire code to a rule.
func Decode(code uint8) (Rule, error) {
	switch code {
	case CodeFIFO:
		return FIFO, nil
	case CodeInterval:
		return Interval, nil
	default:
		return 0, fmt.Errorf("%w: code %d", ErrInvalidRule, code)
	}
}

// Eligible reports whether the action at the given running count wins a
// reward. runningCount is 1-indexed: it equals the length of the action
// list after the current action is appended.
//
// Under FIFO the first maxWinners actions win. Under Interval every
// intervalN-th action wins, up to maxWinners winners; intervalN == 0 means
// no action ever wins, which is a valid configuration rather than an error.
func Eligible(r Rule, runningCount, maxWinners, intervalN uint64) bool {
	switch r {
	case FIFO:
		return runningCount <= maxWinners
	case Interval:
		if intervalN == 0 {
			return false
		}
		return runningCount%intervalN == 0 && runningCount/intervalN <= maxWinners
	default:
		return false
	}
}
