package transit

import (
	"strconv"
	"strings"
)

// SelectStop resolves a user-typed selection against the enumerated stop
// list. The selection is 1-based, matching what was shown on screen. A
// non-integer or out-of-range choice returns false; the caller aborts
// rather than re-prompting.
func SelectStop(stops []Stop, input string) (Stop, bool) {
	if len(stops) == 0 {
		return Stop{}, false
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return Stop{}, false
	}

	if choice < 1 || choice > len(stops) {
		return Stop{}, false
	}

	return stops[choice-1], true
}
