// Package duration parses the compact duration tokens actors type while
// configuring a giveaway, such as "30s", "10m", "2h" or "1d".
package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InvalidDurationError reports a token that carries no recognized unit or
// whose numeric prefix cannot be parsed. Callers re-prompt the actor instead
// of aborting the configuration.
type InvalidDurationError struct {
	Token string
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration token %q", e.Token)
}

// Units are scanned largest first. A token containing more than one unit
// letter is resolved by this fixed priority, not by position: "2h30m" reads
// as 2 hours. Documented tie-break, do not reorder.
var units = []struct {
	suffix byte
	length time.Duration
}{
	{'d', 24 * time.Hour},
	{'h', time.Hour},
	{'m', time.Minute},
	{'s', time.Second},
}

// Parse converts a token of the form <integer><unit> into an elapsed
// interval, where unit is one of s, m, h or d.
func Parse(token string) (time.Duration, error) {
	for _, unit := range units {
		idx := strings.IndexByte(token, unit.suffix)
		if idx < 0 {
			continue
		}
		value, err := strconv.Atoi(token[:idx])
		if err != nil || value < 0 {
			return 0, &InvalidDurationError{Token: token}
		}
		return time.Duration(value) * unit.length, nil
	}
	return 0, &InvalidDurationError{Token: token}
}
