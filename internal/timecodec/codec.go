// Package timecodec converts elapsed-second counts to and from the
// "H h M m S s" display labels used in the history table.
package timecodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedLabel is returned by Parse when a label does not follow the
// "H h M m S s" token layout.
var ErrMalformedLabel = errors.New("malformed time label")

// Format renders seconds as "H h M m S s".
func Format(seconds int) string {
	return fmt.Sprintf("%d h %d m %d s", seconds/3600, (seconds/60)%60, seconds%60)
}

// Parse reads a label produced by Format back into total seconds.
// Tokens are read at fixed positions: 0 hours, 2 minutes, 4 seconds.
func Parse(label string) (int, error) {
	tokens := strings.Split(label, " ")
	if len(tokens) < 5 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
	}

	var parts [3]int
	for i, pos := range []int{0, 2, 4} {
		n, err := strconv.Atoi(tokens[pos])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
		}
		parts[i] = n
	}
	return parts[0]*3600 + parts[1]*60 + parts[2], nil
}
