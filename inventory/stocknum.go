/*
stocknum.go - Sequential stock-number allocation

PURPOSE:
  Pure successor function for dealership stock numbers. Format is one
  uppercase letter followed by six zero-padded decimal digits, starting
  at A000001. When a letter's range is exhausted (999999) the letter
  advances and the counter resets to 000001.

CONCURRENCY NOTE:
  The caller determines the "most recent" number by scanning existing
  vehicles at creation time. Scan-then-assign is not atomic; two
  concurrent creations could both observe the same predecessor. The
  system is single-process and single-writer, so this is a documented
  limitation, not handled here.
*/
package inventory

import (
	"errors"
	"fmt"
	"strconv"
)

// FirstStockNumber is issued when no prior stock number exists.
const FirstStockNumber = "A000001"

// ErrStockNumbersExhausted is returned when Z999999 has been issued.
// Behavior past 'Z' is undefined for this numbering scheme.
var ErrStockNumbersExhausted = errors.New("stock number space exhausted")

// NextStockNumber returns the stock number that follows last. An empty
// last means no number has been issued yet.
func NextStockNumber(last string) (string, error) {
	if last == "" {
		return FirstStockNumber, nil
	}
	if len(last) != 7 {
		return "", fmt.Errorf("malformed stock number %q", last)
	}

	prefix := last[0]
	if prefix < 'A' || prefix > 'Z' {
		return "", fmt.Errorf("malformed stock number %q: bad prefix", last)
	}

	n, err := strconv.Atoi(last[1:])
	if err != nil {
		return "", fmt.Errorf("malformed stock number %q: %w", last, err)
	}

	if n < 999999 {
		return fmt.Sprintf("%c%06d", prefix, n+1), nil
	}

	if prefix == 'Z' {
		return "", ErrStockNumbersExhausted
	}
	return fmt.Sprintf("%c%06d", prefix+1, 1), nil
}
