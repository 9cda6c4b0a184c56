package vim

import "math"

// countState accumulates a count prefix digit by digit.
type countState struct {
	value  int
	active bool
}

func (c *countState) reset() {
	c.value = 0
	c.active = false
}

// accumulate adds an ASCII digit. A leading '0' is rejected: that key
// is the line-start motion, not a count.
func (c *countState) accumulate(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.active && digit == 0 {
		return false
	}
	c.active = true
	if c.value > (math.MaxInt-digit)/10 {
		c.value = math.MaxInt / 10
		return true
	}
	c.value = c.value*10 + digit
	return true
}

// get returns the accumulated count, 1 when none was typed.
func (c *countState) get() int {
	if c.value <= 0 {
		return 1
	}
	return c.value
}

// isCountStart reports whether r can begin a count (1-9).
func isCountStart(r rune) bool { return r >= '1' && r <= '9' }

// isDigit reports whether r can continue a count (0-9).
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// combineCounts multiplies pre- and post-operator counts: 2d3w affects
// six words. Overflow caps rather than wraps.
func combineCounts(count1, count2 int) int {
	if count1 <= 0 {
		count1 = 1
	}
	if count2 <= 0 {
		count2 = 1
	}
	if count1 > math.MaxInt/count2 {
		return math.MaxInt / 10
	}
	return count1 * count2
}
