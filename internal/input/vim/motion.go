package vim

import "github.com/mglenn/vimulator/internal/engine/buffer"

// motions maps single-key motions to their specs. Inclusive motions
// take the landing character under an operator; linewise motions make
// the operator act on whole lines.
var motions = map[rune]MotionSpec{
	'h': {Kind: buffer.MotionLeft},
	'l': {Kind: buffer.MotionRight},
	'j': {Kind: buffer.MotionDown, Linewise: true},
	'k': {Kind: buffer.MotionUp, Linewise: true},
	'w': {Kind: buffer.MotionWordForward},
	'b': {Kind: buffer.MotionWordBack},
	'e': {Kind: buffer.MotionWordEnd, Inclusive: true},
	'W': {Kind: buffer.MotionWORDForward},
	'B': {Kind: buffer.MotionWORDBack},
	'E': {Kind: buffer.MotionWORDEnd, Inclusive: true},
	'0': {Kind: buffer.MotionLineStart},
	'^': {Kind: buffer.MotionFirstNonBlank},
	'$': {Kind: buffer.MotionLineEnd, Inclusive: true},
	'G': {Kind: buffer.MotionFileEnd, Linewise: true},
	'{': {Kind: buffer.MotionParaBack},
	'}': {Kind: buffer.MotionParaForward},
	'%': {Kind: buffer.MotionMatchPair, Inclusive: true},
}

// gMotions maps the second key of g-prefixed motions.
var gMotions = map[rune]MotionSpec{
	'g': {Kind: buffer.MotionFileStart, Linewise: true},
	'_': {Kind: buffer.MotionLastNonBlank, Inclusive: true},
}

// findMotions maps f/F/t/T to their find kinds. f and t are inclusive
// under an operator; the backward variants are exclusive.
var findMotions = map[rune]MotionSpec{
	'f': {IsFind: true, Find: buffer.FindForward, Inclusive: true},
	'F': {IsFind: true, Find: buffer.FindBackward},
	't': {IsFind: true, Find: buffer.TillForward, Inclusive: true},
	'T': {IsFind: true, Find: buffer.TillBackward},
}

func lookupMotion(r rune) (MotionSpec, bool) {
	m, ok := motions[r]
	return m, ok
}

func lookupGMotion(r rune) (MotionSpec, bool) {
	m, ok := gMotions[r]
	return m, ok
}

func isFindMotion(r rune) bool {
	_, ok := findMotions[r]
	return ok
}
