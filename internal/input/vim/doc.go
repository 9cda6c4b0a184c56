// Package vim parses modal command-key sequences into executable
// commands.
//
// The grammar is
//
//	[count] ["register] [operator] [count] (motion | i/a object | command)
//
// fed one key event at a time. The parser is a pure state machine: it
// never touches the buffer, it only classifies input. Counts before and
// after an operator multiply (2d3w deletes six words), a doubled
// operator key is linewise (dd), and any unrecognized key clears all
// pending state.
//
// The same parser serves visual mode via SetVisual: there an operator
// key completes immediately against the selection, and i/a introduce a
// text object instead of entering insert mode.
package vim
