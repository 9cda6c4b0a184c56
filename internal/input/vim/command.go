package vim

import "github.com/mglenn/vimulator/internal/engine/buffer"

// CommandKind discriminates what a parsed command contains.
type CommandKind uint8

const (
	// CommandMotion is a bare motion (cursor movement, or selection
	// extension in visual mode).
	CommandMotion CommandKind = iota

	// CommandOperatorMotion is operator + motion (dw, 2d3w, c$...).
	CommandOperatorMotion

	// CommandOperatorObject is operator + text object (diw, ca(...).
	CommandOperatorObject

	// CommandOperatorLine is a doubled operator (dd, yy, cc).
	CommandOperatorLine

	// CommandVisualOperator is an operator applied to the active
	// selection.
	CommandVisualOperator

	// CommandObject is a bare text object in visual mode (selects it).
	CommandObject

	// CommandAction is an immediate normal-mode command (x, p, u...).
	CommandAction
)

// OperatorKind identifies the pending operator.
type OperatorKind uint8

const (
	OpNone OperatorKind = iota
	OpDelete
	OpChange
	OpYank
)

// Key returns the operator's trigger key.
func (o OperatorKind) Key() rune {
	switch o {
	case OpDelete:
		return 'd'
	case OpChange:
		return 'c'
	case OpYank:
		return 'y'
	}
	return 0
}

// ActionKind identifies an immediate normal-mode command.
type ActionKind uint8

const (
	ActionNone ActionKind = iota

	ActionDeleteChar     // x
	ActionDeleteCharBack // X
	ActionDeleteToEnd    // D
	ActionChangeToEnd    // C
	ActionYankLine       // Y
	ActionSubstChar      // s
	ActionSubstLine      // S
	ActionReplaceChar    // r{char}
	ActionPutAfter       // p
	ActionPutBefore      // P
	ActionJoin           // J
	ActionUndo           // u
	ActionRedo           // <C-r>
	ActionToggleCase     // ~
	ActionRepeat         // .

	ActionRecordMacro // q{reg}
	ActionPlayMacro   // @{reg}

	ActionVisualChar  // v
	ActionVisualLine  // V
	ActionVisualBlock // <C-v>

	ActionCommandLine    // :
	ActionSearchForward  // /
	ActionSearchBackward // ?
	ActionSearchNext     // n
	ActionSearchPrev     // N
	ActionSearchWord     // *
	ActionSearchWordBack // #

	ActionInsert          // i
	ActionInsertLineStart // I
	ActionAppend          // a
	ActionAppendLineEnd   // A
	ActionOpenBelow       // o
	ActionOpenAbove       // O
)

// MotionSpec describes a resolved motion for execution.
type MotionSpec struct {
	// Kind is the buffer motion, MotionNone for find-char motions.
	Kind buffer.MotionKind

	// Find holds the find-char variant when IsFind is set; Target is
	// the character argument.
	Find   buffer.FindKind
	IsFind bool
	Target rune

	// Inclusive motions take the landing character when used with an
	// operator.
	Inclusive bool

	// Linewise motions make the operator act on whole lines (dj, dG).
	Linewise bool
}

// ObjectKind identifies a text object family.
type ObjectKind uint8

const (
	ObjectWord ObjectKind = iota
	ObjectWORD
	ObjectParagraph
	ObjectQuote
	ObjectPair
)

// ObjectSpec describes a parsed text object.
type ObjectSpec struct {
	Kind   ObjectKind
	Around bool // 'a' prefix; false means inner ('i')

	// Quote is the delimiter for ObjectQuote; Open/Close for ObjectPair.
	Quote rune
	Open  rune
	Close rune
}

// Command is one fully parsed normal-mode or visual-mode command.
type Command struct {
	Kind CommandKind

	// Count is the combined count, 0 when none was typed.
	Count int

	// Register is the target register, 0 when none was named.
	Register rune

	Operator OperatorKind
	Motion   MotionSpec
	Object   ObjectSpec

	// Action and Arg carry immediate commands and their character
	// argument (r{char}, q{reg}, @{reg}).
	Action ActionKind
	Arg    rune
}

// EffectiveCount returns the count to execute with, at least 1.
func (c *Command) EffectiveCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// HasCount reports whether an explicit count was typed.
func (c *Command) HasCount() bool { return c.Count > 0 }
