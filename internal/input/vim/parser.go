package vim

import (
	"github.com/mglenn/vimulator/internal/input/key"
	"github.com/mglenn/vimulator/internal/register"
)

// ParseStatus is the outcome of feeding one key to the parser.
type ParseStatus uint8

const (
	// StatusPending means more input is needed.
	StatusPending ParseStatus = iota

	// StatusComplete means a full command was parsed.
	StatusComplete

	// StatusInvalid means the sequence is not a recognized command;
	// all pending state has been cleared.
	StatusInvalid

	// StatusDiscard means the key cancelled pending state (Escape).
	StatusDiscard
)

// String returns the status name.
func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// parseState is the parser's position in the command grammar.
type parseState uint8

const (
	stateInitial parseState = iota
	stateCount
	stateRegister
	stateOperator
	stateOperatorCount
	stateGPrefix
	stateObjectPrefix
	stateFindChar
	stateReplaceChar
	stateMacroRecord
	stateMacroPlay
)

// ParseResult carries the status plus the completed command when
// Status == StatusComplete.
type ParseResult struct {
	Status  ParseStatus
	Command *Command

	// Pending shows the keys typed so far, for the status line.
	Pending string
}

// Parser turns key events into commands following the grammar
// [count] ["register] [operator] [count] (motion | object | command).
// One parser instance serves both normal and visual mode; visual mode
// changes how operators and the i/a prefixes complete.
type Parser struct {
	state parseState

	count1        countState // before the operator
	count2        countState // after the operator
	register      rune
	operator      OperatorKind
	objectAround  bool
	pendingFind   MotionSpec
	pendingAction ActionKind

	// visual switches the grammar to visual-mode completion rules.
	visual bool

	pendingKeys []rune
}

// NewParser creates a parser in the initial state.
func NewParser() *Parser {
	return &Parser{pendingKeys: make([]rune, 0, 8)}
}

// Reset clears all pending state.
func (p *Parser) Reset() {
	p.state = stateInitial
	p.count1.reset()
	p.count2.reset()
	p.register = 0
	p.operator = OpNone
	p.objectAround = false
	p.pendingFind = MotionSpec{}
	p.pendingAction = ActionNone
	p.pendingKeys = p.pendingKeys[:0]
}

// SetVisual switches between normal and visual grammar rules. Changing
// the setting clears pending state.
func (p *Parser) SetVisual(visual bool) {
	if p.visual != visual {
		p.Reset()
	}
	p.visual = visual
}

// Idle reports whether nothing is pending.
func (p *Parser) Idle() bool {
	return p.state == stateInitial && !p.count1.active && p.register == 0
}

// Pending returns the keys typed so far, for display.
func (p *Parser) Pending() string {
	return string(p.pendingKeys)
}

// Parse feeds one key event into the grammar.
func (p *Parser) Parse(event key.Event) ParseResult {
	if event.IsEscape() {
		p.Reset()
		return ParseResult{Status: StatusDiscard}
	}

	// Control chords that act as commands.
	if event.IsCtrl('r') {
		if p.operator != OpNone {
			return p.invalid()
		}
		return p.completeAction(ActionRedo, 0)
	}
	if event.IsCtrl('v') {
		if p.operator != OpNone {
			return p.invalid()
		}
		return p.completeAction(ActionVisualBlock, 0)
	}

	if !event.IsPlainRune() {
		if p.state != stateInitial {
			return p.invalid()
		}
		return ParseResult{Status: StatusDiscard}
	}

	r := event.Rune
	p.pendingKeys = append(p.pendingKeys, r)

	switch p.state {
	case stateInitial:
		return p.dispatch(r)
	case stateCount:
		if p.count1.accumulate(r) {
			return p.pending()
		}
		return p.dispatch(r)
	case stateRegister:
		return p.parseRegister(r)
	case stateOperator:
		return p.parseOperator(r)
	case stateOperatorCount:
		if p.count2.accumulate(r) {
			return p.pending()
		}
		return p.parseOperator(r)
	case stateGPrefix:
		return p.parseGPrefix(r)
	case stateObjectPrefix:
		return p.parseObject(r)
	case stateFindChar:
		return p.completeFind(r)
	case stateReplaceChar:
		return p.completeAction(ActionReplaceChar, r)
	case stateMacroRecord:
		if r < 'a' || r > 'z' {
			return p.invalid()
		}
		return p.completeAction(ActionRecordMacro, r)
	case stateMacroPlay:
		if (r < 'a' || r > 'z') && r != '@' {
			return p.invalid()
		}
		return p.completeAction(ActionPlayMacro, r)
	}

	return p.invalid()
}

// dispatch handles a key in the initial or post-count position.
func (p *Parser) dispatch(r rune) ParseResult {
	if isCountStart(r) && p.state == stateInitial {
		p.state = stateCount
		p.count1.accumulate(r)
		return p.pending()
	}

	if r == '"' {
		p.state = stateRegister
		return p.pending()
	}

	if r == 'g' {
		p.state = stateGPrefix
		return p.pending()
	}

	if op := operatorFor(r); op != OpNone {
		if p.visual {
			return p.completeVisualOperator(op)
		}
		p.operator = op
		p.state = stateOperator
		return p.pending()
	}

	if isFindMotion(r) {
		p.pendingFind = findMotions[r]
		p.state = stateFindChar
		return p.pending()
	}

	if m, ok := lookupMotion(r); ok {
		return p.completeMotion(m)
	}

	// In visual mode i/a introduce a text object.
	if p.visual && (r == 'i' || r == 'a') {
		p.objectAround = r == 'a'
		p.state = stateObjectPrefix
		return p.pending()
	}

	switch r {
	case 'r':
		p.state = stateReplaceChar
		return p.pending()
	case 'q':
		p.state = stateMacroRecord
		return p.pending()
	case '@':
		p.state = stateMacroPlay
		return p.pending()
	}

	if action, ok := actionKeys[r]; ok {
		return p.completeAction(action, 0)
	}

	return p.invalid()
}

// parseRegister validates the register name after ".
func (p *Parser) parseRegister(r rune) ParseResult {
	if !register.ValidName(r) {
		return p.invalid()
	}
	p.register = r
	if p.operator != OpNone {
		p.state = stateOperator
	} else {
		p.state = stateInitial
	}
	return p.pending()
}

// parseOperator handles the key after a pending operator.
func (p *Parser) parseOperator(r rune) ParseResult {
	if p.state == stateOperator && isCountStart(r) {
		p.state = stateOperatorCount
		p.count2.accumulate(r)
		return p.pending()
	}

	if p.operator.Key() == r {
		return p.completeLinewise()
	}

	if r == 'g' {
		p.state = stateGPrefix
		return p.pending()
	}

	if r == 'i' || r == 'a' {
		p.objectAround = r == 'a'
		p.state = stateObjectPrefix
		return p.pending()
	}

	if isFindMotion(r) {
		p.pendingFind = findMotions[r]
		p.state = stateFindChar
		return p.pending()
	}

	if m, ok := lookupMotion(r); ok {
		return p.completeMotion(m)
	}

	return p.invalid()
}

// parseGPrefix handles the key after 'g'.
func (p *Parser) parseGPrefix(r rune) ParseResult {
	if m, ok := lookupGMotion(r); ok {
		return p.completeMotion(m)
	}
	return p.invalid()
}

// parseObject handles the object key after i or a.
func (p *Parser) parseObject(r rune) ParseResult {
	obj, ok := lookupObject(r)
	if !ok {
		return p.invalid()
	}
	obj.Around = p.objectAround

	cmd := p.base()
	cmd.Object = obj
	if p.operator != OpNone {
		cmd.Kind = CommandOperatorObject
		cmd.Operator = p.operator
	} else {
		cmd.Kind = CommandObject
	}
	return p.complete(cmd)
}

// completeMotion finishes a bare or operator-bound motion.
func (p *Parser) completeMotion(m MotionSpec) ParseResult {
	cmd := p.base()
	cmd.Motion = m
	if p.operator != OpNone {
		cmd.Kind = CommandOperatorMotion
		cmd.Operator = p.operator
	} else {
		cmd.Kind = CommandMotion
	}
	return p.complete(cmd)
}

// completeFind finishes f/F/t/T with its character argument.
func (p *Parser) completeFind(target rune) ParseResult {
	m := p.pendingFind
	m.Target = target
	return p.completeMotion(m)
}

// completeLinewise finishes a doubled operator (dd, yy, cc).
func (p *Parser) completeLinewise() ParseResult {
	cmd := p.base()
	cmd.Kind = CommandOperatorLine
	cmd.Operator = p.operator
	return p.complete(cmd)
}

// completeVisualOperator finishes an operator applied to the selection.
func (p *Parser) completeVisualOperator(op OperatorKind) ParseResult {
	cmd := p.base()
	cmd.Kind = CommandVisualOperator
	cmd.Operator = op
	return p.complete(cmd)
}

// completeAction finishes an immediate command.
func (p *Parser) completeAction(action ActionKind, arg rune) ParseResult {
	cmd := p.base()
	cmd.Kind = CommandAction
	cmd.Action = action
	cmd.Arg = arg
	return p.complete(cmd)
}

// base builds a command carrying count and register.
func (p *Parser) base() *Command {
	cmd := &Command{Register: p.register}
	if p.count1.active || p.count2.active {
		cmd.Count = combineCounts(p.count1.get(), p.count2.get())
	}
	return cmd
}

func (p *Parser) complete(cmd *Command) ParseResult {
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) invalid() ParseResult {
	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

func (p *Parser) pending() ParseResult {
	return ParseResult{Status: StatusPending, Pending: p.Pending()}
}

// operatorFor maps operator keys to their kinds.
func operatorFor(r rune) OperatorKind {
	switch r {
	case 'd':
		return OpDelete
	case 'c':
		return OpChange
	case 'y':
		return OpYank
	}
	return OpNone
}

// actionKeys maps immediate normal-mode commands.
var actionKeys = map[rune]ActionKind{
	'x': ActionDeleteChar,
	'X': ActionDeleteCharBack,
	'D': ActionDeleteToEnd,
	'C': ActionChangeToEnd,
	'Y': ActionYankLine,
	's': ActionSubstChar,
	'S': ActionSubstLine,
	'p': ActionPutAfter,
	'P': ActionPutBefore,
	'J': ActionJoin,
	'u': ActionUndo,
	'~': ActionToggleCase,
	'.': ActionRepeat,
	'v': ActionVisualChar,
	'V': ActionVisualLine,
	':': ActionCommandLine,
	'/': ActionSearchForward,
	'?': ActionSearchBackward,
	'n': ActionSearchNext,
	'N': ActionSearchPrev,
	'*': ActionSearchWord,
	'#': ActionSearchWordBack,
	'i': ActionInsert,
	'I': ActionInsertLineStart,
	'a': ActionAppend,
	'A': ActionAppendLineEnd,
	'o': ActionOpenBelow,
	'O': ActionOpenAbove,
}
