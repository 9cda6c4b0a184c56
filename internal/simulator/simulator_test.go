package simulator

import (
	"strings"
	"testing"

	"github.com/mglenn/vimulator/internal/engine/buffer"
	"github.com/mglenn/vimulator/internal/input/mode"
)

func keys(t *testing.T, s *Simulator, notation string) Outcome {
	t.Helper()
	out, err := s.ProcessKeys(notation)
	if err != nil {
		t.Fatalf("ProcessKeys(%q): %v", notation, err)
	}
	return out
}

func wantContent(t *testing.T, s *Simulator, want string) {
	t.Helper()
	if got := s.GetContent(); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func wantCursor(t *testing.T, s *Simulator, line, col int) {
	t.Helper()
	if got := s.Cursor(); got != (buffer.Position{Line: line, Col: col}) {
		t.Errorf("cursor = %+v, want {%d %d}", got, line, col)
	}
}

func TestLoadAndGetContent(t *testing.T) {
	s := New()
	if err := s.LoadContent("alpha\nbeta"); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	wantContent(t, s, "alpha\nbeta")
	wantCursor(t, s, 0, 0)
	if s.Mode() != mode.Normal {
		t.Errorf("mode = %v", s.Mode())
	}
}

func TestWordMotionSkipsTrailingPunctuation(t *testing.T) {
	s := NewWithContent("hello, world")
	keys(t, s, "w")
	wantCursor(t, s, 0, 7)
	// No further word start; w pins at the last character.
	keys(t, s, "w")
	wantCursor(t, s, 0, 11)
}

func TestInsertSession(t *testing.T) {
	s := New()
	out := keys(t, s, "ihello")
	if out.Mode != mode.Insert {
		t.Errorf("mode = %v, want insert", out.Mode)
	}
	out = keys(t, s, "<Esc>")
	if out.Mode != mode.Normal {
		t.Errorf("mode = %v, want normal", out.Mode)
	}
	wantContent(t, s, "hello")
	// The cursor stays where the insertion ended, one past the last
	// char; the next movement clamps it.
	wantCursor(t, s, 0, 5)
	keys(t, s, "l")
	wantCursor(t, s, 0, 4)
}

func TestInsertEnterAndBackspace(t *testing.T) {
	s := New()
	keys(t, s, "iab<Enter>cd")
	wantContent(t, s, "ab\ncd")
	keys(t, s, "<BS><BS><BS>")
	wantContent(t, s, "ab")
	wantCursor(t, s, 0, 2)
	keys(t, s, "<Esc>")
	wantCursor(t, s, 0, 2)
}

func TestAppendAndOpenVariants(t *testing.T) {
	s := NewWithContent("ab")
	keys(t, s, "aXY<Esc>")
	wantContent(t, s, "aXYb")

	s = NewWithContent("  text")
	keys(t, s, "I-<Esc>")
	wantContent(t, s, "  -text")

	s = NewWithContent("end")
	keys(t, s, "A!<Esc>")
	wantContent(t, s, "end!")

	s = NewWithContent("top")
	keys(t, s, "obelow<Esc>")
	wantContent(t, s, "top\nbelow")

	keys(t, s, "Oabove<Esc>")
	wantContent(t, s, "top\nabove\nbelow")
}

func TestDeleteChar(t *testing.T) {
	s := NewWithContent("abcdef")
	keys(t, s, "x")
	wantContent(t, s, "bcdef")
	keys(t, s, "3x")
	wantContent(t, s, "ef")

	// x at end of content stops at the line end.
	keys(t, s, "9x")
	wantContent(t, s, "")
}

func TestDeleteWordOperator(t *testing.T) {
	s := NewWithContent("one two three")
	keys(t, s, "dw")
	wantContent(t, s, "two three")

	keys(t, s, "2dw")
	wantContent(t, s, "")
}

func TestDeleteWordAtBufferEnd(t *testing.T) {
	// With no word start left to reach, dw takes the rest of the line.
	s := NewWithContent("three")
	keys(t, s, "dw")
	wantContent(t, s, "")

	s = NewWithContent("one two")
	keys(t, s, "wdw")
	wantContent(t, s, "one ")
}

func TestLinewiseOperatorAtBoundary(t *testing.T) {
	s := NewWithContent("one\ntwo")
	out := keys(t, s, "jdj")
	if out.BufferChanged {
		t.Errorf("dj on the last line changed the buffer")
	}
	wantContent(t, s, "one\ntwo")

	out = keys(t, s, "ggdk")
	if out.BufferChanged {
		t.Errorf("dk on the first line changed the buffer")
	}
	wantContent(t, s, "one\ntwo")

	keys(t, s, "dj")
	wantContent(t, s, "")
}

func TestDeleteWordDoesNotCrossLine(t *testing.T) {
	s := NewWithContent("last\nnext")
	keys(t, s, "dw")
	wantContent(t, s, "\nnext")
}

func TestCountsMultiply(t *testing.T) {
	s := NewWithContent("a b c d e f g")
	keys(t, s, "2d3w")
	wantContent(t, s, "g")
}

func TestDeleteLines(t *testing.T) {
	s := NewWithContent("l1\nl2\nl3\nl4\nl5")
	keys(t, s, "j3dd")
	wantContent(t, s, "l1\nl5")
	wantCursor(t, s, 1, 0)
}

func TestDeleteLastLineKeepsEmptyBuffer(t *testing.T) {
	s := NewWithContent("only")
	keys(t, s, "dd")
	wantContent(t, s, "")
	if out := keys(t, s, "dd"); out.BufferChanged {
		t.Errorf("dd on empty buffer changed content")
	}
}

func TestChangeWordActsLikeChangeEnd(t *testing.T) {
	s := NewWithContent("foo bar")
	out := keys(t, s, "cw")
	if out.Mode != mode.Insert {
		t.Fatalf("mode = %v", out.Mode)
	}
	// cw on foo removes only the word, not the following space.
	wantContent(t, s, " bar")
	keys(t, s, "new<Esc>")
	wantContent(t, s, "new bar")
}

func TestDeleteToEndAndChangeToEnd(t *testing.T) {
	s := NewWithContent("keep drop")
	keys(t, s, "fdD")
	wantContent(t, s, "keep ")

	s = NewWithContent("keep drop")
	keys(t, s, "fdCnew<Esc>")
	wantContent(t, s, "keep new")
}

func TestYankPutLinewise(t *testing.T) {
	s := NewWithContent("first\nsecond")
	keys(t, s, "yyp")
	wantContent(t, s, "first\nfirst\nsecond")
	wantCursor(t, s, 1, 0)

	keys(t, s, "GP")
	wantContent(t, s, "first\nfirst\nfirst\nsecond")
}

func TestYankPutCharwise(t *testing.T) {
	s := NewWithContent("abc")
	keys(t, s, "ylp")
	wantContent(t, s, "aabc")

	s = NewWithContent("word here")
	keys(t, s, "yw$p")
	wantContent(t, s, "word hereword ")
}

func TestNamedRegisters(t *testing.T) {
	s := NewWithContent("alpha\nbeta")
	keys(t, s, `"ayyj"byy"ap`)
	wantContent(t, s, "alpha\nbeta\nalpha")

	// Uppercase append joins linewise contents.
	keys(t, s, `gg"Ayy`)
	keys(t, s, `G"ap`)
	wantContent(t, s, "alpha\nbeta\nalpha\nalpha\nalpha")
}

func TestDeleteRotatesNumberedRegisters(t *testing.T) {
	s := NewWithContent("one\ntwo\nthree")
	keys(t, s, "dddd")
	// Register 1 holds the newest delete, 2 the one before.
	keys(t, s, `"2p`)
	wantContent(t, s, "three\none")
	keys(t, s, `"1p`)
	wantContent(t, s, "three\none\ntwo")
}

func TestSmallDeleteRegister(t *testing.T) {
	s := NewWithContent("abc")
	keys(t, s, "x")
	keys(t, s, `"-p`)
	wantContent(t, s, "bac")
}

func TestBlackHoleLeavesUnnamedAlone(t *testing.T) {
	s := NewWithContent("keep\ngone")
	keys(t, s, "yyj")
	keys(t, s, `"_dd`)
	wantContent(t, s, "keep")
	keys(t, s, "p")
	wantContent(t, s, "keep\nkeep")
}

func TestTextObjects(t *testing.T) {
	s := NewWithContent("foo bar baz")
	keys(t, s, "wdiw")
	wantContent(t, s, "foo  baz")

	s = NewWithContent("foo bar baz")
	keys(t, s, "wdaw")
	wantContent(t, s, "foo baz")

	s = NewWithContent(`say "hello" end`)
	keys(t, s, `fhci"bye<Esc>`)
	wantContent(t, s, `say "bye" end`)

	s = NewWithContent("call(one, two)")
	keys(t, s, "foda(")
	wantContent(t, s, "call")

	s = NewWithContent("a\nb\n\nc")
	keys(t, s, "dap")
	wantContent(t, s, "c")
}

func TestReplaceChar(t *testing.T) {
	s := NewWithContent("abc")
	keys(t, s, "rx")
	wantContent(t, s, "xbc")

	keys(t, s, "3rz")
	wantContent(t, s, "zzz")

	// Not enough characters: whole command fails.
	out := keys(t, s, "9ry")
	if !out.Failed {
		t.Errorf("9ry should fail")
	}
	wantContent(t, s, "zzz")
}

func TestToggleCase(t *testing.T) {
	s := NewWithContent("aBc")
	keys(t, s, "3~")
	wantContent(t, s, "AbC")
}

func TestJoinLines(t *testing.T) {
	s := NewWithContent("foo\n  bar\nbaz")
	keys(t, s, "J")
	wantContent(t, s, "foo bar\nbaz")
	keys(t, s, "J")
	wantContent(t, s, "foo bar baz")

	out := keys(t, s, "J")
	if !out.Failed {
		t.Errorf("J on last line should fail")
	}
}

func TestUndoRedo(t *testing.T) {
	s := NewWithContent("start")
	keys(t, s, "x")
	wantContent(t, s, "tart")
	keys(t, s, "u")
	wantContent(t, s, "start")
	keys(t, s, "<C-r>")
	wantContent(t, s, "tart")
}

func TestInsertSessionIsOneUndoUnit(t *testing.T) {
	s := NewWithContent("base")
	keys(t, s, "ohello world<Esc>")
	wantContent(t, s, "base\nhello world")
	keys(t, s, "u")
	wantContent(t, s, "base")
}

func TestUndoEmptyIsSilentNoOp(t *testing.T) {
	s := NewWithContent("text")
	out := keys(t, s, "u")
	if out.BufferChanged {
		t.Errorf("undo with empty history changed buffer")
	}
	if out.Status == "" {
		t.Errorf("expected an informational status")
	}
}

func TestVisualCharDelete(t *testing.T) {
	s := NewWithContent("one two three")
	keys(t, s, "wvee")
	out := keys(t, s, "d")
	if out.Mode != mode.Normal {
		t.Errorf("mode = %v after visual d", out.Mode)
	}
	wantContent(t, s, "one ")
}

func TestVisualLineDelete(t *testing.T) {
	s := NewWithContent("l1\nl2\nl3\nl4\nl5")
	keys(t, s, "jVjjd")
	wantContent(t, s, "l1\nl5")
}

func TestVisualSwapEnds(t *testing.T) {
	s := NewWithContent("abcdef")
	keys(t, s, "llvlo")
	// o moved the cursor back to the anchor.
	wantCursor(t, s, 0, 2)
	keys(t, s, "h")
	keys(t, s, "d")
	wantContent(t, s, "aef")
}

func TestVisualObjectSelection(t *testing.T) {
	s := NewWithContent(`say "hello there" end`)
	keys(t, s, `fhvi"y`)
	keys(t, s, "$p")
	wantContent(t, s, `say "hello there" endhello there`)
}

func TestVisualBlockDelete(t *testing.T) {
	s := NewWithContent("abcd\nefgh\nijkl")
	keys(t, s, "l<C-v>jjld")
	wantContent(t, s, "ad\neh\nil")
}

func TestVisualEscapeCancels(t *testing.T) {
	s := NewWithContent("text")
	out := keys(t, s, "vl<Esc>")
	if out.Mode != mode.Normal {
		t.Errorf("mode = %v", out.Mode)
	}
	if out2 := keys(t, s, "x"); !out2.BufferChanged {
		t.Errorf("normal mode not restored")
	}
}

func TestMacroRecordAndReplay(t *testing.T) {
	s := New()
	keys(t, s, "qaihello<Esc>q")
	wantContent(t, s, "hello")
	// Replays pick up where the last insertion ended.
	keys(t, s, "2@a")
	wantContent(t, s, "hellohellohello")
}

func TestMacroAtAtRepeatsLast(t *testing.T) {
	s := NewWithContent("aaaa")
	keys(t, s, "qmxq")
	wantContent(t, s, "aaa")
	keys(t, s, "@m@@")
	wantContent(t, s, "a")
}

func TestMacroEmptyRegisterFails(t *testing.T) {
	s := New()
	out := keys(t, s, "@z")
	if !out.Failed {
		t.Errorf("@z on empty register should fail")
	}
}

func TestRecordingIndicator(t *testing.T) {
	s := New()
	keys(t, s, "qa")
	if ds := s.DisplayState(); ds.Recording != 'a' {
		t.Errorf("Recording = %q", ds.Recording)
	}
	keys(t, s, "q")
	if ds := s.DisplayState(); ds.Recording != 0 {
		t.Errorf("Recording = %q after stop", ds.Recording)
	}
}

func TestDotRepeatSimple(t *testing.T) {
	s := NewWithContent("abcdef")
	keys(t, s, "x.")
	wantContent(t, s, "cdef")
	keys(t, s, "2.")
	wantContent(t, s, "ef")
}

func TestDotRepeatInsert(t *testing.T) {
	s := New()
	keys(t, s, "iab<Esc>")
	wantContent(t, s, "ab")
	keys(t, s, ".")
	wantContent(t, s, "abab")
}

func TestDotRepeatOperator(t *testing.T) {
	s := NewWithContent("one two three four")
	keys(t, s, "dw.")
	wantContent(t, s, "three four")
}

func TestDotRepeatSurvivesEmptyInsert(t *testing.T) {
	s := NewWithContent("abc")
	keys(t, s, "x")
	wantContent(t, s, "bc")
	// An insert session with no edit is not a change.
	keys(t, s, "i<Esc>")
	keys(t, s, ".")
	wantContent(t, s, "c")
}

func TestDotWithoutChangeFails(t *testing.T) {
	s := NewWithContent("abc")
	out := keys(t, s, ".")
	if !out.Failed {
		t.Errorf(". with no prior change should fail")
	}
}

func TestSearchForward(t *testing.T) {
	s := NewWithContent("alpha\nbeta\ngamma beta")
	keys(t, s, "/beta<Enter>")
	wantCursor(t, s, 1, 0)
	keys(t, s, "n")
	wantCursor(t, s, 2, 6)
	// Wraps back around.
	keys(t, s, "n")
	wantCursor(t, s, 1, 0)
	keys(t, s, "N")
	wantCursor(t, s, 2, 6)
}

func TestSearchNotFound(t *testing.T) {
	s := NewWithContent("nothing")
	out := keys(t, s, "/absent<Enter>")
	if !out.Failed {
		t.Errorf("missing pattern should fail")
	}
	wantCursor(t, s, 0, 0)
}

func TestSearchEmptyReusesLast(t *testing.T) {
	s := NewWithContent("x target y target")
	keys(t, s, "/target<Enter>")
	wantCursor(t, s, 0, 2)
	keys(t, s, "/<Enter>")
	wantCursor(t, s, 0, 11)
}

func TestSearchWordUnderCursor(t *testing.T) {
	s := NewWithContent("foo foobar foo")
	keys(t, s, "*")
	// Whole-word match skips foobar.
	wantCursor(t, s, 0, 11)
	keys(t, s, "#")
	wantCursor(t, s, 0, 0)
}

func TestSubstituteCurrentLine(t *testing.T) {
	s := NewWithContent("foo foo\nfoo")
	keys(t, s, ":s/foo/bar/<Enter>")
	wantContent(t, s, "bar foo\nfoo")
}

func TestSubstituteGlobalAllLines(t *testing.T) {
	s := NewWithContent("foo foo\nfoo")
	keys(t, s, ":%s/foo/bar/g<Enter>")
	wantContent(t, s, "bar bar\nbar")
}

func TestSubstituteRange(t *testing.T) {
	s := NewWithContent("foo\nfoo\nfoo\nfoo")
	keys(t, s, ":2,3s/foo/bar/<Enter>")
	wantContent(t, s, "foo\nbar\nbar\nfoo")
}

func TestSubstituteBackrefs(t *testing.T) {
	s := NewWithContent("john smith")
	keys(t, s, `:s/(\w+) (\w+)/\2 \1/<Enter>`)
	wantContent(t, s, "smith john")
}

func TestSubstituteUndo(t *testing.T) {
	s := NewWithContent("foo\nfoo")
	keys(t, s, ":%s/foo/bar/g<Enter>")
	wantContent(t, s, "bar\nbar")
	keys(t, s, "u")
	wantContent(t, s, "foo\nfoo")
}

func TestSubstituteConfirmUnsupported(t *testing.T) {
	s := NewWithContent("foo foo")
	out := keys(t, s, ":s/foo/bar/c<Enter>")
	if !out.Failed {
		t.Errorf("confirm flag should report an error")
	}
	wantContent(t, s, "foo foo")
}

func TestExGotoLine(t *testing.T) {
	s := NewWithContent("a\nb\nc\nd")
	keys(t, s, ":3<Enter>")
	wantCursor(t, s, 2, 0)
	keys(t, s, ":$<Enter>")
	wantCursor(t, s, 3, 0)
}

func TestExQuit(t *testing.T) {
	s := New()
	out := keys(t, s, ":q<Enter>")
	if !out.Quit || !s.Quit() {
		t.Errorf("quit flag not set")
	}
}

func TestExUnknownCommand(t *testing.T) {
	s := New()
	out := keys(t, s, ":frobnicate<Enter>")
	if !out.Failed {
		t.Errorf("unknown ex command should fail")
	}
}

func TestCommandLineEscapeCancels(t *testing.T) {
	s := NewWithContent("foo")
	keys(t, s, ":s/foo/bar/")
	out := keys(t, s, "<Esc>")
	if out.Mode != mode.Normal {
		t.Errorf("mode = %v", out.Mode)
	}
	wantContent(t, s, "foo")
}

func TestGotoLineMotions(t *testing.T) {
	s := NewWithContent("a\nb\nc\nd\ne")
	keys(t, s, "G")
	wantCursor(t, s, 4, 0)
	keys(t, s, "gg")
	wantCursor(t, s, 0, 0)
	keys(t, s, "3G")
	wantCursor(t, s, 2, 0)
	keys(t, s, "2gg")
	wantCursor(t, s, 1, 0)
}

func TestFindCharMotions(t *testing.T) {
	s := NewWithContent("say: hello; done")
	keys(t, s, "f;")
	wantCursor(t, s, 0, 10)
	keys(t, s, "F:")
	wantCursor(t, s, 0, 3)
	keys(t, s, "dt;")
	wantContent(t, s, "say; done")
}

func TestMatchPairMotion(t *testing.T) {
	s := NewWithContent("f(a, (b))")
	keys(t, s, "f(%")
	wantCursor(t, s, 0, 8)
	keys(t, s, "%")
	wantCursor(t, s, 0, 1)
}

func TestUnrecognizedKeyFails(t *testing.T) {
	s := NewWithContent("abc")
	out := keys(t, s, "&")
	if !out.Failed {
		t.Errorf("& should be unrecognized")
	}
	// Parser state fully cleared: next command runs clean.
	keys(t, s, "x")
	wantContent(t, s, "bc")
}

func TestPendingDisplay(t *testing.T) {
	s := New()
	out := keys(t, s, "2d")
	if out.Pending != "2d" {
		t.Errorf("Pending = %q", out.Pending)
	}
	keys(t, s, "<Esc>")
	if ds := s.DisplayState(); ds.Pending != "" {
		t.Errorf("Pending = %q after escape", ds.Pending)
	}
}

func TestLastCommandDisplay(t *testing.T) {
	s := NewWithContent("one two three")
	if ds := s.DisplayState(); ds.LastCommand != "" {
		t.Errorf("LastCommand = %q before any command", ds.LastCommand)
	}
	keys(t, s, "2dw")
	if ds := s.DisplayState(); ds.LastCommand != "2dw" {
		t.Errorf("LastCommand = %q, want 2dw", ds.LastCommand)
	}
	keys(t, s, "x")
	if ds := s.DisplayState(); ds.LastCommand != "x" {
		t.Errorf("LastCommand = %q, want x", ds.LastCommand)
	}
	// An abandoned pending command does not disturb it.
	keys(t, s, "2d<Esc>")
	if ds := s.DisplayState(); ds.LastCommand != "x" {
		t.Errorf("LastCommand = %q after escape, want x", ds.LastCommand)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	s := NewWithContent("alpha\nbeta")
	keys(t, s, "qexq")         // macro e deletes one char
	keys(t, s, `"zyy`)         // register z holds the first line
	keys(t, s, "/beta<Enter>") // search state
	wantContent(t, s, "lpha\nbeta")
	data, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored := New()
	if err := restored.Deserialize(data); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	wantContent(t, restored, "lpha\nbeta")
	if restored.Cursor() != s.Cursor() {
		t.Errorf("cursor = %+v, want %+v", restored.Cursor(), s.Cursor())
	}
	if restored.SessionID() != s.SessionID() {
		t.Errorf("session = %q, want %q", restored.SessionID(), s.SessionID())
	}
	if restored.Mode() != mode.Normal {
		t.Errorf("restored mode = %v", restored.Mode())
	}

	// Register contents survived.
	keys(t, restored, `"zp`)
	wantContent(t, restored, "lpha\nbeta\nlpha")
	// Macro survived.
	keys(t, restored, "gg@e")
	wantContent(t, restored, "pha\nbeta\nlpha")
	// Search pattern survived.
	keys(t, restored, "n")
	wantCursor(t, restored, 1, 0)
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	s := New()
	for _, data := range []string{
		"not json",
		"{}",
		`{"version":99,"lines":["a"]}`,
		`{"version":1,"lines":"nope"}`,
		`{"version":1,"lines":[42]}`,
	} {
		if err := s.Deserialize(data); err == nil {
			t.Errorf("Deserialize(%q) accepted", data)
		}
	}
}

func TestDeserializeKeepsHistoryEmpty(t *testing.T) {
	s := NewWithContent("x")
	keys(t, s, "x")
	data, _ := s.Serialize()

	restored := New()
	restored.Deserialize(data)
	out := keys(t, restored, "u")
	if out.BufferChanged {
		t.Errorf("restored session had undo history")
	}
}

func TestParagraphMotionAndObject(t *testing.T) {
	s := NewWithContent("p1a\np1b\n\np2a\np2b")
	keys(t, s, "}")
	wantCursor(t, s, 2, 0)
	keys(t, s, "}")
	wantCursor(t, s, 4, 2)
	keys(t, s, "{")
	wantCursor(t, s, 2, 0)
}

func TestStatusMessages(t *testing.T) {
	s := NewWithContent("abc")
	out := keys(t, s, "qa")
	if !strings.Contains(out.Status, "recording") {
		t.Errorf("status = %q", out.Status)
	}
}
