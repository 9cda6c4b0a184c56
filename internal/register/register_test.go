package register

import "testing"

func TestValidName(t *testing.T) {
	valid := []rune{'"', '0', '5', '9', 'a', 'z', 'A', 'Z', '-', '_'}
	for _, r := range valid {
		if !ValidName(r) {
			t.Errorf("ValidName(%q) = false", r)
		}
	}
	invalid := []rune{'+', '*', '%', '@', ' ', '!'}
	for _, r := range invalid {
		if ValidName(r) {
			t.Errorf("ValidName(%q) = true", r)
		}
	}
}

func TestSetNamedMirrorsUnnamed(t *testing.T) {
	s := NewStore()
	if err := s.Set('a', Content{Text: "hello"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _ := s.Get('a')
	if got.Text != "hello" {
		t.Errorf("register a = %q", got.Text)
	}
	got, _ = s.Get(Unnamed)
	if got.Text != "hello" {
		t.Errorf("unnamed = %q, want mirror of named write", got.Text)
	}
}

func TestUppercaseAppends(t *testing.T) {
	s := NewStore()
	s.Set('b', Content{Text: "foo"})
	s.Set('B', Content{Text: "bar"})
	got, _ := s.Get('b')
	if got.Text != "foobar" {
		t.Errorf("register b = %q, want foobar", got.Text)
	}
	// Uppercase read resolves to the lowercase register.
	got, _ = s.Get('B')
	if got.Text != "foobar" {
		t.Errorf("Get('B') = %q", got.Text)
	}
}

func TestUppercaseAppendLinewise(t *testing.T) {
	s := NewStore()
	s.Set('c', Content{Text: "line1", Linewise: true})
	s.Set('C', Content{Text: "line2", Linewise: true})
	got, _ := s.Get('c')
	if got.Text != "line1\nline2" || !got.Linewise {
		t.Errorf("register c = %+v", got)
	}
}

func TestBlackHoleDiscards(t *testing.T) {
	s := NewStore()
	s.Set(Unnamed, Content{Text: "keep"})
	s.Set(BlackHole, Content{Text: "gone"})

	got, _ := s.Get(BlackHole)
	if !got.IsEmpty() {
		t.Errorf("black hole returned %q", got.Text)
	}
	got, _ = s.Get(Unnamed)
	if got.Text != "keep" {
		t.Errorf("unnamed = %q, black hole write leaked", got.Text)
	}
}

func TestRecordYankDefaultsToZero(t *testing.T) {
	s := NewStore()
	s.RecordYank(Unnamed, Content{Text: "yanked", Linewise: true})

	got, _ := s.Get('0')
	if got.Text != "yanked" || !got.Linewise {
		t.Errorf("register 0 = %+v", got)
	}
	got, _ = s.Get(Unnamed)
	if got.Text != "yanked" {
		t.Errorf("unnamed = %q", got.Text)
	}
}

func TestRecordYankNamed(t *testing.T) {
	s := NewStore()
	s.RecordYank('x', Content{Text: "to x"})

	got, _ := s.Get('x')
	if got.Text != "to x" {
		t.Errorf("register x = %q", got.Text)
	}
	got, _ = s.Get('0')
	if !got.IsEmpty() {
		t.Errorf("register 0 = %q, named yank should not touch it", got.Text)
	}
}

func TestRecordDeleteRotation(t *testing.T) {
	s := NewStore()
	for _, text := range []string{"first", "second", "third"} {
		s.RecordDelete(Unnamed, Content{Text: text, Linewise: true})
	}

	want := map[rune]string{'1': "third", '2': "second", '3': "first"}
	for name, text := range want {
		got, _ := s.Get(name)
		if got.Text != text {
			t.Errorf("register %q = %q, want %q", name, got.Text, text)
		}
	}
	got, _ := s.Get(Unnamed)
	if got.Text != "third" {
		t.Errorf("unnamed = %q, want newest delete", got.Text)
	}
}

func TestRecordDeleteRotationCapsAtNine(t *testing.T) {
	s := NewStore()
	for i := 0; i < 12; i++ {
		s.RecordDelete(Unnamed, Content{Text: string(rune('a' + i)), Linewise: true})
	}
	got, _ := s.Get('9')
	if got.Text != "d" {
		t.Errorf("register 9 = %q, want d (12th push evicts oldest)", got.Text)
	}
}

func TestSmallDeleteSkipsRotation(t *testing.T) {
	s := NewStore()
	s.RecordDelete(Unnamed, Content{Text: "big\ndelete", Linewise: true})
	s.RecordDelete(Unnamed, Content{Text: "wo"})

	got, _ := s.Get(SmallDelete)
	if got.Text != "wo" {
		t.Errorf("small delete register = %q", got.Text)
	}
	got, _ = s.Get('1')
	if got.Text != "big\ndelete" {
		t.Errorf("register 1 = %q, small delete must not rotate", got.Text)
	}
	got, _ = s.Get(Unnamed)
	if got.Text != "wo" {
		t.Errorf("unnamed = %q", got.Text)
	}
}

func TestRecordDeleteNamedTarget(t *testing.T) {
	s := NewStore()
	s.RecordDelete('d', Content{Text: "dropped line\n", Linewise: true})

	got, _ := s.Get('d')
	if got.Text != "dropped line\n" {
		t.Errorf("register d = %q", got.Text)
	}
	got, _ = s.Get('1')
	if !got.IsEmpty() {
		t.Errorf("register 1 = %q, named delete should not rotate", got.Text)
	}
}

func TestGetInvalidName(t *testing.T) {
	s := NewStore()
	if _, err := s.Get('%'); err == nil {
		t.Errorf("Get('%%') accepted")
	}
	if err := s.Set('+', Content{Text: "x"}); err == nil {
		t.Errorf("Set('+') accepted")
	}
}
