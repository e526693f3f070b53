package vtscreen

import (
	"testing"
)

// screenLines returns the stripped text of every row.
func screenLines(s *Screen) []string {
	lines := make([]string, s.Rows())
	for row := range lines {
		lines[row] = rowText(s, row)
	}
	return lines
}

func TestReflowNarrower(t *testing.T) {
	s := New(WithSize(4, 10), WithReflow(true))

	putRow(s, 0, "HELLO WORL")
	putRow(s, 1, "D")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	cursor := s.Resize(4, 5, Pos{Row: 0, Col: 0})

	want := []string{"HELLO", " WORL", "D", ""}
	for row, w := range want {
		if got := rowText(s, row); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}

	wantCont := []bool{false, true, true, false}
	for row, w := range wantCont {
		if got := s.LineInfo(row).Continuation; got != w {
			t.Errorf("row %d: expected continuation %v, got %v", row, w, got)
		}
	}

	if cursor != (Pos{Row: 0, Col: 0}) {
		t.Errorf("expected cursor unchanged at origin, got %v", cursor)
	}
}

func TestReflowWiderJoinsParagraph(t *testing.T) {
	s := New(WithSize(4, 5), WithReflow(true))

	putRow(s, 0, "HELLO")
	putRow(s, 1, "WORLD")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	s.Resize(4, 10, Pos{Row: 0, Col: 0})

	if got := rowText(s, 0); got != "HELLOWORLD" {
		t.Errorf("expected the paragraph on one row, got %q", got)
	}
	if rowText(s, 1) != "" {
		t.Errorf("expected row 1 blank, got %q", rowText(s, 1))
	}
	if s.LineInfo(0).Continuation {
		t.Error("expected the joined row to be a paragraph anchor")
	}
}

func TestReflowCursorMigration(t *testing.T) {
	s := New(WithSize(2, 5), WithReflow(true))

	putRow(s, 0, "HELLO")
	putRow(s, 1, "WORLD")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	cursor := s.Resize(2, 10, Pos{Row: 1, Col: 3})

	if cursor != (Pos{Row: 0, Col: 8}) {
		t.Errorf("expected cursor at (0,8), got %v", cursor)
	}
}

func TestReflowIdentityResize(t *testing.T) {
	s := New(WithSize(4, 10), WithReflow(true))

	putRow(s, 0, "HELLO WORL")
	putRow(s, 1, "D")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	before := screenLines(s)
	cursor := s.Resize(4, 10, Pos{Row: 1, Col: 1})

	after := screenLines(s)
	for row := range before {
		if before[row] != after[row] {
			t.Errorf("row %d changed on identity resize: %q -> %q", row, before[row], after[row])
		}
	}
	if !s.LineInfo(1).Continuation {
		t.Error("expected line info preserved on identity resize")
	}
	if cursor != (Pos{Row: 1, Col: 1}) {
		t.Errorf("expected cursor unchanged, got %v", cursor)
	}
}

func TestReflowRoundTrip(t *testing.T) {
	s := New(WithSize(4, 10), WithReflow(true))

	putRow(s, 0, "ALPHA")
	putRow(s, 1, "BETA")
	putRow(s, 2, "GAMMA")

	cursor := Pos{Row: 1, Col: 2}
	cursor = s.Resize(6, 12, cursor)
	cursor = s.Resize(4, 10, cursor)

	want := []string{"ALPHA", "BETA", "GAMMA", ""}
	for row, w := range want {
		if got := rowText(s, row); got != w {
			t.Errorf("row %d: expected %q after round trip, got %q", row, w, got)
		}
	}
	if cursor != (Pos{Row: 1, Col: 2}) {
		t.Errorf("expected cursor preserved, got %v", cursor)
	}
}

func TestReflowParagraphTextPreserved(t *testing.T) {
	s := New(WithSize(6, 8), WithReflow(true))

	s.PutText(Pos{Row: 0, Col: 0}, "THE QUICK BROWN FOX")

	before := s.Text(Rect{StartRow: 0, EndRow: 6, StartCol: 0, EndCol: 8})

	cursor := s.Resize(6, 5, Pos{Row: 0, Col: 0})
	cursor = s.Resize(6, 8, cursor)
	_ = cursor

	after := s.Text(Rect{StartRow: 0, EndRow: 6, StartCol: 0, EndCol: 8})
	joinBefore := ""
	for _, r := range before {
		if r != '\n' {
			joinBefore += string(r)
		}
	}
	joinAfter := ""
	for _, r := range after {
		if r != '\n' {
			joinAfter += string(r)
		}
	}
	if joinBefore != joinAfter {
		t.Errorf("paragraph text changed: %q -> %q", joinBefore, joinAfter)
	}
}

func TestReflowDoesNotSplitWideGlyph(t *testing.T) {
	s := New(WithSize(4, 6), WithReflow(true))

	// Row 0: "AB" then a wide glyph straddling columns 2-3, then "CD".
	putRow(s, 0, "AB")
	s.PutGlyph(Glyph{Chars: []rune{'世'}, Width: 2}, Pos{Row: 0, Col: 2})
	s.PutGlyph(Glyph{Chars: []rune{'C'}, Width: 1}, Pos{Row: 0, Col: 4})
	s.PutGlyph(Glyph{Chars: []rune{'D'}, Width: 1}, Pos{Row: 0, Col: 5})

	// At width 3 the split point falls inside the wide glyph; it must
	// move whole to the next line, leaving a blank at the break.
	s.Resize(4, 3, Pos{Row: 0, Col: 0})

	if got := rowText(s, 0); got != "AB" {
		t.Errorf("expected %q, got %q", "AB", got)
	}
	if got := rowText(s, 1); got != "世C" {
		t.Errorf("expected %q, got %q", "世C", got)
	}
	if got := rowText(s, 2); got != "D" {
		t.Errorf("expected %q, got %q", "D", got)
	}

	if !s.cellAt(1, 1).isWideCont() {
		t.Error("expected the wide glyph intact on row 1")
	}
}

func TestReflowSpillsToScrollback(t *testing.T) {
	sb := &memoryScrollback{}
	s := New(WithSize(2, 10), WithReflow(true), WithScrollback(sb))

	putRow(s, 0, "HELLO WORL")
	putRow(s, 1, "D")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	// At width 5 the paragraph needs 3 rows but only 2 exist; the
	// overflow goes to scrollback.
	s.Resize(2, 5, Pos{Row: 1, Col: 0})

	if len(sb.lines) == 0 {
		t.Fatal("expected spilled lines in scrollback")
	}
}

func TestReflowRefillFromScrollback(t *testing.T) {
	sb := &memoryScrollback{}
	s := New(WithSize(4, 10), WithReflow(true), WithScrollback(sb))

	// Paragraph 1 wraps rows 0-1, paragraph 2 wraps rows 2-3.
	putRow(s, 0, "0123456789")
	putRow(s, 1, "ABCDE")
	s.SetLineInfo(1, LineInfo{Continuation: true})
	putRow(s, 2, "KLMNOPQRST")
	putRow(s, 3, "UVWXY")
	s.SetLineInfo(3, LineInfo{Continuation: true})

	// Scroll paragraph 1 off the top into scrollback.
	s.ScrollRect(Rect{StartRow: 0, EndRow: 4, StartCol: 0, EndCol: 10}, 2, 0)

	if len(sb.lines) != 2 {
		t.Fatalf("expected 2 scrollback lines, got %d", len(sb.lines))
	}
	if !sb.conts[1] {
		t.Error("expected the second pushed row to carry its continuation flag")
	}

	// Write paragraph 3 into the vacated bottom rows.
	putRow(s, 2, "fghijklmno")
	putRow(s, 3, "pqrst")
	s.SetLineInfo(3, LineInfo{Continuation: true})

	// Widening halves every paragraph's height; the freed rows refill
	// from scrollback and paragraph 1 re-materializes on one row.
	cursor := s.Resize(4, 20, Pos{Row: 3, Col: 4})

	want := []string{"0123456789ABCDE", "KLMNOPQRSTUVWXY", "fghijklmnopqrst", ""}
	for row, w := range want {
		if got := rowText(s, row); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}

	if s.LineInfo(0).Continuation {
		t.Error("expected the re-materialized paragraph to anchor at row 0")
	}
	if len(sb.lines) != 0 {
		t.Errorf("expected scrollback drained, got %d lines", len(sb.lines))
	}

	// The cursor sat on paragraph 3's continuation row; it follows the
	// join onto the merged row.
	if cursor != (Pos{Row: 2, Col: 14}) {
		t.Errorf("expected cursor at (2,14), got %v", cursor)
	}
}

func TestReflowRefillLongLinePushedBack(t *testing.T) {
	sb := &memoryScrollback{}
	s := New(WithSize(2, 10), WithReflow(true), WithScrollback(sb))

	// A stored line wider than the new width cannot be re-placed; it
	// must survive in scrollback untouched.
	wide := make([]ScreenCell, 15)
	for i := range wide {
		wide[i].Chars[0] = 'W'
		wide[i].Width = 1
	}
	sb.PushLineWithContinuation(wide, false)

	s.Resize(3, 10, Pos{Row: 0, Col: 0})

	if len(sb.lines) != 1 {
		t.Fatalf("expected the long line back in scrollback, got %d lines", len(sb.lines))
	}
	if len(sb.lines[0]) != 15 {
		t.Errorf("expected the pushed-back line intact, got %d cells", len(sb.lines[0]))
	}
}

func TestReflowRefillOnRowGrowth(t *testing.T) {
	sb := &memoryScrollback{}
	s := New(WithSize(2, 10), WithReflow(true), WithScrollback(sb))

	putRow(s, 0, "OLDEST")
	putRow(s, 1, "OLDER")
	s.ScrollRect(Rect{StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 10}, 2, 0)
	putRow(s, 0, "NOW")

	s.Resize(4, 10, Pos{Row: 0, Col: 0})

	want := []string{"OLDEST", "OLDER", "NOW", ""}
	for row, w := range want {
		if got := rowText(s, row); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}
	if len(sb.lines) != 0 {
		t.Errorf("expected scrollback drained, got %d lines", len(sb.lines))
	}
}

func TestReflowConPTYSkipsRefill(t *testing.T) {
	sb := &memoryScrollback{}
	s := New(WithSize(2, 10), WithReflow(true), WithScrollback(sb), WithConPTY(true))

	putRow(s, 0, "GONE")
	s.ScrollRect(Rect{StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 10}, 1, 0)

	s.Resize(4, 10, Pos{Row: 0, Col: 0})

	if len(sb.lines) != 1 {
		t.Errorf("expected scrollback untouched under ConPTY, got %d lines", len(sb.lines))
	}
}

func TestReflowOffTruncatesAndPads(t *testing.T) {
	s := New(WithSize(4, 10))

	putRow(s, 0, "0123456789")
	putRow(s, 1, "ABCDE")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	cursor := s.Resize(4, 5, Pos{Row: 0, Col: 7})

	if got := rowText(s, 0); got != "01234" {
		t.Errorf("expected truncation, got %q", got)
	}
	if got := rowText(s, 1); got != "ABCDE" {
		t.Errorf("expected row kept in place, got %q", got)
	}
	if cursor != (Pos{Row: 0, Col: 4}) {
		t.Errorf("expected cursor clamped to (0,4), got %v", cursor)
	}
}

func TestReflowAltGridNoScrollback(t *testing.T) {
	sb := &memoryScrollback{}
	s := New(WithSize(2, 10), WithReflow(true), WithScrollback(sb))

	putRow(s, 0, "PRIMARYROW")

	s.SetTermProp(PropAltScreen, PropValue{Bool: true})
	putRow(s, 0, "ALTCONTENT")
	putRow(s, 1, "WRAPPED")
	s.SetLineInfo(1, LineInfo{Continuation: true})

	// Shrinking makes the alt paragraph overflow; it must be dropped,
	// never spilled to scrollback.
	s.Resize(1, 10, Pos{Row: 1, Col: 0})

	for _, line := range sb.lines {
		for _, c := range line {
			if c.Chars[0] == 'A' || c.Chars[0] == 'W' {
				t.Fatal("alt-screen content must never reach scrollback")
			}
		}
	}
}

func TestReflowResizeCallbacksAndDamage(t *testing.T) {
	rec := &damageRecorder{}
	resized := [2]int{}
	s := New(WithSize(4, 10), WithReflow(true), WithDamage(rec),
		WithResize(resizeFunc(func(rows, cols int) { resized = [2]int{rows, cols} })))

	s.Resize(6, 20, Pos{Row: 0, Col: 0})

	if resized != [2]int{6, 20} {
		t.Errorf("expected resize callback with (6,20), got %v", resized)
	}

	full := Rect{StartRow: 0, EndRow: 6, StartCol: 0, EndCol: 20}
	found := false
	for _, r := range rec.rects {
		if r == full {
			found = true
		}
	}
	if !found {
		t.Errorf("expected full-screen damage after resize, got %v", rec.rects)
	}
}

type resizeFunc func(rows, cols int)

func (f resizeFunc) Resize(rows, cols int) { f(rows, cols) }

func TestReflowPlainScrollbackProvider(t *testing.T) {
	sb := &plainScrollback{}
	s := New(WithSize(2, 10), WithReflow(true), WithScrollback(sb))

	putRow(s, 0, "LINE")
	s.ScrollRect(Rect{StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 10}, 1, 0)

	if len(sb.inner.lines) != 1 {
		t.Fatalf("expected the plain push form to be used, got %d lines", len(sb.inner.lines))
	}
	if sb.inner.conts[0] {
		t.Error("expected no continuation information through the plain form")
	}
}
