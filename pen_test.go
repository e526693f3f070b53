package vtscreen

import (
	"image/color"
	"testing"

	"github.com/danielgatis/go-ansicode"
)

func TestSetPenAttr(t *testing.T) {
	s := New(WithSize(5, 10))

	cases := []struct {
		attr  PenAttr
		val   PenValue
		check func(p Pen) bool
	}{
		{PenAttrBold, PenValue{Bool: true}, func(p Pen) bool { return p.Bold }},
		{PenAttrUnderline, PenValue{Int: 2}, func(p Pen) bool { return p.Underline == 2 }},
		{PenAttrItalic, PenValue{Bool: true}, func(p Pen) bool { return p.Italic }},
		{PenAttrBlink, PenValue{Bool: true}, func(p Pen) bool { return p.Blink }},
		{PenAttrReverse, PenValue{Bool: true}, func(p Pen) bool { return p.Reverse }},
		{PenAttrConceal, PenValue{Bool: true}, func(p Pen) bool { return p.Conceal }},
		{PenAttrStrike, PenValue{Bool: true}, func(p Pen) bool { return p.Strike }},
		{PenAttrFont, PenValue{Int: 3}, func(p Pen) bool { return p.Font == 3 }},
		{PenAttrSmall, PenValue{Bool: true}, func(p Pen) bool { return p.Small }},
		{PenAttrBaseline, PenValue{Int: 1}, func(p Pen) bool { return p.Baseline == 1 }},
	}

	for _, c := range cases {
		if !s.SetPenAttr(c.attr, c.val) {
			t.Errorf("attr %d: expected SetPenAttr to succeed", c.attr)
		}
		if !c.check(s.Pen()) {
			t.Errorf("attr %d: pen not updated", c.attr)
		}
	}

	s.SetPenAttr(PenAttrForeground, PenValue{Color: &IndexedColor{Index: 4}})
	if !colorsEqual(s.Pen().Fg, &IndexedColor{Index: 4}) {
		t.Error("expected foreground updated")
	}
}

func TestPenSnapshotPerCell(t *testing.T) {
	s := New(WithSize(5, 10))

	s.SetPenAttr(PenAttrBold, PenValue{Bool: true})
	s.PutGlyph(Glyph{Chars: []rune{'B'}, Width: 1}, Pos{Row: 0, Col: 0})
	s.SetPenAttr(PenAttrBold, PenValue{Bool: false})
	s.PutGlyph(Glyph{Chars: []rune{'n'}, Width: 1}, Pos{Row: 0, Col: 1})

	var cell ScreenCell
	s.GetCell(Pos{Row: 0, Col: 0}, &cell)
	if !cell.Attrs.Bold {
		t.Error("expected the first cell to keep its bold snapshot")
	}
	s.GetCell(Pos{Row: 0, Col: 1}, &cell)
	if cell.Attrs.Bold {
		t.Error("expected the second cell unaffected by the earlier pen")
	}
}

func TestApplyCharAttributeFlags(t *testing.T) {
	s := New(WithSize(5, 10))

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{Attr: ansicode.CharAttributeBold})
	if !s.Pen().Bold {
		t.Error("expected bold set")
	}

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{Attr: ansicode.CharAttributeDoubleUnderline})
	if s.Pen().Underline != 2 {
		t.Errorf("expected double underline, got %d", s.Pen().Underline)
	}

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{Attr: ansicode.CharAttributeHidden})
	if !s.Pen().Conceal {
		t.Error("expected hidden to map to conceal")
	}

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{Attr: ansicode.CharAttributeCancelBoldDim})
	if s.Pen().Bold {
		t.Error("expected bold cancelled")
	}

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{Attr: ansicode.CharAttributeReset})
	p := s.Pen()
	if p.Bold || p.Underline != 0 || p.Conceal {
		t.Error("expected reset to restore the default pen")
	}
	if !IsDefaultFg(p.Fg) || !IsDefaultBg(p.Bg) {
		t.Error("expected reset to restore default colors")
	}
}

func TestApplyCharAttributeColors(t *testing.T) {
	s := New(WithSize(5, 10))

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{
		Attr:     ansicode.CharAttributeForeground,
		RGBColor: &ansicode.RGBColor{R: 10, G: 20, B: 30},
	})
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if !colorsEqual(s.Pen().Fg, want) {
		t.Errorf("expected RGB foreground %v, got %v", want, s.Pen().Fg)
	}

	s.ApplyCharAttribute(ansicode.TerminalCharAttribute{
		Attr:         ansicode.CharAttributeBackground,
		IndexedColor: &ansicode.IndexedColor{Index: 5},
	})
	if !colorsEqual(s.Pen().Bg, &IndexedColor{Index: 5}) {
		t.Errorf("expected indexed background, got %v", s.Pen().Bg)
	}
}

func TestEraseInheritsLineFlags(t *testing.T) {
	s := New(WithSize(5, 10))

	s.SetLineInfo(0, LineInfo{DoubleWidth: true})
	s.Erase(Rect{StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 5}, false)

	if !s.cellAt(0, 0).pen.DWL {
		t.Error("expected erased cells on a double-width line to keep dwl")
	}
}

func TestSetDefaultColors(t *testing.T) {
	rec := &damageRecorder{}
	s := New(WithSize(5, 10), WithDamage(rec))

	fg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	bg := color.RGBA{R: 4, G: 5, B: 6, A: 255}
	s.SetDefaultColors(fg, bg)

	if got := s.ResolveColor(&NamedColor{Name: NamedColorForeground}, true); got != fg {
		t.Errorf("expected new default fg, got %v", got)
	}
	if got := s.ResolveColor(&NamedColor{Name: NamedColorBackground}, false); got != bg {
		t.Errorf("expected new default bg, got %v", got)
	}

	if len(rec.rects) == 0 {
		t.Error("expected a full-screen damage after changing defaults")
	}
}
