package vtscreen

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// Pen is the bundle of drawing attributes in effect when a cell is
// written. A snapshot of the pen is stored in every cell.
type Pen struct {
	Fg color.Color
	Bg color.Color

	Bold      bool
	Underline int // 0 none, 1 single, 2 double, 3 curly
	Italic    bool
	Blink     bool
	Reverse   bool
	Conceal   bool
	Strike    bool
	Font      int // 0 to 9
	Small     bool
	Baseline  int

	// Extra state that isn't strictly pen-related but travels with it.
	Protected bool // erase-protection (DECSCA)
	DWL       bool // cell lies on a double-width line
	DHL       int  // 0 none, 1 top half, 2 bottom half
}

// NewPen creates a pen with default colors and no attributes set.
func NewPen() Pen {
	return Pen{
		Fg: &NamedColor{Name: NamedColorForeground},
		Bg: &NamedColor{Name: NamedColorBackground},
	}
}

// PenAttr selects one pen attribute for a SetPenAttr event.
type PenAttr int

const (
	PenAttrBold PenAttr = iota
	PenAttrUnderline
	PenAttrItalic
	PenAttrBlink
	PenAttrReverse
	PenAttrConceal
	PenAttrStrike
	PenAttrFont
	PenAttrForeground
	PenAttrBackground
	PenAttrSmall
	PenAttrBaseline
)

// PenValue carries the payload of a SetPenAttr event. Exactly one field
// is meaningful for any given attribute: Bool for flags, Int for
// underline/font/baseline, Color for foreground/background.
type PenValue struct {
	Bool  bool
	Int   int
	Color color.Color
}

// setAttr applies one attribute event to the pen. Returns false for an
// unrecognized attribute.
func (p *Pen) setAttr(attr PenAttr, val PenValue) bool {
	switch attr {
	case PenAttrBold:
		p.Bold = val.Bool
	case PenAttrUnderline:
		p.Underline = val.Int
	case PenAttrItalic:
		p.Italic = val.Bool
	case PenAttrBlink:
		p.Blink = val.Bool
	case PenAttrReverse:
		p.Reverse = val.Bool
	case PenAttrConceal:
		p.Conceal = val.Bool
	case PenAttrStrike:
		p.Strike = val.Bool
	case PenAttrFont:
		p.Font = val.Int
	case PenAttrForeground:
		p.Fg = val.Color
	case PenAttrBackground:
		p.Bg = val.Color
	case PenAttrSmall:
		p.Small = val.Bool
	case PenAttrBaseline:
		p.Baseline = val.Int
	default:
		return false
	}
	return true
}

// attrs converts the pen to the external attribute form.
func (p *Pen) attrs() CellAttrs {
	return CellAttrs{
		Bold:      p.Bold,
		Underline: p.Underline,
		Italic:    p.Italic,
		Blink:     p.Blink,
		Reverse:   p.Reverse,
		Conceal:   p.Conceal,
		Strike:    p.Strike,
		Font:      p.Font,
		Small:     p.Small,
		Baseline:  p.Baseline,
		DWL:       p.DWL,
		DHL:       p.DHL,
	}
}

// penFromAttrs rebuilds a pen from the external attribute form.
func penFromAttrs(attrs CellAttrs, fg, bg color.Color) Pen {
	return Pen{
		Fg:        fg,
		Bg:        bg,
		Bold:      attrs.Bold,
		Underline: attrs.Underline,
		Italic:    attrs.Italic,
		Blink:     attrs.Blink,
		Reverse:   attrs.Reverse,
		Conceal:   attrs.Conceal,
		Strike:    attrs.Strike,
		Font:      attrs.Font,
		Small:     attrs.Small,
		Baseline:  attrs.Baseline,
		DWL:       attrs.DWL,
		DHL:       attrs.DHL,
	}
}

// ApplyCharAttribute applies an SGR attribute event from a go-ansicode
// driven state layer to the pen register. Dotted and dashed underlines
// are approximated as curly; attributes with no pen field (dim,
// underline color) are ignored.
func (s *Screen) ApplyCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		s.pen = NewPen()

	case ansicode.CharAttributeBold:
		s.pen.Bold = true
	case ansicode.CharAttributeCancelBold, ansicode.CharAttributeCancelBoldDim:
		s.pen.Bold = false

	case ansicode.CharAttributeItalic:
		s.pen.Italic = true
	case ansicode.CharAttributeCancelItalic:
		s.pen.Italic = false

	case ansicode.CharAttributeUnderline:
		s.pen.Underline = 1
	case ansicode.CharAttributeDoubleUnderline:
		s.pen.Underline = 2
	case ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		s.pen.Underline = 3
	case ansicode.CharAttributeCancelUnderline:
		s.pen.Underline = 0

	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		s.pen.Blink = true
	case ansicode.CharAttributeCancelBlink:
		s.pen.Blink = false

	case ansicode.CharAttributeReverse:
		s.pen.Reverse = true
	case ansicode.CharAttributeCancelReverse:
		s.pen.Reverse = false

	case ansicode.CharAttributeHidden:
		s.pen.Conceal = true
	case ansicode.CharAttributeCancelHidden:
		s.pen.Conceal = false

	case ansicode.CharAttributeStrike:
		s.pen.Strike = true
	case ansicode.CharAttributeCancelStrike:
		s.pen.Strike = false

	case ansicode.CharAttributeForeground:
		s.pen.Fg = resolveAttrColor(attr, true)
	case ansicode.CharAttributeBackground:
		s.pen.Bg = resolveAttrColor(attr, false)
	}
}

// resolveAttrColor converts the color payload of an SGR attribute to
// the internal color model.
func resolveAttrColor(attr ansicode.TerminalCharAttribute, fg bool) color.Color {
	if attr.RGBColor != nil {
		return color.RGBA{
			R: attr.RGBColor.R,
			G: attr.RGBColor.G,
			B: attr.RGBColor.B,
			A: 255,
		}
	}

	if attr.IndexedColor != nil {
		return &IndexedColor{Index: int(attr.IndexedColor.Index)}
	}

	if attr.NamedColor != nil {
		return &NamedColor{Name: int(*attr.NamedColor)}
	}

	if fg {
		return &NamedColor{Name: NamedColorForeground}
	}
	return &NamedColor{Name: NamedColorBackground}
}
