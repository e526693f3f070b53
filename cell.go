package vtscreen

import "image/color"

// MaxCellRunes is the maximum number of codepoints a single cell can
// hold: one base character plus combining marks.
const MaxCellRunes = 6

// wideCont marks the trailing half of a double-width glyph. It is not a
// valid codepoint; it only ever appears in chars[0] of the cell
// immediately to the right of a width-2 glyph, never in column 0. The
// encoding is private to this file: all reads and writes of the marker
// go through the accessor methods below.
const wideCont rune = -1

// cell is the internal representation of one screen position: the
// codepoints written there and a snapshot of the pen at write time.
type cell struct {
	chars [MaxCellRunes]rune
	pen   Pen
}

// isEmpty returns true if the cell holds no character (erased/blank).
func (c *cell) isEmpty() bool {
	return c.chars[0] == 0
}

// isWideCont returns true if the cell is the trailing half of the
// double-width glyph to its left. Such a cell must not be read or
// overwritten independently of its leading cell.
func (c *cell) isWideCont() bool {
	return c.chars[0] == wideCont
}

// setWideCont marks the cell as the trailing half of a wide glyph.
func (c *cell) setWideCont() {
	c.chars[0] = wideCont
}

// clear erases the cell's characters. The pen is deliberately
// preserved; the erase path resets fg/bg explicitly where required.
func (c *cell) clear() {
	c.chars[0] = 0
}

// setRunes replaces the cell's characters, truncating at MaxCellRunes.
func (c *cell) setRunes(runes []rune) {
	i := 0
	for ; i < MaxCellRunes && i < len(runes) && runes[i] != 0; i++ {
		c.chars[i] = runes[i]
	}
	if i < MaxCellRunes {
		c.chars[i] = 0
	}
}

// appendRune adds a combining mark to the cell. Returns false if the
// cell is already full.
func (c *cell) appendRune(r rune) bool {
	for i := 0; i < MaxCellRunes; i++ {
		if c.chars[i] == 0 {
			c.chars[i] = r
			if i+1 < MaxCellRunes {
				c.chars[i+1] = 0
			}
			return true
		}
	}
	return false
}

// CellAttrs is the external form of a cell's rendering attributes.
type CellAttrs struct {
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

	DWL bool // cell lies on a double-width line
	DHL int  // 0 none, 1 top half, 2 bottom half of a double-height line
}

// ScreenCell is the external representation of one screen position,
// produced by [Screen.GetCell] and exchanged with scrollback storage.
type ScreenCell struct {
	// Chars holds the codepoints of the cell; a zero terminates the
	// sequence. Chars[0] == 0 means the cell is blank.
	Chars [MaxCellRunes]rune
	// Width is 2 if the cell begins a double-width glyph, else 1.
	Width int
	Attrs CellAttrs
	Fg    color.Color
	Bg    color.Color
}

// Runes returns the cell's codepoints as a slice.
func (c *ScreenCell) Runes() []rune {
	n := 0
	for n < MaxCellRunes && c.Chars[n] != 0 {
		n++
	}
	return c.Chars[:n]
}
