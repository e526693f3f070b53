package vtscreen

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width of a rune: 2 for wide characters
// (CJK, emoji), 1 for normal, 0 for zero-width marks.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// StringWidth returns the total display width of a string.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// PutText writes a string at pos using the current pen, splitting it
// into glyph events with widths from the character-width tables: wide
// glyphs occupy two columns and zero-width marks combine into the
// preceding cell. Writing wraps to the next row when the current row
// fills, marking the new row as a continuation of the one above.
// Writing stops at the bottom of the screen.
//
// PutText is a convenience for hosts (and tests) that have text rather
// than a stream of state-layer glyph events; it performs no cursor or
// control-character handling.
func (s *Screen) PutText(pos Pos, text string) Pos {
	last := Pos{Row: -1, Col: -1}

	for _, r := range text {
		w := runeWidth(r)

		if w == 0 {
			// Combining mark: attach to the previously written cell.
			if last.Row >= 0 {
				if c := s.cellAt(last.Row, last.Col); c != nil && c.appendRune(r) {
					s.damageRect(Rect{
						StartRow: last.Row,
						EndRow:   last.Row + 1,
						StartCol: last.Col,
						EndCol:   last.Col + 1,
					})
				}
			}
			continue
		}

		if pos.Col+w > s.cols {
			pos.Row++
			pos.Col = 0
			if pos.Row >= s.rows {
				break
			}
			info := s.lineinfo[s.active][pos.Row]
			info.Continuation = true
			s.lineinfo[s.active][pos.Row] = info
		}
		if pos.Row >= s.rows {
			break
		}

		s.PutGlyph(Glyph{Chars: []rune{r}, Width: w}, pos)
		last = pos
		pos.Col += w
	}

	return pos
}
