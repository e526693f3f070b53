package vtscreen

// Glyph is one interpreted character event from the state layer: the
// codepoints of a single glyph (base character plus combining marks),
// its display width in columns, and the out-of-band flags that travel
// with the write.
type Glyph struct {
	Chars     []rune
	Width     int
	Protected bool
	DWL       bool
	DHL       int
}

// PutGlyph writes a glyph at pos using the current pen. The cells to
// the right of a width-2 glyph's leading cell are marked as its
// trailing half. Damage covering the occupied rectangle is recorded.
// Returns false if pos is out of bounds.
func (s *Screen) PutGlyph(g Glyph, pos Pos) bool {
	c := s.cellAt(pos.Row, pos.Col)
	if c == nil {
		return false
	}

	i := 0
	for ; i < MaxCellRunes && i < len(g.Chars) && g.Chars[i] != 0; i++ {
		c.chars[i] = g.Chars[i]
	}
	if i < MaxCellRunes {
		c.chars[i] = 0
	}

	c.pen = s.pen

	width := g.Width
	if width < 1 {
		width = 1
	}
	for col := 1; col < width; col++ {
		if cont := s.cellAt(pos.Row, pos.Col+col); cont != nil {
			cont.setWideCont()
		}
	}

	c.pen.Protected = g.Protected
	c.pen.DWL = g.DWL
	c.pen.DHL = g.DHL

	endCol := pos.Col + width
	if endCol > s.cols {
		endCol = s.cols
	}
	s.damageRect(Rect{
		StartRow: pos.Row,
		EndRow:   pos.Row + 1,
		StartCol: pos.Col,
		EndCol:   endCol,
	})

	return true
}

// MoveCursor forwards a cursor movement to the host.
func (s *Screen) MoveCursor(pos, oldPos Pos, visible bool) {
	s.cursorProvider.MoveCursor(pos, oldPos, visible)
}

// scrollRectOps decomposes a scroll of rect by (downward, rightward)
// into one overlapping move plus one erase of the vacated strip,
// applied through the given primitives.
func scrollRectOps(rect Rect, downward, rightward int, moverect func(dest, src Rect), eraserect func(rect Rect, selective bool)) {
	if abs(downward) >= rect.Height() || abs(rightward) >= rect.Width() {
		// Scrolled out entirely: nothing to move, just erase.
		eraserect(rect, false)
		return
	}

	var src, dest Rect

	if downward >= 0 {
		dest.StartRow = rect.StartRow
		dest.EndRow = rect.EndRow - downward
		src.StartRow = rect.StartRow + downward
		src.EndRow = rect.EndRow
	} else {
		dest.StartRow = rect.StartRow - downward
		dest.EndRow = rect.EndRow
		src.StartRow = rect.StartRow
		src.EndRow = rect.EndRow + downward
	}

	if rightward >= 0 {
		dest.StartCol = rect.StartCol
		dest.EndCol = rect.EndCol - rightward
		src.StartCol = rect.StartCol + rightward
		src.EndCol = rect.EndCol
	} else {
		dest.StartCol = rect.StartCol - rightward
		dest.EndCol = rect.EndCol
		src.StartCol = rect.StartCol
		src.EndCol = rect.EndCol + rightward
	}

	moverect(dest, src)

	if downward > 0 {
		rect.StartRow = rect.EndRow - downward
	} else if downward < 0 {
		rect.EndRow = rect.StartRow - downward
	} else if rightward > 0 {
		rect.StartCol = rect.EndCol - rightward
	} else {
		rect.EndCol = rect.StartCol - rightward
	}

	eraserect(rect, false)
}

// moveRectInternal moves cells between overlapping regions of the
// active grid, iterating rows away from the overlap.
func (s *Screen) moveRectInternal(dest, src Rect) {
	cols := src.EndCol - src.StartCol
	downward := src.StartRow - dest.StartRow

	var initRow, testRow, incRow int
	if downward < 0 {
		initRow = dest.EndRow - 1
		testRow = dest.StartRow - 1
		incRow = -1
	} else {
		initRow = dest.StartRow
		testRow = dest.EndRow
		incRow = 1
	}

	buf := s.buffers[s.active]
	for row := initRow; row != testRow; row += incRow {
		di := row*s.cols + dest.StartCol
		si := (row+downward)*s.cols + src.StartCol
		copy(buf[di:di+cols], buf[si:si+cols])
	}
}

// eraseInternal blanks the cells of rect. The erased pen keeps only the
// current foreground and background; all other attributes reset, and
// dwl/dhl are inherited from the row's line info. Cells marked
// protected survive a selective erase.
func (s *Screen) eraseInternal(rect Rect, selective bool) {
	for row := rect.StartRow; row < s.rows && row < rect.EndRow; row++ {
		info := s.lineinfo[s.active][row]

		for col := rect.StartCol; col < rect.EndCol; col++ {
			c := s.cellAt(row, col)
			if c == nil {
				continue
			}
			if selective && c.pen.Protected {
				continue
			}

			c.chars[0] = 0
			c.pen = Pen{
				Fg: s.pen.Fg,
				Bg: s.pen.Bg,
			}
			c.pen.DWL = info.DoubleWidth
			c.pen.DHL = info.DoubleHeight
		}
	}
}

// Erase blanks rect and records damage for it. With selective set,
// cells written with the protected flag are left intact.
func (s *Screen) Erase(rect Rect, selective bool) bool {
	s.eraseInternal(rect, selective)
	s.damageRect(rect)
	return true
}

// pushScrolledRows serializes the rows a scroll is about to push off
// the top of the primary grid to host scrollback. Only full-width
// scrolls anchored at the top-left qualify.
func (s *Screen) pushScrolledRows(rect Rect, downward int) {
	if s.scrollback == nil {
		return
	}
	if rect.StartRow != 0 || rect.StartCol != 0 || rect.EndCol != s.cols {
		return
	}
	if s.active != bufPrimary || downward <= 0 {
		return
	}

	end := downward
	if end > rect.EndRow {
		end = rect.EndRow
	}
	for row := 0; row < end; row++ {
		s.pushBufferRow(s.buffers[s.active], s.cols, row, s.lineinfo[s.active][row].Continuation)
	}
}

// scrollLineInfo moves per-row line info along with a full-width
// vertical scroll so continuation flags stay attached to their rows.
func (s *Screen) scrollLineInfo(rect Rect, downward, rightward int) {
	if rightward != 0 || downward == 0 {
		return
	}
	if rect.StartCol != 0 || rect.EndCol != s.cols {
		return
	}

	li := s.lineinfo[s.active]
	height := rect.Height()

	if abs(downward) >= height {
		for row := rect.StartRow; row < rect.EndRow; row++ {
			li[row] = LineInfo{}
		}
		return
	}

	if downward > 0 {
		copy(li[rect.StartRow:rect.EndRow-downward], li[rect.StartRow+downward:rect.EndRow])
		for row := rect.EndRow - downward; row < rect.EndRow; row++ {
			li[row] = LineInfo{}
		}
	} else {
		n := -downward
		for row := rect.EndRow - 1; row >= rect.StartRow+n; row-- {
			li[row] = li[row-n]
		}
		for row := rect.StartRow; row < rect.StartRow+n; row++ {
			li[row] = LineInfo{}
		}
	}
}

// ScrollRect moves the contents of rect by (downward, rightward) cells,
// erases the vacated strip, and reports the change to the host. Rows a
// top-anchored full-width scroll pushes off the primary grid are
// serialized to scrollback first. Under the DamageScroll merge level
// the host-visible scroll is deferred and coalesced with collinear
// successors.
func (s *Screen) ScrollRect(rect Rect, downward, rightward int) bool {
	s.pushScrolledRows(rect, downward)
	s.scrollLineInfo(rect, downward, rightward)

	if s.damageMerge != DamageScroll {
		scrollRectOps(rect, downward, rightward, s.moveRectInternal, s.eraseInternal)
		s.FlushDamage()
		scrollRectOps(rect, downward, rightward, s.moveRectUser, s.eraseUser)
		return true
	}

	if s.damage.hasRect && !rect.Intersects(s.damage.rect) {
		s.FlushDamage()
	}

	if !s.damage.hasScroll {
		s.damage.setScroll(rect, downward, rightward)
	} else if s.damage.scroll == rect &&
		((s.damage.downward == 0 && downward == 0) ||
			(s.damage.rightward == 0 && rightward == 0)) {
		s.damage.downward += downward
		s.damage.rightward += rightward
	} else {
		s.FlushDamage()
		s.damage.setScroll(rect, downward, rightward)
	}

	scrollRectOps(rect, downward, rightward, s.moveRectInternal, s.eraseInternal)

	if !s.damage.hasRect {
		return true
	}

	if rect.Contains(s.damage.rect) {
		// Scroll region entirely contains the damage; just move it.
		s.damage.rect.translate(-downward, -rightward)
		s.damage.rect.clip(rect)
	} else if rect.StartCol <= s.damage.rect.StartCol &&
		rect.EndCol >= s.damage.rect.EndCol &&
		rightward == 0 {
		// A vertical scroll that spans the damage horizontally: shift
		// the damaged row range, clamping to the scrolled region.
		if s.damage.rect.StartRow >= rect.StartRow && s.damage.rect.StartRow < rect.EndRow {
			s.damage.rect.StartRow -= downward
			if s.damage.rect.StartRow < rect.StartRow {
				s.damage.rect.StartRow = rect.StartRow
			}
			if s.damage.rect.StartRow > rect.EndRow {
				s.damage.rect.StartRow = rect.EndRow
			}
		}
		if s.damage.rect.EndRow >= rect.StartRow && s.damage.rect.EndRow < rect.EndRow {
			s.damage.rect.EndRow -= downward
			if s.damage.rect.EndRow < rect.StartRow {
				s.damage.rect.EndRow = rect.StartRow
			}
			if s.damage.rect.EndRow > rect.EndRow {
				s.damage.rect.EndRow = rect.EndRow
			}
		}
	} else {
		s.FlushDamage()
	}

	return true
}

// SetPenAttr applies one attribute event to the pen register.
func (s *Screen) SetPenAttr(attr PenAttr, val PenValue) bool {
	return s.pen.setAttr(attr, val)
}

// SetTermProp applies a terminal property change. PropAltScreen toggles
// the active grid, allocating the alternate grid on first enable;
// PropReverse flips global reverse video. Every property is forwarded
// to the host afterwards.
func (s *Screen) SetTermProp(prop Prop, val PropValue) bool {
	switch prop {
	case PropAltScreen:
		if val.Bool {
			s.EnableAltScreen()
			s.active = bufAlt
			// No damage on enable; the state layer's erase that follows
			// the switch damages the screen anyway.
		} else {
			s.active = bufPrimary
			s.damageScreen()
		}
	case PropReverse:
		s.globalReverse = val.Bool
		s.damageScreen()
	}

	s.propProvider.SetProp(prop, val)
	return true
}

// Bell forwards a bell request to the host.
func (s *Screen) Bell() {
	s.bellProvider.Ring()
}

// SetLineInfo applies a line-info update to a row of the active grid.
// A change of the double-width or double-height flags rewrites the
// row's cell pens and damages the now-visible portion; entering
// double-width erases the right half of the line. Returns false for an
// out-of-bounds row.
func (s *Screen) SetLineInfo(row int, info LineInfo) bool {
	if row < 0 || row >= s.rows {
		return false
	}

	old := s.lineinfo[s.active][row]

	if info.DoubleWidth != old.DoubleWidth || info.DoubleHeight != old.DoubleHeight {
		for col := 0; col < s.cols; col++ {
			c := s.cellAt(row, col)
			c.pen.DWL = info.DoubleWidth
			c.pen.DHL = info.DoubleHeight
		}

		rect := Rect{
			StartRow: row,
			EndRow:   row + 1,
			StartCol: 0,
			EndCol:   s.cols,
		}
		if info.DoubleWidth {
			rect.EndCol = s.cols / 2
		}
		s.damageRect(rect)

		if info.DoubleWidth {
			rect.StartCol = s.cols / 2
			rect.EndCol = s.cols
			s.eraseInternal(rect, false)
		}
	}

	s.lineinfo[s.active][row] = info
	return true
}

// SbClear discards all host scrollback. Returns false when no
// scrollback provider is configured.
func (s *Screen) SbClear() bool {
	if s.scrollback == nil {
		return false
	}
	s.scrollback.Clear()
	return true
}
