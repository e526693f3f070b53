package vtscreen

// linePopCount returns the column just past the last non-blank cell of
// a row, i.e. the number of cells that survive trailing-blank
// stripping.
func linePopCount(buf []cell, row, cols int) int {
	col := cols - 1
	for col >= 0 && buf[row*cols+col].chars[0] == 0 {
		col--
	}
	return col + 1
}

// sbLinePopCount is linePopCount for a serialized scrollback row.
func sbLinePopCount(line []ScreenCell) int {
	col := len(line) - 1
	for col >= 0 && line[col].Chars[0] == 0 {
		col--
	}
	return col + 1
}

// serializeCell converts one internal cell to the external form used by
// scrollback storage. wide is true when the cell to the right is the
// trailing half of this cell's glyph.
func (s *Screen) serializeCell(c *cell, wide bool, out *ScreenCell) {
	for i := 0; i < MaxCellRunes; i++ {
		out.Chars[i] = c.chars[i]
		if c.chars[i] == 0 {
			break
		}
	}

	out.Attrs = c.pen.attrs()
	out.Attrs.Reverse = c.pen.Reverse != s.globalReverse
	out.Fg = c.pen.Fg
	out.Bg = c.pen.Bg

	if wide {
		out.Width = 2
	} else {
		out.Width = 1
	}
}

// deserializeCell rebuilds an internal cell from the external form.
func (s *Screen) deserializeCell(src *ScreenCell, dst *cell) {
	for i := 0; i < MaxCellRunes; i++ {
		dst.chars[i] = src.Chars[i]
		if src.Chars[i] == 0 {
			break
		}
	}

	attrs := src.Attrs
	attrs.Reverse = attrs.Reverse != s.globalReverse
	dst.pen = penFromAttrs(attrs, src.Fg, src.Bg)
}

// pushBufferRow serializes one row of an explicit buffer to scrollback.
// Used during resize spill, when the row being pushed belongs to the
// outgoing grid rather than the active one.
func (s *Screen) pushBufferRow(buf []cell, bufCols, row int, continuation bool) {
	s.ensureSbBuffer(bufCols)
	for col := 0; col < bufCols; col++ {
		c := &buf[row*bufCols+col]
		wide := col < bufCols-1 && buf[row*bufCols+col+1].isWideCont()
		s.serializeCell(c, wide, &s.sbBuffer[col])
	}
	s.pushStagedLine(s.sbBuffer[:bufCols], continuation)
}

// pushStagedLine hands a serialized row to the scrollback provider,
// using the continuation-aware form when the provider supports it.
func (s *Screen) pushStagedLine(line []ScreenCell, continuation bool) {
	if cp, ok := s.scrollback.(ContinuationScrollbackProvider); ok {
		cp.PushLineWithContinuation(line, continuation)
	} else {
		s.scrollback.PushLine(line)
	}
}

// reflowLine re-emits the paragraph spanning rows
// [oldRowStart, oldRowEnd] of old (width oldCols) as lines of width
// newCols, preserving cell order and pens. Trailing blanks of every
// source row are stripped first. A double-width glyph is never split
// across a line boundary: when the split point falls on its trailing
// half, the glyph moves whole to the next line and the vacated column
// stays blank.
//
// With out nil the function only measures. out, when non-nil, is the
// flat destination starting at the paragraph's first new row; the
// cursor is migrated when the source cell under oldCursor is copied.
//
// Returns the index of the last row produced, the column of the last
// cell on it, and the total number of cells re-emitted.
func reflowLine(old []cell, oldRowStart, oldRowEnd, oldCols, newCols int,
	out []cell, oldCursor Pos, newCursor *Pos, newRowStart int) (lastRow, lastCol, total int) {

	newRow := 0
	oldRow := oldRowStart

	oldLineCells := linePopCount(old, oldRow, oldCols)
	oldLineTaken := 0
	newLineFilled := 0

	for {
		need := newCols - newLineFilled
		have := oldLineCells - oldLineTaken

		if have <= need {
			// The rest of this source row fits on the current new line.
			if out != nil {
				src := old[oldRow*oldCols+oldLineTaken : oldRow*oldCols+oldLineTaken+have]
				copy(out[newRow*newCols+newLineFilled:], src)

				if newCursor != nil && oldCursor.Row == oldRow && oldCursor.Col >= oldLineTaken {
					newCursor.Row = newRowStart + newRow
					newCursor.Col = newLineFilled + (oldCursor.Col - oldLineTaken)
				}
			}

			total += have
			newLineFilled += have

			oldRow++
			oldLineTaken = 0

			if oldRow > oldRowEnd {
				break
			}

			if have == need {
				newRow++
				newLineFilled = 0
			}

			oldLineCells = linePopCount(old, oldRow, oldCols)
		} else {
			// Fill the current new line and continue on the next.
			if out != nil {
				src := old[oldRow*oldCols+oldLineTaken : oldRow*oldCols+oldLineTaken+need]
				copy(out[newRow*newCols+newLineFilled:], src)

				if newCursor != nil && oldCursor.Row == oldRow &&
					oldCursor.Col >= oldLineTaken && oldCursor.Col < oldLineTaken+need {
					newCursor.Row = newRowStart + newRow
					newCursor.Col = newLineFilled + (oldCursor.Col - oldLineTaken)
				}
			}

			total += need
			oldLineTaken += need

			if old[oldRow*oldCols+oldLineTaken].isWideCont() {
				// The split would separate a wide glyph from its
				// trailing half; back off one column.
				oldLineTaken--
				total--
				if out != nil {
					out[newRow*newCols+newCols-1].clear()
				}
			}

			newRow++
			newLineFilled = 0
		}
	}

	lastRow = newRow
	if newLineFilled > 0 {
		lastCol = newLineFilled - 1
	}

	if newLineFilled > 0 && out != nil {
		for c := newLineFilled; c < newCols; c++ {
			out[newRow*newCols+c].clear()
		}
	}

	return lastRow, lastCol, total
}

// placeSbLine writes a popped scrollback line (already at most newCols
// cells after trailing-blank stripping) into one grid row, restoring
// wide-glyph continuation markers and blanking the remainder.
func (s *Screen) placeSbLine(line []ScreenCell, row []cell, newCols int) {
	col := 0
	for col < len(line) {
		src := &line[col]
		s.deserializeCell(src, &row[col])

		w := src.Width
		if w < 1 {
			w = 1
		}
		if w == 2 && col < newCols-1 {
			row[col+1].setWideCont()
		}
		col += w
	}

	for c := len(line); c < newCols; c++ {
		row[c].clear()
	}
}

// combineContinuationLines merges the continuation rows following
// rowStart into the spare capacity of the rows above them: prefix cells
// of each continuation row move up into the trailing gap, splitting a
// row when it is longer than the gap (backing off one column rather
// than breaking a wide glyph). Rows that empty out collapse the
// paragraph. The combined paragraph is then shifted back down so it
// ends where it used to, surfacing the freed rows above rowStart for
// the refill loop to use.
//
// Returns the change in occupied row count (zero or negative).
func combineContinuationLines(buf []cell, rowStart, rows, cols int, lineinfo []LineInfo) int {
	deltaCount := 0

	targetRow := rowStart
	targetCount := linePopCount(buf, targetRow, cols)
	srcRow := targetRow + 1

	for {
		if targetCount == cols {
			targetRow++
			if targetRow >= rows {
				break
			}
			if !lineinfo[targetRow].Continuation {
				break
			}
			targetCount = linePopCount(buf, targetRow, cols)
			if targetRow >= srcRow {
				srcRow = targetRow + 1
			}
			continue
		}

		if srcRow >= rows || targetRow >= rows {
			break
		}
		if !lineinfo[srcRow].Continuation {
			break
		}

		spare := cols - targetCount
		srcCount := linePopCount(buf, srcRow, cols)

		if srcCount <= spare {
			// The whole continuation row fits in the gap.
			copy(buf[targetRow*cols+targetCount:], buf[srcRow*cols:srcRow*cols+srcCount])

			deltaCount--

			targetCount += srcCount
			if targetCount >= cols {
				targetRow++
				targetCount = 0
			}
			srcRow++
		} else {
			// Long continuation row: split it at the gap.
			moveUp := spare
			wrapEnd := false
			if buf[srcRow*cols+moveUp].isWideCont() {
				moveUp--
				wrapEnd = true
			}

			if moveUp == 0 {
				// The gap cannot even hold one wide glyph; leave it
				// blank and move on.
				buf[targetRow*cols+cols-1].clear()
				targetRow++
				if targetRow >= rows {
					break
				}
				if !lineinfo[targetRow].Continuation {
					break
				}
				targetCount = linePopCount(buf, targetRow, cols)
				if srcRow == targetRow {
					srcRow = targetRow + 1
				}
				continue
			}

			part2 := srcCount - moveUp

			copy(buf[targetRow*cols+targetCount:], buf[srcRow*cols:srcRow*cols+moveUp])
			if wrapEnd {
				buf[targetRow*cols+cols-1].clear()
			}

			copy(buf[(targetRow+1)*cols:], buf[srcRow*cols+moveUp:srcRow*cols+srcCount])

			targetRow++
			targetCount = part2
			srcRow++
		}
	}

	if targetRow < rows {
		for i := targetCount; i < cols; i++ {
			buf[targetRow*cols+i].clear()
		}
	}

	if deltaCount < 0 {
		// Shift the combined paragraph down over the stale rows so it
		// ends where the original paragraph did, leaving the freed
		// rows blank above rowStart's new position.
		n := -deltaCount
		last := targetRow
		if last+n >= rows {
			last = rows - 1 - n
		}
		if last < rowStart {
			return deltaCount
		}

		copy(buf[(rowStart+n)*cols:(last+n+1)*cols], buf[rowStart*cols:(last+1)*cols])
		copy(lineinfo[rowStart+n:last+n+1], lineinfo[rowStart:last+1])

		for row := rowStart; row < rowStart+n; row++ {
			for col := 0; col < cols; col++ {
				buf[row*cols+col] = cell{}
			}
			lineinfo[row] = LineInfo{}
		}
	}

	return deltaCount
}

// resizeBuffer reflows one grid to the new geometry following the
// paragraph structure recorded in its line info. active marks the grid
// that holds the cursor; the returned cursor position is meaningful
// only for that grid. Scrollback spill and refill apply to the primary
// grid only.
func (s *Screen) resizeBuffer(bufidx, newRows, newCols int, active bool, oldCursor Pos) Pos {
	oldRows := s.rows
	oldCols := s.cols

	oldBuffer := s.buffers[bufidx]
	oldLineinfo := s.lineinfo[bufidx]

	newBuffer := allocBuffer(newRows, newCols)
	newLineinfo := make([]LineInfo, newRows)

	oldRow := oldRows - 1
	newRow := newRows - 1

	newCursor := Pos{Row: -1, Col: -1}

	// Bottom-most row known to be blank; everything below it is spare
	// space paragraphs can scroll down into.
	finalBlankRow := newRows

	for oldRow >= 0 {
		// A paragraph is an anchor row plus the run of continuation
		// rows below it; walk to its anchor.
		oldRowEnd := oldRow
		for oldRow >= 0 && oldLineinfo[oldRow].Continuation {
			oldRow--
		}
		if oldRow < 0 {
			// The top row is itself a continuation; treat it as the
			// anchor of what remains.
			oldRow = 0
		}
		oldRowStart := oldRow

		// Dry run: how many rows does this paragraph need at the new
		// width?
		lastRow, _, total := reflowLine(oldBuffer, oldRowStart, oldRowEnd, oldCols, newCols, nil, Pos{}, nil, 0)

		if finalBlankRow == newRow+1 && total == 0 {
			finalBlankRow = newRow
		}

		newHeight := lastRow + 1
		newRowEnd := newRow
		newRowStart := newRow - newHeight + 1

		spareRows := newRows - finalBlankRow

		if newRowStart < 0 && spareRows > 0 &&
			(!active || newCursor.Row == -1 || (newCursor.Row-newRowStart) < newRows) {
			// The paragraph would fall off the top but there are blank
			// rows at the bottom: scroll the content already placed
			// downward to make it fit, unless that would push the
			// cursor off-screen.
			downwards := -newRowStart
			if downwards > spareRows {
				downwards = spareRows
			}
			rowcount := newRows - downwards

			copy(newBuffer[downwards*newCols:], newBuffer[:rowcount*newCols])
			copy(newLineinfo[downwards:], newLineinfo[:rowcount])

			newRow += downwards
			newRowStart += downwards
			newRowEnd += downwards

			if newCursor.Row >= 0 {
				newCursor.Row += downwards
			}

			finalBlankRow += downwards
		}

		if newRowStart < 0 {
			// Still off the top; this and all earlier paragraphs go to
			// scrollback instead.
			if oldRowStart <= oldCursor.Row && oldCursor.Row <= oldRowEnd {
				newCursor = Pos{Row: 0, Col: oldCursor.Col}
				if newCursor.Col >= newCols {
					newCursor.Col = newCols - 1
				}
			}
			oldRow = oldRowEnd
			break
		}

		reflowLine(oldBuffer, oldRowStart, oldRowEnd, oldCols, newCols,
			newBuffer[newRowStart*newCols:], oldCursor, &newCursor, newRowStart)

		for row := newRowStart + 1; row <= newRowEnd; row++ {
			newLineinfo[row].Continuation = true
		}
		newLineinfo[newRowStart].Continuation = oldLineinfo[oldRowStart].Continuation

		oldRow = oldRowStart - 1
		newRow = newRowStart - 1
	}

	if oldCursor.Row <= oldRow {
		// The cursor's row was never placed; bring it within range.
		newCursor = Pos{Row: 0, Col: oldCursor.Col}
		if newCursor.Col >= newCols {
			newCursor.Col = newCols - 1
		}
	}

	if active && (newCursor.Row == -1 || newCursor.Col == -1) {
		panic("vtscreen: resize failed to update cursor position")
	}

	if oldRow >= 0 && bufidx == bufPrimary && s.scrollback != nil {
		// Spill the rows that did not fit to scrollback, top first.
		for row := 0; row <= oldRow; row++ {
			s.pushBufferRow(oldBuffer, oldCols, row, oldLineinfo[row].Continuation)
		}
	}

	if !s.withConPTY && newRow >= 0 && bufidx == bufPrimary && s.scrollback != nil {
		// Refill blank rows at the top by popping scrollback.
		for newRow >= 0 {
			popCols, continuation, ok := s.scrollback.PeekLine()
			if !ok {
				break
			}

			s.ensureSbBuffer(popCols)
			if !s.scrollback.PopLine(s.sbBuffer[:popCols]) {
				break
			}

			rawCols := popCols
			popCols = sbLinePopCount(s.sbBuffer[:popCols])

			belowCont := newRow < newRows-1 && newLineinfo[newRow+1].Continuation

			if popCols > newCols {
				// The popped line is wider than the screen. Taking it
				// partially would need a re-push of the remainder; be
				// conservative: put it back whole and stop refilling.
				s.pushStagedLine(s.sbBuffer[:rawCols], continuation)
				break
			}

			s.placeSbLine(s.sbBuffer[:popCols], newBuffer[newRow*newCols:], newCols)
			newLineinfo[newRow].Continuation = continuation

			if belowCont {
				// The row below is the tail of this logical line; knit
				// them back together.
				delta := combineContinuationLines(newBuffer, newRow, newRows, newCols, newLineinfo)
				newRow -= delta
			}

			newRow--
		}
	}

	if newRow >= 0 {
		// Scroll the placed content up to row 0 and blank the rest.
		moveRows := newRows - newRow - 1
		copy(newBuffer[:moveRows*newCols], newBuffer[(newRow+1)*newCols:])
		copy(newLineinfo[:moveRows], newLineinfo[newRow+1:])

		newCursor.Row -= newRow + 1

		for row := moveRows; row < newRows; row++ {
			for col := 0; col < newCols; col++ {
				newBuffer[row*newCols+col] = cell{}
			}
			newLineinfo[row] = LineInfo{}
		}
	}

	s.buffers[bufidx] = newBuffer
	s.lineinfo[bufidx] = newLineinfo

	return newCursor
}

// resizeFit is the reflow-off resize: every row is truncated or padded
// in place, content stays anchored top-left, and scrollback is not
// consulted.
func (s *Screen) resizeFit(newRows, newCols int, cursor Pos) Pos {
	for bufidx := range s.buffers {
		if s.buffers[bufidx] == nil {
			continue
		}

		newBuffer := allocBuffer(newRows, newCols)
		newLineinfo := make([]LineInfo, newRows)

		copyRows := s.rows
		if copyRows > newRows {
			copyRows = newRows
		}
		copyCols := s.cols
		if copyCols > newCols {
			copyCols = newCols
		}

		for row := 0; row < copyRows; row++ {
			copy(newBuffer[row*newCols:row*newCols+copyCols], s.buffers[bufidx][row*s.cols:row*s.cols+copyCols])

			// Don't leave the leading half of a wide glyph that lost
			// its trailing half at the new right edge.
			if copyCols < s.cols && copyCols > 0 {
				if s.buffers[bufidx][row*s.cols+copyCols].isWideCont() {
					newBuffer[row*newCols+copyCols-1].clear()
				}
			}
		}
		copy(newLineinfo, s.lineinfo[bufidx][:copyRows])

		s.buffers[bufidx] = newBuffer
		s.lineinfo[bufidx] = newLineinfo
	}

	if cursor.Row >= newRows {
		cursor.Row = newRows - 1
	}
	if cursor.Col >= newCols {
		cursor.Col = newCols - 1
	}

	return cursor
}

// Resize changes the screen geometry and returns the migrated cursor
// position. With reflow enabled, wrapped paragraphs are rewrapped to
// the new width: surplus rows spill to scrollback and blank rows at
// the top refill from it (primary grid only; the alternate grid is
// resized identically but never touches scrollback). With reflow
// disabled, rows are truncated or padded in place.
//
// Both grids are resized regardless of which is active. A full-screen
// damage and the host resize callback follow.
func (s *Screen) Resize(newRows, newCols int, cursor Pos) Pos {
	if newRows <= 0 || newCols <= 0 {
		return cursor
	}
	if newRows == s.rows && newCols == s.cols {
		return cursor
	}

	var out Pos

	if !s.reflow {
		out = s.resizeFit(newRows, newCols, cursor)
	} else {
		altActive := s.active == bufAlt

		s.ensureSbBuffer(newCols)

		out = cursor
		primCursor := s.resizeBuffer(bufPrimary, newRows, newCols, !altActive, cursor)
		if !altActive {
			out = primCursor
		}
		if s.buffers[bufAlt] != nil {
			altCursor := s.resizeBuffer(bufAlt, newRows, newCols, altActive, cursor)
			if altActive {
				out = altCursor
			}
		}
	}

	s.rows = newRows
	s.cols = newCols

	s.sbBuffer = make([]ScreenCell, newCols)

	if out.Row < 0 {
		out.Row = 0
	}
	if out.Row >= newRows {
		out.Row = newRows - 1
	}
	if out.Col < 0 {
		out.Col = 0
	}
	if out.Col >= newCols {
		out.Col = newCols - 1
	}

	s.damageScreen()
	s.resizeProvider.Resize(newRows, newCols)

	return out
}
