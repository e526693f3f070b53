// Package vtscreen provides the screen model of a terminal emulator: a
// cell grid that consumes interpreted terminal commands and maintains
// the authoritative visual state, without parsing, PTY handling, or
// rendering.
//
// The package sits between a state layer (which interprets escape
// sequences, tracks cursor and modes, and emits glyph/scroll/erase
// events) and a host (which renders cells and stores scrollback). It
// owns two grids, coalesces changes into damage rectangles, and
// rewraps wrapped lines when the geometry changes.
//
// # Quick Start
//
// Create a screen and feed it events:
//
//	screen := vtscreen.New(vtscreen.WithSize(24, 80))
//	screen.PutGlyph(vtscreen.Glyph{Chars: []rune{'A'}, Width: 1}, vtscreen.Pos{Row: 0, Col: 0})
//
//	var cell vtscreen.ScreenCell
//	screen.GetCell(vtscreen.Pos{Row: 0, Col: 0}, &cell)
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Screen]: the grid owner that consumes state-layer events
//   - [Pen]: the drawing attributes snapshotted into every written cell
//   - [ScreenCell]: the external form of one cell, handed to hosts
//   - [Rect] and [Pos]: half-open rectangles and cell coordinates
//
// # Damage
//
// Every mutation records a damage rectangle. The merge level set with
// [WithDamageMerge] controls coalescing: [DamageCell] reports each
// change immediately, [DamageRow] merges within a row, [DamageScreen]
// accumulates one bounding rectangle, and [DamageScroll] additionally
// defers scrolls so hosts can blit instead of redraw. Accumulated
// damage is delivered by [Screen.FlushDamage].
//
// # Dual Grids
//
// The primary grid is always allocated; the alternate grid used by
// full-screen applications is allocated on first enable and never
// exchanges rows with scrollback:
//
//	screen.SetTermProp(vtscreen.PropAltScreen, vtscreen.PropValue{Bool: true})
//
// # Resize and Reflow
//
// With [WithReflow] enabled, [Screen.Resize] rewraps wrapped logical
// lines to the new width: rows that no longer fit spill to the host's
// [ScrollbackProvider], blank rows refill from it, double-width glyphs
// are never split, and the cursor position is migrated and returned.
// Without reflow, rows are truncated or padded in place.
//
// # Providers
//
// Hosts receive output through small capability interfaces
// ([DamageProvider], [CursorProvider], [BellProvider],
// [ScrollbackProvider], ...), each with a Noop default, so a host only
// implements what it uses. All callbacks run synchronously on the
// caller's goroutine; a Screen has exactly one logical owner at a time
// and performs no locking.
package vtscreen
